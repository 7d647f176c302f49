package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"incho/cmd/incho/render"
	"incho/internal/cart"
	"incho/internal/catalog"
)

type AmbiguousMatchError struct {
	Query   string
	Matches []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple products match %q", e.Query)
}

func (e *AmbiguousMatchError) WriteMatches(w io.Writer) {
	fmt.Fprintln(w, "Multiple products match. Please be more specific:")
	for _, name := range e.Matches {
		fmt.Fprintf(w, "  - %s\n", name)
	}
}

func handleFindError(w io.Writer, err error) bool {
	var ambErr *AmbiguousMatchError
	if errors.As(err, &ambErr) {
		ambErr.WriteMatches(w)
		return true
	}
	return false
}

// findProduct resolves a product by name via the backend search. An
// exact name match wins over a broader substring match.
func findProduct(ctx context.Context, client catalog.Client, query string) (catalog.Product, error) {
	crit := catalog.DefaultCriteria()
	crit.Search = query

	products, err := client.Products(ctx, crit)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to search products: %w", err)
	}
	if len(products) == 0 {
		return catalog.Product{}, fmt.Errorf("no product found matching: %s", query)
	}
	if len(products) > 1 {
		var exact []catalog.Product
		for _, p := range products {
			if strings.EqualFold(p.Name, query) {
				exact = append(exact, p)
			}
		}
		if len(exact) == 1 {
			return exact[0], nil
		}
		names := make([]string, len(products))
		for i, p := range products {
			names[i] = p.Name
		}
		return catalog.Product{}, &AmbiguousMatchError{Query: query, Matches: names}
	}
	return products[0], nil
}

// findEntry resolves a cart entry by product ID or name.
func findEntry(store *cart.Store, query string) (cart.Entry, error) {
	var matches []cart.Entry
	for e := range store.Snapshot() {
		if e.ID == query || strings.EqualFold(e.Name, query) {
			return e, nil
		}
		if strings.Contains(strings.ToLower(e.Name), strings.ToLower(query)) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return cart.Entry{}, fmt.Errorf("no cart item found matching: %s", query)
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, e := range matches {
			names[i] = e.Name
		}
		return cart.Entry{}, &AmbiguousMatchError{Query: query, Matches: names}
	}
	return matches[0], nil
}

func findCategory(ctx context.Context, client catalog.Client, query string) (catalog.Category, error) {
	categories, err := client.Categories(ctx)
	if err != nil {
		return catalog.Category{}, fmt.Errorf("failed to list categories: %w", err)
	}
	var matches []catalog.Category
	for _, c := range categories {
		if c.ID == query || strings.EqualFold(c.Name, query) {
			return c, nil
		}
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return catalog.Category{}, fmt.Errorf("no category found matching: %s", query)
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, c := range matches {
			names[i] = c.Name
		}
		return catalog.Category{}, &AmbiguousMatchError{Query: query, Matches: names}
	}
	return matches[0], nil
}

func productListView(products []catalog.Product) render.ProductListView {
	view := render.ProductListView{Items: make([]render.ProductItem, 0, len(products))}
	for _, p := range products {
		created, _ := time.Parse(time.RFC3339, p.CreatedAt)
		view.Items = append(view.Items, render.ProductItem{
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
			CreatedAt:   created,
		})
	}
	return view
}

func cartView(store *cart.Store) render.CartView {
	totals := store.Totals()
	view := render.CartView{TotalItems: totals.Items, TotalPrice: totals.Price}
	for e := range store.Snapshot() {
		view.Items = append(view.Items, render.CartItem{
			Name:      e.Name,
			Price:     e.Price,
			Quantity:  e.Quantity,
			LineTotal: e.Price * float64(e.Quantity),
		})
	}
	return view
}
