package main

import (
	"context"
	"fmt"

	"incho/internal/catalog"
)

type ProductsCmd struct {
	Search   string  `short:"s" help:"Filter by name or description"`
	Category string  `short:"c" help:"Filter by category name"`
	MinPrice float64 `default:"0" help:"Minimum price"`
	MaxPrice float64 `default:"10000" help:"Maximum price"`
	Stock    string  `help:"Filter by stock status (in_stock, low_stock, out_of_stock)"`
	Sort     string  `default:"newest" help:"Sort order (newest, price_asc, price_desc)"`
	Names    bool    `short:"n" help:"Output only product names (one per line)"`
}

func (cmd *ProductsCmd) criteria() (catalog.Criteria, error) {
	status, err := catalog.ParseStockStatus(cmd.Stock)
	if err != nil {
		return catalog.Criteria{}, err
	}
	sort, err := catalog.ParseSortKey(cmd.Sort)
	if err != nil {
		return catalog.Criteria{}, err
	}
	return catalog.Criteria{
		Search:      cmd.Search,
		Category:    cmd.Category,
		MinPrice:    cmd.MinPrice,
		MaxPrice:    cmd.MaxPrice,
		StockStatus: status,
		SortBy:      sort,
	}, nil
}

func (cmd *ProductsCmd) Run(g *Globals) error {
	crit, err := cmd.criteria()
	if err != nil {
		return err
	}

	products, err := g.Client.Products(context.Background(), crit)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	if cmd.Names {
		for _, p := range products {
			fmt.Fprintln(g.Out, p.Name)
		}
		return nil
	}

	fmt.Fprint(g.Out, g.Render.RenderProductList(productListView(products)))
	return nil
}
