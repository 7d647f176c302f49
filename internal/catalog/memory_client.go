package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryClient is an in-memory Client implementing the same query
// semantics as the remote service: substring search over name,
// description and category, inclusive price bounds, stock-status
// buckets and the three sort orders. It backs tests and offline use.
type MemoryClient struct {
	mu         sync.RWMutex
	products   map[string]Product
	categories map[string]Category
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		products:   make(map[string]Product),
		categories: make(map[string]Category),
	}
}

func (m *MemoryClient) Products(_ context.Context, crit Criteria) ([]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []Product
	for _, p := range m.products {
		if matchesCriteria(p, crit) {
			results = append(results, p)
		}
	}

	sortProducts(results, crit.SortBy)
	return results, nil
}

func matchesCriteria(p Product, crit Criteria) bool {
	if crit.Search != "" && !matchesSearch(p, strings.ToLower(crit.Search)) {
		return false
	}
	if crit.Category != "" && p.Category != crit.Category {
		return false
	}
	if p.Price < crit.MinPrice || p.Price > crit.MaxPrice {
		return false
	}
	return crit.StockStatus.Matches(p.Stock)
}

func matchesSearch(p Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Category), query)
}

func sortProducts(products []Product, by SortKey) {
	sort.SliceStable(products, func(i, j int) bool {
		less, equal := compareProducts(products[i], products[j], by)
		if equal {
			// Tiebreaker: ID keeps the order deterministic.
			return products[i].ID < products[j].ID
		}
		return less
	})
}

func compareProducts(a, b Product, by SortKey) (less, equal bool) {
	switch by {
	case SortPriceAsc:
		return a.Price < b.Price, a.Price == b.Price
	case SortPriceDesc:
		return a.Price > b.Price, a.Price == b.Price
	default:
		// Newest first; CreatedAt is RFC 3339 so the lexical order is
		// the chronological order.
		return a.CreatedAt > b.CreatedAt, a.CreatedAt == b.CreatedAt
	}
}

func (m *MemoryClient) Product(_ context.Context, id string) (Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (m *MemoryClient) Categories(_ context.Context) ([]Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	categories := make([]Category, 0, len(m.categories))
	for _, c := range m.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (m *MemoryClient) CreateProduct(_ context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	if p.ID == "" {
		p = NewProduct(p.Name, p.Category, p.Price, p.Stock).
			WithDescription(p.Description).
			WithImageURL(p.ImageURL)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.products[p.ID]; exists {
		return Product{}, ErrAlreadyExists
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *MemoryClient) UpdateProduct(_ context.Context, id string, patch ProductPatch) (Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}

	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	m.products[id] = p
	return p, nil
}

func (m *MemoryClient) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MemoryClient) CreateCategory(_ context.Context, c Category) (Category, error) {
	if err := c.Validate(); err != nil {
		return Category{}, err
	}
	if c.ID == "" {
		c = NewCategory(c.Name, c.Description)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.categories[c.ID]; exists {
		return Category{}, ErrAlreadyExists
	}
	m.categories[c.ID] = c
	return c, nil
}

func (m *MemoryClient) UpdateCategory(_ context.Context, id string, patch CategoryPatch) (Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}

	if err := c.Validate(); err != nil {
		return Category{}, err
	}
	m.categories[id] = c
	return c, nil
}

func (m *MemoryClient) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return ErrNotFound
	}
	delete(m.categories, id)
	return nil
}
