package catalog

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("catalog record not found")
	ErrAlreadyExists = errors.New("catalog record already exists")
)

// ProductPatch is a partial product update. Nil fields are left
// untouched by the service.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

func (p ProductPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.ImageURL == nil && p.Stock == nil
}

type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p CategoryPatch) IsZero() bool {
	return p.Name == nil && p.Description == nil
}

type Client interface {
	Products(ctx context.Context, c Criteria) ([]Product, error)
	Product(ctx context.Context, id string) (Product, error)
	Categories(ctx context.Context) ([]Category, error)

	CreateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, c Category) (Category, error)
	UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
