package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("product name cannot be empty")
	ErrNegativePrice = errors.New("product price cannot be negative")
	ErrNegativeStock = errors.New("product stock cannot be negative")
)

// Product is an immutable snapshot of a catalog record. The remote
// service owns the record; the client never mutates one in place.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
	CreatedAt   string  `json:"createdAt"`
}

func NewProduct(name, category string, price float64, stock int) Product {
	return Product{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func (p Product) WithDescription(description string) Product {
	newP := p
	newP.Description = description
	return newP
}

func (p Product) WithImageURL(imageURL string) Product {
	newP := p
	newP.ImageURL = imageURL
	return newP
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (p *Product) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}

	if p.Price < 0 {
		return fmt.Errorf("%w: got %v", ErrNegativePrice, p.Price)
	}

	if p.Stock < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeStock, p.Stock)
	}

	return nil
}

// Category is a catalog grouping label, owned by the remote service.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

func NewCategory(name, description string) Category {
	return Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
