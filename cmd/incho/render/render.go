package render

import "time"

type Renderer interface {
	RenderProductList(view ProductListView) string
	RenderCart(view CartView) string
}

type ProductListView struct {
	Items []ProductItem
}

type ProductItem struct {
	Name        string
	Category    string
	Description string
	Price       float64
	Stock       int
	CreatedAt   time.Time
}

func (v ProductListView) IsEmpty() bool {
	return len(v.Items) == 0
}

type CartView struct {
	Items      []CartItem
	TotalItems int
	TotalPrice float64
}

type CartItem struct {
	Name      string
	Price     float64
	Quantity  int
	LineTotal float64
}

func (v CartView) IsEmpty() bool {
	return len(v.Items) == 0
}
