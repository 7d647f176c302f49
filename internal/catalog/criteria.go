package catalog

import (
	"fmt"
	"net/url"
	"strconv"
)

type StockStatus string

const (
	StockAny StockStatus = ""
	StockIn  StockStatus = "in_stock"
	StockLow StockStatus = "low_stock"
	StockOut StockStatus = "out_of_stock"
)

// LowStockThreshold mirrors the storefront badge rule: ten or more
// units on hand count as in stock.
const LowStockThreshold = 10

func StockStatusOf(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockOut
	case stock < LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

func (s StockStatus) Matches(stock int) bool {
	if s == StockAny {
		return true
	}
	return StockStatusOf(stock) == s
}

func ParseStockStatus(v string) (StockStatus, error) {
	switch StockStatus(v) {
	case StockAny, StockIn, StockLow, StockOut:
		return StockStatus(v), nil
	}
	return StockAny, fmt.Errorf("unknown stock status %q", v)
}

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

func ParseSortKey(v string) (SortKey, error) {
	switch SortKey(v) {
	case SortNewest, SortPriceAsc, SortPriceDesc:
		return SortKey(v), nil
	case "":
		return SortNewest, nil
	}
	return SortNewest, fmt.Errorf("unknown sort key %q", v)
}

const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 10000
)

// Criteria is the full set of storefront query inputs. The zero values
// of Search, Category and StockStatus mean "no filter".
type Criteria struct {
	Search      string
	Category    string
	MinPrice    float64
	MaxPrice    float64
	StockStatus StockStatus
	SortBy      SortKey
}

func DefaultCriteria() Criteria {
	return Criteria{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		SortBy:   SortNewest,
	}
}

// Values encodes the criteria as service query parameters. An empty
// search omits the parameter entirely: the service distinguishes "no
// filter" from a filter on the empty string. Price bounds are always
// sent; category and stock status only when set; the sort key always.
func (c Criteria) Values() url.Values {
	v := url.Values{}

	if c.Search != "" {
		v.Set("search", c.Search)
	}
	if c.Category != "" {
		v.Set("category", c.Category)
	}

	v.Set("min_price", strconv.FormatFloat(c.MinPrice, 'f', -1, 64))
	v.Set("max_price", strconv.FormatFloat(c.MaxPrice, 'f', -1, 64))

	if c.StockStatus != StockAny {
		v.Set("stock_status", string(c.StockStatus))
	}

	sortBy := c.SortBy
	if sortBy == "" {
		sortBy = SortNewest
	}
	v.Set("sort_by", string(sortBy))

	return v
}
