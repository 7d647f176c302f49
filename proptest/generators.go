package proptest

import (
	"encoding/json"
	"math"

	"pgregory.net/rapid"

	"incho/internal/catalog"
)

const (
	maxQuantity = 5
	maxStock    = 50
	maxPrice    = 500
)

var (
	iterDirGen  = rapid.StringMatching(`[a-z]{8}`)
	queryGen    = rapid.StringMatching(`[a-z]{1,10}`)
	categoryGen = rapid.SampledFrom([]string{
		"hand tools", "power tools", "fasteners", "safety", "garden",
	})
)

func validNameGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-zA-Z][a-zA-Z0-9 _-]{0,30}`)
}

// priceGen draws prices rounded to cents, the granularity the
// storefront displays.
func priceGen() *rapid.Generator[float64] {
	return rapid.Custom(func(t *rapid.T) float64 {
		cents := rapid.IntRange(0, maxPrice*100).Draw(t, "cents")
		return float64(cents) / 100
	})
}

type ProductGenOpt func(*productGenConfig)

type productGenConfig struct {
	name  *string
	stock *int
}

func WithName(name string) ProductGenOpt {
	return func(c *productGenConfig) {
		c.name = &name
	}
}

func WithStock(stock int) ProductGenOpt {
	return func(c *productGenConfig) {
		c.stock = &stock
	}
}

func GenProduct(t *rapid.T, opts ...ProductGenOpt) catalog.Product {
	cfg := &productGenConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var name string
	if cfg.name != nil {
		name = *cfg.name
	} else {
		name = validNameGen().Draw(t, "name")
	}

	stock := rapid.IntRange(1, maxStock).Draw(t, "stock")
	if cfg.stock != nil {
		stock = *cfg.stock
	}

	price := priceGen().Draw(t, "price")
	category := categoryGen.Draw(t, "category")

	return catalog.NewProduct(name, category, price, stock)
}

func criteriaGen() *rapid.Generator[catalog.Criteria] {
	return rapid.Custom(func(t *rapid.T) catalog.Criteria {
		crit := catalog.DefaultCriteria()
		if rapid.Bool().Draw(t, "hasSearch") {
			crit.Search = queryGen.Draw(t, "search")
		}
		if rapid.Bool().Draw(t, "hasCategory") {
			crit.Category = categoryGen.Draw(t, "category")
		}
		crit.MinPrice = priceGen().Draw(t, "minPrice")
		crit.MaxPrice = math.Max(crit.MinPrice, priceGen().Draw(t, "maxPrice"))
		crit.StockStatus = rapid.SampledFrom([]catalog.StockStatus{
			catalog.StockAny, catalog.StockIn, catalog.StockLow, catalog.StockOut,
		}).Draw(t, "stockStatus")
		crit.SortBy = rapid.SampledFrom([]catalog.SortKey{
			catalog.SortNewest, catalog.SortPriceAsc, catalog.SortPriceDesc,
		}).Draw(t, "sortBy")
		return crit
	})
}

func malformedJSONGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("{{{{"),
		rapid.Just("}"),
		rapid.Just("[{]"),
		rapid.Just(`{"id": "x"}`),
		rapid.Just(`[{"id": "x"`),
		rapid.Just(`"just a string"`),
		rapid.Just("null"),
		rapid.Just("12345"),
		rapid.Just(`[{"id": 42, "quantity": "many"}]`),
		rapid.StringMatching(`[^\[\]{}"]{10,50}`),
		rapid.Custom(func(t *rapid.T) string {
			size := rapid.IntRange(10, 100).Draw(t, "size")
			bytes := make([]byte, size)
			for i := range bytes {
				bytes[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
			}
			return string(bytes)
		}),
	)
}

// invalidEntriesGen produces syntactically valid cart files whose
// entries break the store's rules and must be dropped on load.
func invalidEntriesGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		entries := []map[string]any{
			{"id": "", "name": "no id", "price": 1.0, "stock": 5, "quantity": 1},
			{"id": "zero-qty", "name": "zero", "price": 1.0, "stock": 5, "quantity": 0},
			{"id": "neg-qty", "name": "negative", "price": 1.0, "stock": 5, "quantity": -3},
			{"id": "dup", "name": "first", "price": 1.0, "stock": 5, "quantity": 1},
			{"id": "dup", "name": "second", "price": 2.0, "stock": 5, "quantity": 2},
		}
		n := rapid.IntRange(1, len(entries)).Draw(t, "numInvalid")
		data, _ := json.Marshal(entries[:n])
		return string(data)
	})
}
