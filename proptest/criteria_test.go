package proptest

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"incho/internal/catalog"
	"incho/internal/query"
)

func TestProperty_Criteria_ValuesEncoding(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		crit := criteriaGen().Draw(rt, "criteria")

		values := crit.Values()

		if (crit.Search != "") != values.Has("search") {
			rt.Fatalf("search key presence mismatch for %q", crit.Search)
		}
		if (crit.Category != "") != values.Has("category") {
			rt.Fatalf("category key presence mismatch for %q", crit.Category)
		}
		if (crit.StockStatus != catalog.StockAny) != values.Has("stock_status") {
			rt.Fatalf("stock_status key presence mismatch for %q", crit.StockStatus)
		}

		minPrice, err := strconv.ParseFloat(values.Get("min_price"), 64)
		if err != nil || minPrice != crit.MinPrice {
			rt.Fatalf("min_price round trip failed: %q vs %v", values.Get("min_price"), crit.MinPrice)
		}
		maxPrice, err := strconv.ParseFloat(values.Get("max_price"), 64)
		if err != nil || maxPrice != crit.MaxPrice {
			rt.Fatalf("max_price round trip failed: %q vs %v", values.Get("max_price"), crit.MaxPrice)
		}

		if values.Get("sort_by") == "" {
			rt.Fatalf("sort_by must always be present")
		}

		// Encoding is a pure function of the criteria.
		if crit.Values().Encode() != values.Encode() {
			rt.Fatalf("encoding is not deterministic")
		}
	})
}

func TestProperty_Query_ResultsMatchCriteria(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		client := catalog.NewMemoryClient()
		n := rapid.IntRange(0, 15).Draw(rt, "numProducts")
		for range n {
			p := GenProduct(rt)
			if _, err := client.CreateProduct(context.Background(), p); err != nil {
				rt.Fatalf("seed failed: %v", err)
			}
		}

		crit := criteriaGen().Draw(rt, "criteria")
		results, err := client.Products(context.Background(), crit)
		if err != nil {
			rt.Fatalf("query failed: %v", err)
		}

		for _, p := range results {
			if p.Price < crit.MinPrice || p.Price > crit.MaxPrice {
				rt.Fatalf("product %q price %v outside [%v, %v]",
					p.Name, p.Price, crit.MinPrice, crit.MaxPrice)
			}
			if !crit.StockStatus.Matches(p.Stock) {
				rt.Fatalf("product %q stock %d fails filter %q", p.Name, p.Stock, crit.StockStatus)
			}
			if crit.Category != "" && p.Category != crit.Category {
				rt.Fatalf("product %q category %q fails filter %q", p.Name, p.Category, crit.Category)
			}
			if crit.Search != "" {
				haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
				if !strings.Contains(haystack, strings.ToLower(crit.Search)) {
					rt.Fatalf("product %q does not match search %q", p.Name, crit.Search)
				}
			}
		}

		switch crit.SortBy {
		case catalog.SortPriceAsc:
			for i := 0; i < len(results)-1; i++ {
				if results[i].Price > results[i+1].Price {
					rt.Fatalf("price ascending violated at %d", i)
				}
			}
		case catalog.SortPriceDesc:
			for i := 0; i < len(results)-1; i++ {
				if results[i].Price < results[i+1].Price {
					rt.Fatalf("price descending violated at %d", i)
				}
			}
		}
	})
}

func TestProperty_Query_SearchCaseInsensitive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		client := catalog.NewMemoryClient()
		n := rapid.IntRange(1, 10).Draw(rt, "numProducts")
		for range n {
			if _, err := client.CreateProduct(context.Background(), GenProduct(rt)); err != nil {
				rt.Fatalf("seed failed: %v", err)
			}
		}

		term := queryGen.Draw(rt, "term")
		lower := catalog.DefaultCriteria()
		lower.Search = strings.ToLower(term)
		upper := catalog.DefaultCriteria()
		upper.Search = strings.ToUpper(term)

		lowerResults, err := client.Products(context.Background(), lower)
		if err != nil {
			rt.Fatalf("query failed: %v", err)
		}
		upperResults, err := client.Products(context.Background(), upper)
		if err != nil {
			rt.Fatalf("query failed: %v", err)
		}

		if len(lowerResults) != len(upperResults) {
			rt.Fatalf("case sensitivity leak: %d vs %d results",
				len(lowerResults), len(upperResults))
		}
		for i := range lowerResults {
			if lowerResults[i].ID != upperResults[i].ID {
				rt.Fatalf("result order differs between cases at %d", i)
			}
		}
	})
}

func TestProperty_Controller_PatchMergeLastWriterWins(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		client := catalog.NewMemoryClient()
		ctrl := query.New(client, query.WithQuietPeriod(time.Hour))
		defer ctrl.Close()

		want := catalog.DefaultCriteria()
		n := rapid.IntRange(1, 20).Draw(rt, "numPatches")
		for range n {
			var patch query.Patch
			switch rapid.IntRange(0, 5).Draw(rt, "field") {
			case 0:
				v := queryGen.Draw(rt, "search")
				patch.Search = &v
				want.Search = v
			case 1:
				v := categoryGen.Draw(rt, "category")
				patch.Category = &v
				want.Category = v
			case 2:
				v := priceGen().Draw(rt, "minPrice")
				patch.MinPrice = &v
				want.MinPrice = v
			case 3:
				v := priceGen().Draw(rt, "maxPrice")
				patch.MaxPrice = &v
				want.MaxPrice = v
			case 4:
				v := rapid.SampledFrom([]catalog.StockStatus{
					catalog.StockAny, catalog.StockIn, catalog.StockLow, catalog.StockOut,
				}).Draw(rt, "stock")
				patch.StockStatus = &v
				want.StockStatus = v
			case 5:
				v := rapid.SampledFrom([]catalog.SortKey{
					catalog.SortNewest, catalog.SortPriceAsc, catalog.SortPriceDesc,
				}).Draw(rt, "sort")
				patch.SortBy = &v
				want.SortBy = v
			}
			ctrl.SetCriteria(patch)
		}

		if got := ctrl.Criteria(); got != want {
			rt.Fatalf("criteria mismatch:\ngot  %+v\nwant %+v", got, want)
		}
	})
}
