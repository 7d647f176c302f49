package proptest

import (
	"pgregory.net/rapid"

	"incho/internal/cart"
)

// verifyCartInvariants checks the structural rules every cart state
// must satisfy, regardless of the operations that produced it:
// totals are derived from the entries, every entry has an ID and a
// positive quantity no greater than its recorded stock, and no
// product appears twice.
func verifyCartInvariants(t *rapid.T, store *cart.Store) {
	totals := store.Totals()

	var items int
	var price float64
	idsSeen := make(map[string]bool)
	count := 0

	for e := range store.Snapshot() {
		count++
		items += e.Quantity
		price += e.Price * float64(e.Quantity)

		if e.ID == "" {
			t.Fatalf("cart entry %q has empty ID", e.Name)
		}
		if idsSeen[e.ID] {
			t.Fatalf("duplicate cart entry for product %s", e.ID)
		}
		idsSeen[e.ID] = true

		if e.Quantity < 1 {
			t.Fatalf("entry %q has non-positive quantity %d", e.Name, e.Quantity)
		}
		if e.Quantity > e.Stock {
			t.Fatalf("entry %q quantity %d exceeds recorded stock %d", e.Name, e.Quantity, e.Stock)
		}
		if e.Price < 0 {
			t.Fatalf("entry %q has negative price %v", e.Name, e.Price)
		}
	}

	if store.Len() != count {
		t.Fatalf("Len()=%d but snapshot yields %d entries", store.Len(), count)
	}
	if totals.Items != items {
		t.Fatalf("item total %d does not match recomputed %d", totals.Items, items)
	}
	if !approxEqual(totals.Price, price) {
		t.Fatalf("price total %v does not match recomputed %v", totals.Price, price)
	}
}

func approxEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-6
}
