package proptest

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"

	"incho/internal/cart"
)

func assertEntriesEqual(t *rapid.T, expected, actual []cart.Entry) {
	t.Helper()
	opts := cmp.Options{
		cmpopts.EquateApprox(0, 1e-6),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(expected, actual, opts...); diff != "" {
		t.Fatalf("cart entries mismatch (-want +got):\n%s", diff)
	}
}

func collectEntries(store *cart.Store) []cart.Entry {
	var entries []cart.Entry
	for e := range store.Snapshot() {
		entries = append(entries, e)
	}
	return entries
}

func assertSameOrder(t *rapid.T, expectedIDs []string, store *cart.Store) {
	t.Helper()
	var gotIDs []string
	for e := range store.Snapshot() {
		gotIDs = append(gotIDs, e.ID)
	}
	if diff := cmp.Diff(expectedIDs, gotIDs, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("cart order mismatch (-want +got):\n%s", diff)
	}
}
