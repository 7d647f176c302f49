package proptest

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"pgregory.net/rapid"

	"incho/internal/cart"
	"incho/internal/catalog"
)

const (
	typicalMinEntries = 1
	typicalMaxEntries = 10
)

// captureNotifier records every notification so properties can assert
// on the exact sequence of user-facing messages.
type captureNotifier struct {
	mu       sync.Mutex
	messages []string
	warnings []string
}

func (n *captureNotifier) Successf(format string, args ...any) {
	n.mu.Lock()
	n.messages = append(n.messages, fmt.Sprintf(format, args...))
	n.mu.Unlock()
}

func (n *captureNotifier) Warnf(format string, args ...any) {
	n.mu.Lock()
	n.warnings = append(n.warnings, fmt.Sprintf(format, args...))
	n.mu.Unlock()
}

func (n *captureNotifier) Warnings() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.warnings...)
}

type AddedEntry struct {
	Product  catalog.Product
	Quantity int
}

type CartHarness struct {
	T        *rapid.T
	Dir      string
	Store    *cart.Store
	Notifier *captureNotifier
}

func (h *CartHarness) CartPath() string {
	return filepath.Join(h.Dir, "cart.json")
}

// Reopen loads a fresh store from the same file, as a new process
// would.
func (h *CartHarness) Reopen() *cart.Store {
	store, err := cart.Open(h.CartPath())
	if err != nil {
		h.T.Fatalf("failed to reopen cart: %v", err)
	}
	return store
}

// FillCart adds a random number of distinct products and returns the
// ones that were accepted.
func (h *CartHarness) FillCart(minCount, maxCount int) []AddedEntry {
	var added []AddedEntry
	n := rapid.IntRange(minCount, maxCount).Draw(h.T, "numEntries")
	for range n {
		p := GenProduct(h.T)
		qty := rapid.IntRange(1, maxQuantity).Draw(h.T, "qty")
		if err := h.Store.Add(p, qty); err == nil {
			added = append(added, AddedEntry{Product: p, Quantity: qty})
		}
	}
	return added
}

func RunWithCart(t *testing.T, fn func(h *CartHarness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		notifier := &captureNotifier{}
		store, err := cart.Open(filepath.Join(iterDir, "cart.json"),
			cart.WithNotifier(notifier))
		if err != nil {
			rt.Fatalf("failed to open cart: %v", err)
		}

		fn(&CartHarness{
			T:        rt,
			Dir:      iterDir,
			Store:    store,
			Notifier: notifier,
		})
	})
}
