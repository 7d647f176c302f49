package proptest

import (
	"errors"
	"slices"

	"pgregory.net/rapid"

	"incho/internal/cart"
	"incho/internal/catalog"
)

type modelEntry struct {
	Name     string
	Price    float64
	Stock    int
	Quantity int
}

// StateTracker is a plain-map model of the cart used to cross-check
// the real store's behavior. It mirrors the quantity rules exactly:
// merges validate against the stock recorded when the entry was
// first added, and rejected mutations change nothing.
type StateTracker struct {
	entries map[string]modelEntry
	order   []string
}

func newStateTracker() *StateTracker {
	return &StateTracker{entries: make(map[string]modelEntry)}
}

func (s *StateTracker) Add(p catalog.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if e, ok := s.entries[p.ID]; ok {
		if e.Quantity+qty > e.Stock {
			return cart.ErrInsufficientStock
		}
		e.Quantity += qty
		s.entries[p.ID] = e
		return nil
	}
	if qty > p.Stock {
		return cart.ErrInsufficientStock
	}
	s.entries[p.ID] = modelEntry{Name: p.Name, Price: p.Price, Stock: p.Stock, Quantity: qty}
	s.order = append(s.order, p.ID)
	return nil
}

func (s *StateTracker) Remove(id string) {
	if _, ok := s.entries[id]; !ok {
		return
	}
	delete(s.entries, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
}

func (s *StateTracker) SetQuantity(id string, qty int) error {
	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	if qty <= 0 {
		s.Remove(id)
		return nil
	}
	if qty > e.Stock {
		return cart.ErrInsufficientStock
	}
	e.Quantity = qty
	s.entries[id] = e
	return nil
}

func (s *StateTracker) Clear() {
	s.entries = make(map[string]modelEntry)
	s.order = nil
}

func (s *StateTracker) IDs() []string {
	return slices.Clone(s.order)
}

func (s *StateTracker) Totals() cart.Totals {
	var t cart.Totals
	for _, e := range s.entries {
		t.Items += e.Quantity
		t.Price += e.Price * float64(e.Quantity)
	}
	return t
}

// CheckedCart runs every operation against the real store and the
// model, and fails on any divergence.
type CheckedCart struct {
	real  *cart.Store
	model *StateTracker
	t     *rapid.T
}

func NewCheckedCart(t *rapid.T, store *cart.Store) *CheckedCart {
	return &CheckedCart{real: store, model: newStateTracker(), t: t}
}

func (c *CheckedCart) Model() *StateTracker {
	return c.model
}

func (c *CheckedCart) Add(p catalog.Product, qty int) error {
	realErr := c.real.Add(p, qty)
	modelErr := c.model.Add(p, qty)
	if (realErr == nil) != (modelErr == nil) {
		c.t.Fatalf("Add divergence: real=%v model=%v", realErr, modelErr)
	}
	if realErr != nil && !errors.Is(realErr, cart.ErrInsufficientStock) {
		c.t.Fatalf("Add failed with unexpected error: %v", realErr)
	}
	c.verify()
	return realErr
}

func (c *CheckedCart) Remove(id string) {
	c.real.Remove(id)
	c.model.Remove(id)
	c.verify()
}

func (c *CheckedCart) SetQuantity(id string, qty int) error {
	realErr := c.real.SetQuantity(id, qty)
	modelErr := c.model.SetQuantity(id, qty)
	if (realErr == nil) != (modelErr == nil) {
		c.t.Fatalf("SetQuantity divergence: real=%v model=%v", realErr, modelErr)
	}
	c.verify()
	return realErr
}

func (c *CheckedCart) Clear() {
	c.real.Clear()
	c.model.Clear()
	c.verify()
}

func (c *CheckedCart) verify() {
	verifyCartInvariants(c.t, c.real)
	assertSameOrder(c.t, c.model.IDs(), c.real)

	realTotals := c.real.Totals()
	modelTotals := c.model.Totals()
	if realTotals.Items != modelTotals.Items || !approxEqual(realTotals.Price, modelTotals.Price) {
		c.t.Fatalf("totals divergence: real=%+v model=%+v", realTotals, modelTotals)
	}

	for e := range c.real.Snapshot() {
		m, ok := c.model.entries[e.ID]
		if !ok {
			c.t.Fatalf("real cart holds %s missing from model", e.ID)
		}
		if m.Quantity != e.Quantity {
			c.t.Fatalf("quantity divergence for %s: real=%d model=%d", e.ID, e.Quantity, m.Quantity)
		}
	}
}
