package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"incho/internal/catalog"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Entry is one cart line: a reference to a catalog product plus a
// denormalized copy of the fields needed to render and price it,
// captured at the moment it was added.
type Entry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Quantity int     `json:"quantity"`
}

type Totals struct {
	Items int
	Price float64
}

// Store owns the shopping cart. Entries keep insertion order; totals
// are recomputed from the entries on every read. Every successful
// mutation is persisted to the cart file and reported through the
// notifier.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []Entry
	index   map[string]int
	notify  Notifier
	log     *zap.Logger
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notify = n
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// SetNotifier swaps the notification sink, so an interactive surface
// can capture notices that would otherwise go to the terminal.
func (s *Store) SetNotifier(n Notifier) {
	if n == nil {
		n = discard{}
	}
	s.mu.Lock()
	s.notify = n
	s.mu.Unlock()
}

// Open loads the cart persisted at path. A missing file starts an
// empty cart; a corrupt one starts empty and logs the parse failure.
// Persistence problems never block startup.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	s := &Store{
		path:   path,
		index:  make(map[string]int),
		notify: discard{},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()
	return s, nil
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		s.log.Warn("cart file unreadable, starting empty", zap.String("path", s.path), zap.Error(err))
		return
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("cart file corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return
	}

	for _, e := range entries {
		if e.ID == "" || e.Quantity < 1 {
			s.log.Warn("dropping invalid cart entry", zap.String("id", e.ID), zap.Int("quantity", e.Quantity))
			continue
		}
		if _, dup := s.index[e.ID]; dup {
			s.log.Warn("dropping duplicate cart entry", zap.String("id", e.ID))
			continue
		}
		s.index[e.ID] = len(s.entries)
		s.entries = append(s.entries, e)
	}
}

// Add puts qty units of p into the cart, merging with an existing
// entry for the same product. If the requested total exceeds the
// recorded stock the whole operation is rejected: no partial
// fulfillment.
func (s *Store) Add(p catalog.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	notify := s.notify

	if i, ok := s.index[p.ID]; ok {
		e := s.entries[i]
		total := e.Quantity + qty
		if total > e.Stock {
			s.mu.Unlock()
			notify.Warnf("Only %d items available in stock", e.Stock)
			return fmt.Errorf("%w: %d of %q requested, %d available", ErrInsufficientStock, total, e.Name, e.Stock)
		}
		s.entries[i].Quantity = total
	} else {
		if qty > p.Stock {
			s.mu.Unlock()
			notify.Warnf("Only %d items available in stock", p.Stock)
			return fmt.Errorf("%w: %d of %q requested, %d available", ErrInsufficientStock, qty, p.Name, p.Stock)
		}
		s.index[p.ID] = len(s.entries)
		s.entries = append(s.entries, Entry{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: p.ImageURL,
			Category: p.Category,
			Stock:    p.Stock,
			Quantity: qty,
		})
	}

	s.persistLocked()
	s.mu.Unlock()

	notify.Successf("%s added to cart", p.Name)
	return nil
}

// Remove deletes the entry for id. Removing an absent id is a silent
// no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	notify := s.notify
	if !s.removeLocked(id) {
		s.mu.Unlock()
		return
	}
	s.persistLocked()
	s.mu.Unlock()

	notify.Successf("Item removed from cart")
}

func (s *Store) removeLocked(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}

	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.entries); j++ {
		s.index[s.entries[j].ID] = j
	}
	return true
}

// SetQuantity replaces the quantity for an entry. A quantity of zero
// or less removes the entry; a quantity above the recorded stock is
// rejected with the entry unchanged. Unknown ids are a no-op.
func (s *Store) SetQuantity(id string, qty int) error {
	if qty <= 0 {
		s.Remove(id)
		return nil
	}

	s.mu.Lock()
	notify := s.notify
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}

	e := s.entries[i]
	if qty > e.Stock {
		s.mu.Unlock()
		notify.Warnf("Only %d items available in stock", e.Stock)
		return fmt.Errorf("%w: %d of %q requested, %d available", ErrInsufficientStock, qty, e.Name, e.Stock)
	}

	s.entries[i].Quantity = qty
	s.persistLocked()
	s.mu.Unlock()

	notify.Successf("%s quantity updated", e.Name)
	return nil
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	notify := s.notify
	s.entries = nil
	s.index = make(map[string]int)
	s.persistLocked()
	s.mu.Unlock()

	notify.Successf("Cart cleared")
}

// Totals recomputes the item count and price from the entries; it
// never caches.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t Totals
	for _, e := range s.entries {
		t.Items += e.Quantity
		t.Price += e.Price * float64(e.Quantity)
	}
	return t
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot returns a restartable, insertion-ordered view of the
// entries as they were at the time of the call.
func (s *Store) Snapshot() iter.Seq[Entry] {
	s.mu.Lock()
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	s.mu.Unlock()

	return func(yield func(Entry) bool) {
		for _, e := range entries {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Store) persistLocked() {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		s.log.Error("cart serialization failed", zap.Error(err))
		return
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		s.log.Error("cart write failed", zap.String("path", tmpPath), zap.Error(err))
		return
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		s.log.Error("cart rename failed", zap.String("path", s.path), zap.Error(err))
	}
}
