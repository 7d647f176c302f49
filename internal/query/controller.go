// Package query owns the storefront's search, filter and sort inputs.
// Criteria mutations are debounced into at most one catalog request
// per quiet period, and responses carry a token so that only the
// latest request may update the result set: a reply to a superseded
// request is discarded, never an error.
package query

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"incho/internal/catalog"
)

// DefaultQuietPeriod is the delay after the last criteria change
// before a request is issued.
const DefaultQuietPeriod = 300 * time.Millisecond

// Patch is a partial criteria update; nil fields keep their current
// value.
type Patch struct {
	Search      *string
	Category    *string
	MinPrice    *float64
	MaxPrice    *float64
	StockStatus *catalog.StockStatus
	SortBy      *catalog.SortKey
}

// Controller coalesces criteria changes into catalog queries and owns
// the last-fetched result set plus its loading/error status.
type Controller struct {
	client catalog.Client
	deb    *Debouncer
	quiet  time.Duration
	warn   func(string)
	log    *zap.Logger

	mu       sync.Mutex
	criteria catalog.Criteria
	results  []catalog.Product
	token    uint64
	loading  bool
	err      error
	onUpdate func()
}

type Option func(*Controller)

func WithQuietPeriod(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.quiet = d
		}
	}
}

// WithWarn installs the sink for user-facing query failure warnings.
func WithWarn(fn func(string)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.warn = fn
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

func New(client catalog.Client, opts ...Option) *Controller {
	c := &Controller{
		client:   client,
		quiet:    DefaultQuietPeriod,
		warn:     func(string) {},
		log:      zap.NewNop(),
		criteria: catalog.DefaultCriteria(),
		onUpdate: func() {},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.deb = NewDebouncer(c.quiet)
	return c
}

// OnUpdate registers a callback invoked after every state change
// (loading flips, results applied, errors recorded). The callback
// must not call back into the controller synchronously.
func (c *Controller) OnUpdate(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	c.mu.Lock()
	c.onUpdate = fn
	c.mu.Unlock()
}

// SetCriteria merges a partial update and restarts the quiet-period
// timer. Only after the period elapses without further changes is a
// request issued, built from the criteria at that moment.
func (c *Controller) SetCriteria(p Patch) {
	c.mu.Lock()
	if p.Search != nil {
		c.criteria.Search = *p.Search
	}
	if p.Category != nil {
		c.criteria.Category = *p.Category
	}
	if p.MinPrice != nil {
		c.criteria.MinPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		c.criteria.MaxPrice = *p.MaxPrice
	}
	if p.StockStatus != nil {
		c.criteria.StockStatus = *p.StockStatus
	}
	if p.SortBy != nil {
		c.criteria.SortBy = *p.SortBy
	}
	c.mu.Unlock()

	c.deb.Debounce(c.dispatch)
}

// QueryNow bypasses the debounce and issues a request immediately.
func (c *Controller) QueryNow() {
	c.deb.Immediate(c.dispatch)
}

// Reset restores the default criteria and re-queries immediately.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.criteria = catalog.DefaultCriteria()
	c.mu.Unlock()

	c.QueryNow()
}

// Close stops any pending debounced dispatch. In-flight requests are
// not interrupted; their responses fall to the token check.
func (c *Controller) Close() {
	c.deb.Cancel()
}

func (c *Controller) Criteria() catalog.Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

func (c *Controller) Results() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.results)
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Controller) dispatch() {
	c.mu.Lock()
	c.token++
	token := c.token
	crit := c.criteria
	c.loading = true
	notify := c.onUpdate
	c.mu.Unlock()

	c.log.Debug("issuing catalog query",
		zap.Uint64("token", token),
		zap.String("params", crit.Values().Encode()))
	notify()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		products, err := c.client.Products(ctx, crit)
		c.apply(token, products, err)
	}()
}

// apply installs a response unless a newer request has been issued
// since. Logical cancellation only: the transport is never aborted.
func (c *Controller) apply(token uint64, products []catalog.Product, err error) {
	c.mu.Lock()
	if token != c.token {
		c.mu.Unlock()
		c.log.Debug("discarding stale catalog response", zap.Uint64("token", token))
		return
	}

	c.loading = false
	notify := c.onUpdate
	if err != nil {
		// Keep the previous result set: a failed refresh must not
		// blank the storefront.
		c.err = err
		c.mu.Unlock()

		c.log.Warn("catalog query failed", zap.Uint64("token", token), zap.Error(err))
		c.warn("Failed to load products")
		notify()
		return
	}

	c.err = nil
	c.results = products
	c.mu.Unlock()

	notify()
}
