// Package suggest implements debounced catalog-name lookup for autocomplete.
package suggest

import (
	"context"
	"sync"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/client/api"
	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/meherkandukuri/vegtrack/internal/logging"
)

const (
	// DefaultDelay is the quiet period after the last keystroke before a
	// lookup is issued.
	DefaultDelay = 300 * time.Millisecond

	// maxSuggestions caps the number of items delivered per lookup.
	maxSuggestions = 6
)

// Suggester owns a single cancellable timer: each keystroke re-arms it,
// cancelling any lookup still pending. In-flight remote calls that already
// fired are not cancelled; the last response delivered wins.
type Suggester struct {
	client api.Client
	log    logging.Logger
	delay  time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

type Option func(*Suggester)

// WithDelay overrides the debounce quiet period.
func WithDelay(d time.Duration) Option {
	return func(s *Suggester) { s.delay = d }
}

func New(client api.Client, log logging.Logger, opts ...Option) *Suggester {
	s := &Suggester{
		client: client,
		log:    log.With("component", "suggest"),
		delay:  DefaultDelay,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Suggest schedules a lookup for query and calls deliver with at most six
// matching catalog items once the quiet period elapses. An empty query
// delivers an empty list immediately without a remote call. Lookup failures
// deliver an empty list; suggestions are best-effort.
func (s *Suggester) Suggest(ctx context.Context, query string, deliver func([]models.CatalogItem)) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if query == "" {
		s.mu.Unlock()
		deliver([]models.CatalogItem{})
		return
	}

	s.timer = time.AfterFunc(s.delay, func() {
		items, err := s.client.Search(ctx, query)
		if err != nil {
			s.log.Debug(ctx, "suggestion lookup failed", "query", query, "error", err)
			deliver([]models.CatalogItem{})
			return
		}
		if len(items) > maxSuggestions {
			items = items[:maxSuggestions]
		}
		deliver(items)
	})
	s.mu.Unlock()
}

// Cancel drops any pending (not yet fired) lookup.
func (s *Suggester) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
