// Package refdata loads and caches the reference-value lists backing
// categorical attributes. Loading fails softly: an attribute whose fetch
// errors is left with an empty list and its value input degrades to free
// text; nothing blocks the rest of the form.
package refdata

import (
	"context"
	"sync"

	"audiens/internal/domain/filter"
	"audiens/pkg/logger"
)

// Value is one reference entry, normalized to an id/name pair. Upstream
// endpoints return bare {name} records; id mirrors name.
type Value struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Source fetches the legal values for one categorical attribute.
type Source interface {
	FetchValues(ctx context.Context, attributeID string) ([]Value, error)
}

// Notifier receives non-fatal load-failure notifications (the
// toast-equivalent collaborator). May be nil.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Store caches reference values per attribute. It implements filter.RefLookup.
type Store struct {
	mu       sync.RWMutex
	values   map[string][]Value
	notifier Notifier
}

// NewStore creates an empty store. notifier may be nil.
func NewStore(notifier Notifier) *Store {
	return &Store{
		values:   make(map[string][]Value),
		notifier: notifier,
	}
}

// LoadAll fetches values for every categorical attribute, one independent
// concurrent request per attribute, no retries, no ordering dependency.
// Each failure is logged, surfaced through the notifier, and recorded as an
// empty list.
func (s *Store) LoadAll(ctx context.Context, src Source) {
	var wg sync.WaitGroup
	for _, attr := range filter.CategoricalAttributes() {
		wg.Add(1)
		go func(attributeID string) {
			defer wg.Done()
			s.load(ctx, src, attributeID)
		}(attr.ID)
	}
	wg.Wait()
}

func (s *Store) load(ctx context.Context, src Source, attributeID string) {
	values, err := src.FetchValues(ctx, attributeID)
	if err != nil {
		logger.Warn(ctx, "reference values unavailable, falling back to free text",
			"attribute", attributeID,
			"error", err,
		)
		if s.notifier != nil {
			s.notifier.Notify(ctx, "could not load values for "+attributeID)
		}
		values = nil
	}
	s.mu.Lock()
	s.values[attributeID] = values
	s.mu.Unlock()
}

// Values returns the cached values for an attribute, empty when the list
// failed to load or the attribute has no list.
func (s *Store) Values(attributeID string) []Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[attributeID]
}

// HasValues reports whether a non-empty reference list exists for the
// attribute. Implements filter.RefLookup.
func (s *Store) HasValues(attributeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values[attributeID]) > 0
}

var _ filter.RefLookup = (*Store)(nil)
