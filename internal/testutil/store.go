package testutil

import (
	"context"
	"sort"
	"sync"

	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
)

// MatchFunc reports whether an item belongs in a result set
type MatchFunc[T any] func(item T) bool

type SortFunc[T any] func(i, j T) bool

// InMemoryStore is a mutex-guarded map keyed by ID. The typed stores built
// on it stand in for the postgres repositories in service tests.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{items: make(map[string]T)}
}

func duplicate(id string) error {
	return ierr.NewError("duplicate key").
		WithReportableDetails(map[string]any{"id": id}).
		Mark(ierr.ErrAlreadyExists)
}

// lookup must be called with the lock held
func (s *InMemoryStore[T]) lookup(id string) (T, error) {
	item, ok := s.items[id]
	if !ok {
		return item, notFound("item", id)
	}
	return item, nil
}

func (s *InMemoryStore[T]) Create(ctx context.Context, id string, item T) error {
	return s.CreateUnique(ctx, id, item, nil)
}

// CreateUnique inserts item unless the id is taken or conflicts matches an
// existing item, the in-memory analogue of a unique index.
func (s *InMemoryStore[T]) CreateUnique(_ context.Context, id string, item T, conflicts MatchFunc[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.items[id]; taken {
		return duplicate(id)
	}
	if conflicts != nil {
		for _, existing := range s.items {
			if conflicts(existing) {
				return duplicate(id)
			}
		}
	}
	s.items[id] = item
	return nil
}

func (s *InMemoryStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id)
}

func (s *InMemoryStore[T]) Find(_ context.Context, match MatchFunc[T]) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Find(lo.Values(s.items), match)
}

func (s *InMemoryStore[T]) matching(match MatchFunc[T]) []T {
	return lo.Filter(lo.Values(s.items), func(item T, _ int) bool {
		return match == nil || match(item)
	})
}

// List filters, sorts and then pages. A nil page returns every match.
func (s *InMemoryStore[T]) List(_ context.Context, page *types.QueryFilter, match MatchFunc[T], less SortFunc[T]) ([]T, error) {
	s.mu.RLock()
	result := s.matching(match)
	s.mu.RUnlock()

	if less != nil {
		sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	}
	if page == nil {
		return result, nil
	}

	offset := min(page.GetOffset(), len(result))
	result = result[offset:]
	if !page.IsUnlimited() && page.GetLimit() < len(result) {
		result = result[:page.GetLimit()]
	}
	return result, nil
}

func (s *InMemoryStore[T]) Count(_ context.Context, match MatchFunc[T]) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(match)), nil
}

func (s *InMemoryStore[T]) Update(ctx context.Context, id string, item T) error {
	return s.Modify(ctx, id, func(T) (T, error) { return item, nil })
}

// Modify replaces the item with fn's result under the write lock, which
// makes read-check-write sequences atomic like a SELECT FOR UPDATE.
func (s *InMemoryStore[T]) Modify(_ context.Context, id string, fn func(item T) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.lookup(id)
	if err != nil {
		return err
	}
	if item, err = fn(item); err != nil {
		return err
	}
	s.items[id] = item
	return nil
}

// ModifyAll rewrites every match and returns how many changed
func (s *InMemoryStore[T]) ModifyAll(_ context.Context, match MatchFunc[T], fn func(item T) T) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, item := range s.items {
		if match(item) {
			s.items[id] = fn(item)
			n++
		}
	}
	return n
}

func (s *InMemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id); err != nil {
		return err
	}
	delete(s.items, id)
	return nil
}

func (s *InMemoryStore[T]) DeleteAll(_ context.Context, match MatchFunc[T]) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, item := range s.items {
		if match(item) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.items)
}

// matchesStatus applies the status condition every postgres list query has
func matchesStatus(page *types.QueryFilter, status types.Status) bool {
	if page == nil {
		return status == types.StatusPublished
	}
	return string(status) == page.GetStatus()
}

// clone returns a shallow copy so callers cannot mutate stored rows
func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneAll[T any](items []*T) []*T {
	return lo.Map(items, func(item *T, _ int) *T { return clone(item) })
}

// byCreatedAtDesc orders newest first, the default list order
func byCreatedAtDesc(a, b types.BaseModel) bool {
	return a.CreatedAt.After(b.CreatedAt)
}
