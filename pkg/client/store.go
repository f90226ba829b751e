package client

import (
	"context"
	"sync"
)

// Pagination mirrors the server envelope plus the requested limit.
type Pagination struct {
	Page  int
	Limit int
	Total int64
	Pages int
}

type resourceAPI[T any] interface {
	List(ctx context.Context, filters map[string]string, page, limit int) (*ListResult[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, input any) (*T, error)
	Update(ctx context.Context, id string, patch map[string]any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ListStore keeps one page of a collection plus fetch state. A failed fetch
// leaves the previous items in place; a stale response (one overtaken by a
// newer Fetch) is discarded entirely.
type ListStore[T any] struct {
	mu      sync.Mutex
	res     resourceAPI[T]
	filters map[string]string

	items      []T
	pagination Pagination
	loading    bool
	err        error

	seq uint64
}

func NewListStore[T any](res *Resource[T]) *ListStore[T] {
	return newListStore[T](res)
}

func newListStore[T any](res resourceAPI[T]) *ListStore[T] {
	return &ListStore[T]{
		res:        res,
		filters:    map[string]string{},
		items:      []T{},
		pagination: Pagination{Page: 1, Limit: 20},
	}
}

func (s *ListStore[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ListStore[T]) Pagination() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *ListStore[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ListStore[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// SetFilters replaces the filter set and rewinds to the first page. The caller
// still decides when to Fetch.
func (s *ListStore[T]) SetFilters(filters map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := map[string]string{}
	for k, v := range filters {
		if v != "" {
			next[k] = v
		}
	}
	s.filters = next
	s.pagination.Page = 1
}

// SetPage moves to page n and refetches. Out-of-range pages are ignored.
func (s *ListStore[T]) SetPage(ctx context.Context, n int) error {
	s.mu.Lock()
	if n < 1 || (s.pagination.Pages > 0 && n > s.pagination.Pages) {
		s.mu.Unlock()
		return nil
	}
	s.pagination.Page = n
	s.mu.Unlock()
	return s.Fetch(ctx)
}

// Fetch loads the current page. Responses that lose the race to a newer Fetch
// are dropped so the store never goes backwards.
func (s *ListStore[T]) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	ticket := s.seq
	s.loading = true
	filters := make(map[string]string, len(s.filters))
	for k, v := range s.filters {
		filters[k] = v
	}
	page, limit := s.pagination.Page, s.pagination.Limit
	s.mu.Unlock()

	res, err := s.res.List(ctx, filters, page, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.seq {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	s.items = res.Data
	if s.items == nil {
		s.items = []T{}
	}
	s.pagination.Total = res.Total
	s.pagination.Pages = res.Pages
	if res.Page > 0 {
		s.pagination.Page = res.Page
	}
	return nil
}

// Create posts a new item then reloads the current page.
func (s *ListStore[T]) Create(ctx context.Context, input any) (*T, error) {
	created, err := s.res.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.Fetch(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// Update patches an item then reloads the current page.
func (s *ListStore[T]) Update(ctx context.Context, id string, patch map[string]any) (*T, error) {
	updated, err := s.res.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if err := s.Fetch(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete removes an item then reloads. The delete error, if any, is returned
// untouched.
func (s *ListStore[T]) Delete(ctx context.Context, id string) error {
	if err := s.res.Delete(ctx, id); err != nil {
		return err
	}
	return s.Fetch(ctx)
}
