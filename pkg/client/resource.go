package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListResult is the server's list envelope.
type ListResult[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// Resource is a typed handle on one collection endpoint, e.g. "/students".
type Resource[T any] struct {
	c    *Client
	path string
}

func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: "/api/v1" + path}
}

// List fetches one page. Filters with empty values are left out of the query
// entirely.
func (r *Resource[T]) List(ctx context.Context, filters map[string]string, page, limit int) (*ListResult[T], error) {
	query := url.Values{}
	for k, v := range filters {
		if v != "" {
			query.Set(k, v)
		}
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var out ListResult[T]
	if err := r.c.do(ctx, http.MethodGet, r.path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, &ValidationError{Message: "id is required"}
	}
	var out T
	if err := r.c.do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Create(ctx context.Context, input any) (*T, error) {
	if input == nil {
		return nil, &ValidationError{Message: "input is required"}
	}
	var out T
	if err := r.c.do(ctx, http.MethodPost, r.path, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends a partial body: only the keys present in patch reach the wire.
func (r *Resource[T]) Update(ctx context.Context, id string, patch map[string]any) (*T, error) {
	if id == "" {
		return nil, &ValidationError{Message: "id is required"}
	}
	if len(patch) == 0 {
		return nil, &ValidationError{Message: "patch must set at least one field"}
	}
	var out T
	if err := r.c.do(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Message: "id is required"}
	}
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil, nil)
}
