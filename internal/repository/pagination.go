package repository

import "math"

// Page is a 1-based page request. Callers normalize it before it reaches storage.
type Page struct {
	Number int
	Limit  int
}

// Offset is the number of matching records to skip. It saturates at
// math.MaxInt instead of wrapping, which still lands past any real data.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Limit
}

// PageResult carries one window of items plus metadata about the whole filtered set.
type PageResult[T any] struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
	Items      []T `json:"items"`
}

// NewPageResult assembles the envelope for items fetched with p out of total matches.
func NewPageResult[T any](p Page, items []T, total int) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Page:       p.Number,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
		TotalItems: total,
		Items:      items,
	}
}

// TotalPages is ceil(total/limit), and 0 for an empty set.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// Window slices the p-th page out of an already filtered, ordered set.
// A page past the end yields an empty, non-nil slice.
func Window[T any](items []T, p Page) []T {
	start := p.Offset()
	if start < 0 || start >= len(items) || p.Limit <= 0 {
		return []T{}
	}
	end := len(items)
	if p.Limit < end-start {
		end = start + p.Limit
	}
	return items[start:end]
}
