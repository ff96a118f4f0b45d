package models

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// Envelope is the paginated list shape returned by every backend list endpoint.
type Envelope[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"totalCount"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// Page is the pagination shape exposed to rendering code. Nothing above the API
// layer ever sees an Envelope.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Normalize translates a backend Envelope into a Page. Data is never nil.
func Normalize[T any](env Envelope[T]) Page[T] {
	data := env.Items
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:       data,
		Total:      env.TotalCount,
		Page:       env.PageNumber,
		PageSize:   env.PageSize,
		TotalPages: env.TotalPages,
	}
}

// HasNext reports whether another page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// ListParams carries the paging arguments every list endpoint accepts.
type ListParams struct {
	PageNumber int    `json:"pageNumber,omitempty"`
	PageSize   int    `json:"pageSize,omitempty"`
	SearchTerm string `json:"searchTerm,omitempty"`
}

// Normalized clamps paging arguments to the supported range.
func (p ListParams) Normalized() ListParams {
	if p.PageNumber < 1 {
		p.PageNumber = DefaultPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Apply writes the paging arguments into q.
func (p ListParams) Apply(q url.Values) {
	p = p.Normalized()
	q.Set("pageNumber", strconv.Itoa(p.PageNumber))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	if p.SearchTerm != "" {
		q.Set("searchTerm", p.SearchTerm)
	}
}
