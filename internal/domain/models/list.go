package models

import (
	"net/url"
	"strconv"
	"time"
)

const queryDateLayout = "2006-01-02"

// ListParams are the optional query parameters accepted by list endpoints.
// Zero values are never sent.
type ListParams struct {
	Page       int
	Limit      int
	Status     string
	Search     string
	StartDate  time.Time
	EndDate    time.Time
	ProductID  string
	CategoryID string
	SortBy     string
	SortOrder  string
}

// Values encodes the non-empty parameters.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	setInt := func(key string, n int) {
		if n > 0 {
			v.Set(key, strconv.Itoa(n))
		}
	}
	setString := func(key, s string) {
		if s != "" {
			v.Set(key, s)
		}
	}
	setDate := func(key string, t time.Time) {
		if !t.IsZero() {
			v.Set(key, t.Format(queryDateLayout))
		}
	}

	setInt("page", p.Page)
	setInt("limit", p.Limit)
	setString("status", p.Status)
	setString("search", p.Search)
	setDate("startDate", p.StartDate)
	setDate("endDate", p.EndDate)
	setString("productId", p.ProductID)
	setString("categoryId", p.CategoryID)
	setString("sortBy", p.SortBy)
	setString("sortOrder", p.SortOrder)
	return v
}

// ListResult is the normalized shape of every list endpoint, whether the API
// answered with a bare array or a wrapped, paginated object.
type ListResult[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
	// Skipped counts records that could not be decoded and were left out.
	Skipped int `json:"skipped,omitempty"`
}

// HasMore reports whether pages after this one exist.
func (r ListResult[T]) HasMore() bool {
	return r.TotalPages > 0 && r.Page < r.TotalPages
}
