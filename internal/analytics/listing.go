package analytics

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize is used when a page size is missing or not positive.
const DefaultPageSize = 10

// Predicate selects items. A nil Predicate matches everything.
type Predicate[T any] func(T) bool

// Filter keeps the items matching every predicate (logical AND).
// Nil predicates are unset filters and constrain nothing.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, p := range active {
			if !p(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// MatchText matches items where any field contains query, case-insensitively.
// An empty query returns nil.
func MatchText[T any](query string, fields ...func(T) string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return func(item T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(item)), q) {
				return true
			}
		}
		return false
	}
}

func parseBound(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// InRange matches items whose value lies within [lower, upper]. Each bound is
// independently optional: an empty or unparsable bound does not constrain.
func InRange[T any](lower, upper string, value func(T) float64) Predicate[T] {
	lo, hasLo := parseBound(lower)
	hi, hasHi := parseBound(upper)
	if !hasLo && !hasHi {
		return nil
	}
	return func(item T) bool {
		v := value(item)
		if hasLo && v < lo {
			return false
		}
		if hasHi && v > hi {
			return false
		}
		return true
	}
}

// InSet matches items whose field is one of values. An empty set returns nil.
func InSet[T any, V comparable](values []V, field func(T) V) Predicate[T] {
	if len(values) == 0 {
		return nil
	}
	set := make(map[V]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(item T) bool {
		_, ok := set[field(item)]
		return ok
	}
}

// Equals matches items whose field equals want exactly. An empty want returns nil.
func Equals[T any](want string, field func(T) string) Predicate[T] {
	if want == "" {
		return nil
	}
	return func(item T) bool {
		return field(item) == want
	}
}

// SortField names a sortable field. Exactly one of Text or Number is set.
type SortField[T any] struct {
	Name   string
	Text   func(T) string
	Number func(T) float64
}

// Sort returns a stably sorted copy of items. Text fields compare with
// case-insensitive locale collation, numbers by difference; desc reverses.
func Sort[T any](items []T, field SortField[T], desc bool) []T {
	out := slices.Clone(items)
	if field.Text == nil && field.Number == nil {
		return out
	}

	var compare func(a, b T) int
	if field.Text != nil {
		col := collate.New(language.English, collate.IgnoreCase)
		compare = func(a, b T) int {
			return col.CompareString(field.Text(a), field.Text(b))
		}
	} else {
		compare = func(a, b T) int {
			return cmp.Compare(field.Number(a), field.Number(b))
		}
	}

	slices.SortStableFunc(out, func(a, b T) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

// Page is one slice of a filtered and sorted list. From and To are the
// 1-based positions shown as "from–to of total"; both are zero when empty.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
	From       int `json:"from"`
	To         int `json:"to"`
}

// Paginate slices items by a 1-based page number, clamping page into
// [1, totalPages]. TotalPages is at least 1.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(items)
	totalPages := max((total+size-1)/size, 1)
	page = min(max(page, 1), totalPages)

	start := (page - 1) * size
	end := min(start+size, total)

	p := Page[T]{
		Items:      append([]T{}, items[start:end]...),
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		Total:      total,
	}
	if total > 0 {
		p.From = start + 1
		p.To = end
	}
	return p
}
