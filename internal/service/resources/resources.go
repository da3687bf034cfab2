// Package resources maps the inventory API's REST endpoints one to one, and
// normalizes their response envelopes at this boundary so callers never unwrap
// responses themselves.
package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
)

// ErrUnsupported is returned for operations the API does not implement.
var ErrUnsupported = errors.New("operation not supported by the inventory API")

// Transport executes API requests. *backend.Client implements it.
type Transport interface {
	Do(ctx context.Context, req backend.Request) ([]byte, error)
}

const (
	allPageSize = 100
	maxAllPages = 200
)

// Keys under which list endpoints nest their array, tried after the
// resource's own key.
var genericListKeys = []string{"docs", "data", "items", "results"}

func path(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		if i == 0 {
			escaped[i] = p
			continue
		}
		escaped[i] = url.PathEscape(p)
	}
	return "/" + strings.Join(escaped, "/")
}

func fetchList[T any](ctx context.Context, t Transport, p string, query url.Values, fallback string, keys ...string) (models.ListResult[T], error) {
	body, err := t.Do(ctx, backend.Request{Method: http.MethodGet, Path: p, Query: query, Fallback: fallback})
	if err != nil {
		return models.ListResult[T]{}, err
	}
	result, err := decodeList[T](body, keys...)
	if err != nil {
		return models.ListResult[T]{}, fmt.Errorf("%s: %w", fallback, err)
	}
	return result, nil
}

// fetchAll walks every page of a list endpoint.
func fetchAll[T any](ctx context.Context, t Transport, p string, params models.ListParams, fallback string, keys ...string) ([]T, error) {
	params.Limit = allPageSize
	params.Page = 1

	var all []T
	for n := 0; n < maxAllPages; n++ {
		page, err := fetchList[T](ctx, t, p, params.Values(), fallback, keys...)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if !page.HasMore() || len(page.Items) == 0 {
			return all, nil
		}
		params.Page++
	}
	return all, nil
}

func fetchOne[T any](ctx context.Context, t Transport, method, p string, payload any, fallback string, keys ...string) (T, error) {
	var zero T
	body, err := t.Do(ctx, backend.Request{Method: method, Path: p, Body: payload, Fallback: fallback})
	if err != nil {
		return zero, err
	}
	v, err := decodeOne[T](body, keys...)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", fallback, err)
	}
	return v, nil
}

func call(ctx context.Context, t Transport, method, p string, payload any, fallback string) error {
	_, err := t.Do(ctx, backend.Request{Method: method, Path: p, Body: payload, Fallback: fallback})
	return err
}

// decodeList accepts a bare array or an object holding the array under one of
// keys or the generic wrapper keys. Records that fail to decode are skipped
// and counted so one bad record never hides the rest.
func decodeList[T any](body []byte, keys ...string) (models.ListResult[T], error) {
	var result models.ListResult[T]
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		result.Items = []T{}
		result.Page, result.TotalPages = 1, 1
		return result, nil
	}

	if body[0] == '[' {
		items, skipped, err := decodeItems[T](body)
		if err != nil {
			return result, err
		}
		return models.ListResult[T]{Items: items, Page: 1, TotalPages: 1, Total: len(items), Skipped: skipped}, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return result, fmt.Errorf("decode list response: %w", err)
	}

	raw, ok := findArray(obj, keys)
	if !ok {
		// {data: {products: [...], total: n}}
		if nested, isObj := obj["data"]; isObj && isObject(nested) {
			return decodeList[T](nested, keys...)
		}
		return result, errors.New("decode list response: no list found in response")
	}

	items, skipped, err := decodeItems[T](raw)
	if err != nil {
		return result, err
	}

	result.Items = items
	result.Skipped = skipped
	result.Page = intField(obj, "currentPage", "page")
	result.TotalPages = intField(obj, "totalPages", "pages")
	result.Total = intField(obj, "total", "totalDocs", "count")
	if result.Page == 0 {
		result.Page = 1
	}
	if result.TotalPages == 0 {
		result.TotalPages = 1
	}
	if result.Total == 0 {
		result.Total = len(items)
	}
	return result, nil
}

func findArray(obj map[string]json.RawMessage, keys []string) (json.RawMessage, bool) {
	for _, key := range append(append([]string{}, keys...), genericListKeys...) {
		raw, ok := obj[key]
		if ok && len(bytes.TrimSpace(raw)) > 0 && bytes.TrimSpace(raw)[0] == '[' {
			return raw, true
		}
	}
	return nil, false
}

func decodeItems[T any](raw json.RawMessage) ([]T, int, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, 0, fmt.Errorf("decode list items: %w", err)
	}

	items := make([]T, 0, len(records))
	skipped := 0
	for _, rec := range records {
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped, nil
}

// decodeOne accepts a bare entity or one wrapped under one of keys or "data".
func decodeOne[T any](body []byte, keys ...string) (T, error) {
	var v T
	body = bytes.TrimSpace(body)
	if isObject(body) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err == nil {
			if _, isEntity := obj["_id"]; !isEntity {
				for _, key := range append(append([]string{}, keys...), "data") {
					if raw, ok := obj[key]; ok && isObject(raw) {
						body = raw
						break
					}
				}
			}
		}
	}

	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func intField(obj map[string]json.RawMessage, names ...string) int {
	for _, name := range names {
		raw, ok := obj[name]
		if !ok {
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			continue
		}
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	}
	return 0
}

type statusUpdate struct {
	Status string `json:"status"`
}
