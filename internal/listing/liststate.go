package listing

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"assetdesk/internal/domain/asset"
)

// Query-string keys used by the asset list view.
const (
	ParamPage     = "page"
	ParamSize     = "size"
	ParamQuery    = "q"
	ParamCategory = "category"
	ParamStatus   = "status"
)

const DefaultPageIndex = 0

// PageSizeOptions are the selectable page sizes; the first one is the default.
var PageSizeOptions = []int{10, 20, 50}

// DefaultPageSize is the smallest allowed page size.
var DefaultPageSize = PageSizeOptions[0]

// IsAllowedPageSize reports whether n is one of PageSizeOptions.
func IsAllowedPageSize(n int) bool {
	return slices.Contains(PageSizeOptions, n)
}

// ListState is the transient pagination, search and filter selection of the
// asset list. Empty Category or Status means no filter.
type ListState struct {
	PageIndex int            `json:"pageIndex"`
	PageSize  int            `json:"pageSize"`
	Query     string         `json:"q,omitempty"`
	Category  asset.Category `json:"category,omitempty"`
	Status    asset.Status   `json:"status,omitempty"`
}

// DefaultListState is the state of a list view opened without parameters.
func DefaultListState() ListState {
	return ListState{PageIndex: DefaultPageIndex, PageSize: DefaultPageSize}
}

// ReadListState decodes a raw query string (with or without the leading '?').
// It never fails: anything it does not recognise falls back to the default.
func ReadListState(rawQuery string) ListState {
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return ReadListStateValues(values)
}

// ReadListStateValues is ReadListState over already parsed values.
func ReadListStateValues(values url.Values) ListState {
	s := DefaultListState()

	if n, ok := parseInt(values.Get(ParamPage)); ok && n >= 0 {
		s.PageIndex = n
	}
	if n, ok := parseInt(values.Get(ParamSize)); ok && IsAllowedPageSize(n) {
		s.PageSize = n
	}
	s.Query = strings.TrimSpace(values.Get(ParamQuery))
	if c, ok := asset.ParseCategory(values.Get(ParamCategory)); ok {
		s.Category = c
	}
	if st, ok := asset.ParseStatus(values.Get(ParamStatus)); ok {
		s.Status = st
	}
	return s
}

// Normalize applies the read-side rules to an in-memory state.
func (s ListState) Normalize() ListState {
	if s.PageIndex < 0 {
		s.PageIndex = DefaultPageIndex
	}
	if !IsAllowedPageSize(s.PageSize) {
		s.PageSize = DefaultPageSize
	}
	s.Query = strings.TrimSpace(s.Query)
	if !s.Category.Valid() {
		s.Category = ""
	}
	if !s.Status.Valid() {
		s.Status = ""
	}
	return s
}

// IsDefault reports whether every field holds its default or is absent.
func (s ListState) IsDefault() bool {
	return s == DefaultListState()
}

// HasFilters reports whether search text or an enum filter is active.
func (s ListState) HasFilters() bool {
	return s.Query != "" || s.Category != "" || s.Status != ""
}

// Offset is the row offset of the first item on the current page.
func (s ListState) Offset() int {
	return s.PageIndex * s.PageSize
}

// Encode writes s into values, deleting every parameter that equals its
// default. Unrelated parameters are left untouched.
func (s ListState) Encode(values url.Values) {
	setOrDelete(values, ParamPage, s.PageIndex != DefaultPageIndex, strconv.Itoa(s.PageIndex))
	setOrDelete(values, ParamSize, s.PageSize != DefaultPageSize, strconv.Itoa(s.PageSize))
	q := strings.TrimSpace(s.Query)
	setOrDelete(values, ParamQuery, q != "", q)
	setOrDelete(values, ParamCategory, s.Category != "", string(s.Category))
	setOrDelete(values, ParamStatus, s.Status != "", string(s.Status))
}

// WriteListState returns current with its query string replaced by the
// encoding of s. Path and fragment are kept verbatim. changed is false when
// the resulting query string is identical to the current one.
func WriteListState(current *url.URL, s ListState) (next *url.URL, changed bool) {
	values := current.Query()
	s.Encode(values)

	u := *current
	u.RawQuery = values.Encode()
	u.ForceQuery = false
	return &u, u.RawQuery != current.RawQuery
}

func setOrDelete(values url.Values, key string, set bool, value string) {
	if !set {
		values.Del(key)
		return
	}
	values.Set(key, value)
}

// parseInt accepts plain base-10 integers only; "1.0", "1e1" and "0x10" are
// rejected rather than read as whole numbers.
func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
