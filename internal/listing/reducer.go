package listing

import (
	"strings"

	"assetdesk/internal/domain/asset"
)

// Action is a pure transition of the list state.
type Action func(ListState) ListState

// Apply runs the actions in order and returns the resulting state.
func (s ListState) Apply(actions ...Action) ListState {
	for _, a := range actions {
		s = a(s)
	}
	return s
}

// SetPage moves to page n; negative values land on the first page.
func SetPage(n int) Action {
	return func(s ListState) ListState {
		s.PageIndex = max(n, 0)
		return s
	}
}

// SetPageSize switches to an allowed page size and goes back to page 0.
// Sizes outside PageSizeOptions are ignored.
func SetPageSize(n int) Action {
	return func(s ListState) ListState {
		if !IsAllowedPageSize(n) || n == s.PageSize {
			return s
		}
		s.PageSize = n
		s.PageIndex = DefaultPageIndex
		return s
	}
}

// SetQuery changes the free-text search and resets the page.
func SetQuery(q string) Action {
	return func(s ListState) ListState {
		s.Query = strings.TrimSpace(q)
		s.PageIndex = DefaultPageIndex
		return s
	}
}

// SetCategory filters by category; the empty value clears the filter.
func SetCategory(c asset.Category) Action {
	return func(s ListState) ListState {
		if c != "" && !c.Valid() {
			c = ""
		}
		s.Category = c
		s.PageIndex = DefaultPageIndex
		return s
	}
}

// SetStatus filters by status; the empty value clears the filter.
func SetStatus(st asset.Status) Action {
	return func(s ListState) ListState {
		if st != "" && !st.Valid() {
			st = ""
		}
		s.Status = st
		s.PageIndex = DefaultPageIndex
		return s
	}
}

// ClearFilters drops search text and enum filters, keeping the page size.
func ClearFilters() Action {
	return func(s ListState) ListState {
		s.Query = ""
		s.Category = ""
		s.Status = ""
		s.PageIndex = DefaultPageIndex
		return s
	}
}
