package listing

import (
	"slices"
	"strconv"
)

// WindowItem is one entry of a pagination control: a zero-based page index,
// or Gap for an omitted run of pages.
type WindowItem int

// Gap marks an omitted contiguous range of pages.
const Gap WindowItem = -1

// DefaultMaxVisiblePages is the page-button budget used by the admin UI.
const DefaultMaxVisiblePages = 4

func (w WindowItem) IsGap() bool { return w == Gap }

// Page returns the page index; it is meaningless for Gap.
func (w WindowItem) Page() int { return int(w) }

// Label is the human (one-based) caption of the button.
func (w WindowItem) Label() string {
	if w.IsGap() {
		return "…"
	}
	return strconv.Itoa(int(w) + 1)
}

func (w WindowItem) MarshalJSON() ([]byte, error) {
	if w.IsGap() {
		return []byte(`"ellipsis"`), nil
	}
	return []byte(strconv.Itoa(int(w))), nil
}

// BuildPageWindow returns the page buttons to render for currentPage out of
// totalPages when at most maxVisiblePages numbered buttons fit. The first and
// last pages are always kept once windowing kicks in; gaps are inserted
// between non-consecutive pages. An empty result means nothing to render.
func BuildPageWindow(currentPage, totalPages, maxVisiblePages int) []WindowItem {
	if totalPages <= 0 || maxVisiblePages <= 0 {
		return nil
	}

	if totalPages <= maxVisiblePages {
		items := make([]WindowItem, totalPages)
		for i := range items {
			items[i] = WindowItem(i)
		}
		return items
	}

	current := min(max(currentPage, 0), totalPages-1)
	last := totalPages - 1

	if maxVisiblePages == 1 {
		return []WindowItem{WindowItem(current)}
	}

	var pages []int
	if maxVisiblePages == 2 {
		pages = []int{0, last}
	} else {
		middle := maxVisiblePages - 2
		nearStart := middle
		nearEnd := totalPages - middle - 1

		switch {
		case current <= nearStart:
			pages = pageRange(0, middle+1)
			pages = append(pages, last)
		case current >= nearEnd:
			start := max(1, last-middle)
			pages = append([]int{0}, pageRange(start, last-start+1)...)
		default:
			start := current - middle/2
			pages = append([]int{0}, pageRange(start, middle)...)
			pages = append(pages, last)
		}
	}

	slices.Sort(pages)
	pages = slices.Compact(pages)

	items := make([]WindowItem, 0, len(pages)+2)
	for i, p := range pages {
		items = append(items, WindowItem(p))
		if i+1 < len(pages) && pages[i+1]-p > 1 {
			items = append(items, Gap)
		}
	}
	return items
}

func pageRange(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}
