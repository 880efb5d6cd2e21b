package listing

import "net/url"

// History is the address-bar owner of a list view. Replace swaps the current
// entry; it never pushes a new one.
type History interface {
	Replace(u *url.URL)
}

// HistoryFunc adapts a function to History.
type HistoryFunc func(u *url.URL)

func (f HistoryFunc) Replace(u *url.URL) { f(u) }

// Syncer mirrors a ListState into a URL and replaces the history entry only
// when the encoded query string actually changes. It is meant to be driven
// from a single goroutine, like the view that owns it.
type Syncer struct {
	history History
	current *url.URL
}

func NewSyncer(h History, current *url.URL) *Syncer {
	u := *current
	return &Syncer{history: h, current: &u}
}

// Sync encodes s and reports whether the history entry was replaced.
func (sy *Syncer) Sync(s ListState) bool {
	next, changed := WriteListState(sy.current, s)
	if !changed {
		return false
	}
	sy.current = next
	sy.history.Replace(next)
	return true
}

// URL returns a copy of the last synced URL.
func (sy *Syncer) URL() *url.URL {
	u := *sy.current
	return &u
}

// State reads the list state back from the last synced URL.
func (sy *Syncer) State() ListState {
	return ReadListStateValues(sy.current.Query())
}
