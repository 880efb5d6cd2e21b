// Package cache keeps rendered asset list pages so repeated list requests do
// not hit the database. Every write to the asset store invalidates all list
// pages at once.
package cache

import (
	"context"
	"fmt"
	"strconv"

	"assetdesk/internal/store/repositories"
)

// ListCache stores serialized list pages by key.
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	InvalidateLists(ctx context.Context) error
}

// ListKey is the canonical cache key of a search.
func ListKey(f repositories.Filter, p repositories.PageRequest) string {
	return fmt.Sprintf("c=%s|s=%s|q=%s|p=%d|n=%d|o=%s",
		f.Category, f.Status, strconv.Quote(f.Query), p.Page, p.Size, p.SortKey())
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte) error         { return nil }
func (Noop) InvalidateLists(context.Context) error             { return nil }
