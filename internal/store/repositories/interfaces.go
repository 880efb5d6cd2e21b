package repositories

import (
	"context"
	"errors"
	"strings"

	"assetdesk/internal/domain/asset"
)

var (
	// ErrNotFound is returned when no asset has the requested ID.
	ErrNotFound = errors.New("asset not found")
	// ErrSerialTaken is returned when a write would duplicate a serial number.
	ErrSerialTaken = errors.New("serial number already in use")
)

// AssetRepository defines the contract for asset data access
type AssetRepository interface {
	Save(ctx context.Context, a *asset.Asset) error
	FindByID(ctx context.Context, id int64) (*asset.Asset, error)
	Search(ctx context.Context, f Filter, p PageRequest) (*Page, error)
	ExistsBySerial(ctx context.Context, serial string, excludeID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	SaveAll(ctx context.Context, assets []*asset.Asset) error
}

// Filter narrows a search; zero fields match everything.
type Filter struct {
	Category asset.Category
	Status   asset.Status
	Query    string
}

// SortField names a sortable asset attribute as exposed by the API.
type SortField string

const (
	SortID              SortField = "id"
	SortName            SortField = "name"
	SortSerialNumber    SortField = "serialNumber"
	SortCategory        SortField = "category"
	SortStatus          SortField = "status"
	SortAcquisitionDate SortField = "acquisitionDate"
	SortCreatedAt       SortField = "createdAt"
	SortUpdatedAt       SortField = "updatedAt"
)

var sortFields = map[SortField]bool{
	SortID: true, SortName: true, SortSerialNumber: true, SortCategory: true,
	SortStatus: true, SortAcquisitionDate: true, SortCreatedAt: true, SortUpdatedAt: true,
}

// Valid reports whether f is sortable
func (f SortField) Valid() bool { return sortFields[f] }

// SortOrder is one ORDER BY term.
type SortOrder struct {
	Field SortField
	Desc  bool
}

func (o SortOrder) String() string {
	if o.Desc {
		return string(o.Field) + ",desc"
	}
	return string(o.Field) + ",asc"
}

// DefaultSort is newest first.
var DefaultSort = []SortOrder{{Field: SortID, Desc: true}}

// PageRequest is a zero-based page of a given size with its ordering.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// Offset returns the row offset of the page
func (p PageRequest) Offset() int { return p.Page * p.Size }

// SortKey is a stable textual form of the ordering, used in cache keys.
func (p PageRequest) SortKey() string {
	parts := make([]string, len(p.Sort))
	for i, o := range p.Sort {
		parts[i] = o.String()
	}
	return strings.Join(parts, ";")
}

// Page is one slice of search results
type Page struct {
	Items         []*asset.Asset
	Page          int
	Size          int
	TotalElements int64
}

// TotalPages is ceil(TotalElements / Size).
func (p *Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// EscapeLike escapes LIKE wildcards in a user supplied search term and wraps
// it for a case-insensitive contains match.
func EscapeLike(q string) string {
	s := strings.ToLower(strings.TrimSpace(q))
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
