// Package memory is an in-process AssetRepository used when no database is
// configured, and by tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"assetdesk/internal/domain/asset"
	"assetdesk/internal/store/repositories"
)

type assetRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]asset.Asset
}

// NewAssetRepository returns an empty in-memory repository.
func NewAssetRepository() repositories.AssetRepository {
	return &assetRepository{nextID: 1, byID: map[int64]asset.Asset{}}
}

func (r *assetRepository) Save(ctx context.Context, a *asset.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(a)
}

func (r *assetRepository) saveLocked(a *asset.Asset) error {
	if r.serialTakenLocked(a.SerialNumber, a.ID) {
		return repositories.ErrSerialTaken
	}
	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	} else if _, ok := r.byID[a.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *assetRepository) FindByID(ctx context.Context, id int64) (*asset.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (r *assetRepository) Search(ctx context.Context, f repositories.Filter, p repositories.PageRequest) (*repositories.Page, error) {
	r.mu.RLock()
	matched := make([]asset.Asset, 0, len(r.byID))
	for _, a := range r.byID {
		if matches(a, f) {
			matched = append(matched, a)
		}
	}
	r.mu.RUnlock()

	order := p.Sort
	if len(order) == 0 {
		order = repositories.DefaultSort
	}
	slices.SortFunc(matched, func(a, b asset.Asset) int {
		for _, o := range order {
			c := compareBy(a, b, o.Field)
			if o.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID, b.ID)
	})

	page := &repositories.Page{Page: p.Page, Size: p.Size, TotalElements: int64(len(matched))}
	// a negative offset can only come from Page*Size overflowing
	start := p.Offset()
	if start < 0 || start > len(matched) {
		start = len(matched)
	}
	end := min(start+p.Size, len(matched))
	page.Items = make([]*asset.Asset, 0, end-start)
	for i := start; i < end; i++ {
		a := matched[i]
		page.Items = append(page.Items, &a)
	}
	return page, nil
}

func (r *assetRepository) ExistsBySerial(ctx context.Context, serial string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.serialTakenLocked(serial, excludeID), nil
}

func (r *assetRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *assetRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}

func (r *assetRepository) SaveAll(ctx context.Context, assets []*asset.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range assets {
		if err := r.saveLocked(a); err != nil {
			return err
		}
	}
	return nil
}

func (r *assetRepository) serialTakenLocked(serial string, excludeID int64) bool {
	for id, a := range r.byID {
		if id != excludeID && a.SerialNumber == serial {
			return true
		}
	}
	return false
}

func matches(a asset.Asset, f repositories.Filter) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Name), q) ||
		strings.Contains(strings.ToLower(a.SerialNumber), q)
}

func compareBy(a, b asset.Asset, f repositories.SortField) int {
	switch f {
	case repositories.SortName:
		return cmp.Compare(a.Name, b.Name)
	case repositories.SortSerialNumber:
		return cmp.Compare(a.SerialNumber, b.SerialNumber)
	case repositories.SortCategory:
		return cmp.Compare(a.Category, b.Category)
	case repositories.SortStatus:
		return cmp.Compare(a.Status, b.Status)
	case repositories.SortAcquisitionDate:
		return a.AcquisitionDate.Compare(b.AcquisitionDate.Time)
	case repositories.SortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case repositories.SortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}
