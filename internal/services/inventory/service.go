package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"assetdesk/internal/cache"
	"assetdesk/internal/domain/asset"
	"assetdesk/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// Service handles asset inventory operations
type Service struct {
	repo  repositories.AssetRepository
	cache cache.ListCache
	now   func() time.Time
}

// NewService creates a new inventory service. A nil cache disables caching.
func NewService(repo repositories.AssetRepository, c cache.ListCache) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{repo: repo, cache: c, now: time.Now}
}

// Search returns one page of assets matching the request
func (s *Service) Search(ctx context.Context, req SearchRequest) (*PageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := cache.ListKey(req.Filter, req.pageRequest())
	if resp, ok := s.cachedPage(ctx, key); ok {
		return resp, nil
	}

	page, err := s.repo.Search(ctx, req.Filter, req.pageRequest())
	if err != nil {
		return nil, &ServiceError{Op: "search", Err: err}
	}
	resp := newPageResponse(page)

	if b, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, key, b); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("list cache write failed")
		}
	}
	return resp, nil
}

// Get returns one asset by ID
func (s *Service) Get(ctx context.Context, id int64) (*asset.Asset, error) {
	a, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, &ServiceError{Op: "get", Err: err}
	}
	return a, nil
}

// Create validates and stores a new asset
func (s *Service) Create(ctx context.Context, req UpsertRequest) (*asset.Asset, error) {
	acquired, err := s.checkUpsert(&req)
	if err != nil {
		return nil, err
	}
	if err := s.checkSerial(ctx, req.SerialNumber, 0); err != nil {
		return nil, err
	}

	a := asset.New(req.Name, req.SerialNumber, req.Category, req.Status, acquired)
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, s.writeError("create", req.SerialNumber, 0, err)
	}

	s.invalidate(ctx)
	log.Info().Int64("asset_id", a.ID).Str("serial", a.SerialNumber).Msg("asset created")
	return a, nil
}

// Update replaces the fields of an existing asset
func (s *Service) Update(ctx context.Context, id int64, req UpsertRequest) (*asset.Asset, error) {
	acquired, err := s.checkUpsert(&req)
	if err != nil {
		return nil, err
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkSerial(ctx, req.SerialNumber, id); err != nil {
		return nil, err
	}

	a.Apply(req.Name, req.SerialNumber, req.Category, req.Status, acquired)
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, s.writeError("update", req.SerialNumber, id, err)
	}

	s.invalidate(ctx)
	log.Info().Int64("asset_id", a.ID).Msg("asset updated")
	return a, nil
}

// Delete removes an asset
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.writeError("delete", "", id, err)
	}
	s.invalidate(ctx)
	log.Info().Int64("asset_id", id).Msg("asset deleted")
	return nil
}

func (s *Service) checkUpsert(req *UpsertRequest) (asset.Date, error) {
	req.normalize()
	if err := validateUpsert(req); err != nil {
		return asset.Date{}, err
	}

	acquired, err := asset.ParseDate(req.AcquisitionDate)
	if err != nil {
		return asset.Date{}, &ValidationError{Fields: []FieldError{{
			Field: "acquisitionDate", Message: "must be a date in the format 2006-01-02", RejectedValue: rejected(req.AcquisitionDate),
		}}}
	}
	if acquired.After(s.now()) {
		return asset.Date{}, &ValidationError{Fields: []FieldError{{
			Field: "acquisitionDate", Message: "must be a date in the past or in the present", RejectedValue: rejected(req.AcquisitionDate),
		}}}
	}
	return acquired, nil
}

func (s *Service) checkSerial(ctx context.Context, serial string, excludeID int64) error {
	taken, err := s.repo.ExistsBySerial(ctx, serial, excludeID)
	if err != nil {
		return &ServiceError{Op: "check_serial", Err: err}
	}
	if taken {
		return &ConflictError{SerialNumber: serial}
	}
	return nil
}

func (s *Service) writeError(op, serial string, id int64, err error) error {
	switch {
	case errors.Is(err, repositories.ErrSerialTaken):
		return &ConflictError{SerialNumber: serial}
	case errors.Is(err, repositories.ErrNotFound):
		return &NotFoundError{ID: id}
	default:
		return &ServiceError{Op: op, Err: err}
	}
}

func (s *Service) cachedPage(ctx context.Context, key string) (*PageResponse, bool) {
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("list cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var resp PageResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("list cache entry unreadable")
		return nil, false
	}
	return &resp, true
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateLists(ctx); err != nil {
		log.Warn().Err(err).Msg("list cache invalidation failed")
	}
}
