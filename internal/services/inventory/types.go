package inventory

import (
	"math"
	"strconv"
	"strings"

	"assetdesk/internal/domain/asset"
	"assetdesk/internal/store/repositories"
)

const (
	DefaultPage = 0
	DefaultSize = 10
	MaxSize     = 100
)

// UpsertRequest is the payload of create and update
type UpsertRequest struct {
	Name            string         `json:"name" validate:"required,max=255"`
	SerialNumber    string         `json:"serialNumber" validate:"required,max=128"`
	Category        asset.Category `json:"category" validate:"required,oneof=COMPUTER PERIPHERAL NETWORK_EQUIPMENT SERVER_INFRA MOBILE_DEVICE"`
	Status          asset.Status   `json:"status" validate:"required,oneof=IN_USE IN_STOCK MAINTENANCE RETIRED"`
	AcquisitionDate string         `json:"acquisitionDate" validate:"required,datetime=2006-01-02"`
}

func (r *UpsertRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.SerialNumber = strings.TrimSpace(r.SerialNumber)
	r.AcquisitionDate = strings.TrimSpace(r.AcquisitionDate)
}

// SearchRequest represents a paginated, filtered list request
type SearchRequest struct {
	Filter repositories.Filter
	Page   int
	Size   int
	Sort   []repositories.SortOrder
}

// Validate rejects negative pages, empty sizes and pages whose row offset
// does not fit in an int, and caps the size.
func (req *SearchRequest) Validate() error {
	if req.Page < 0 {
		return &ParamError{Param: "page", Message: "`page` must be >= 0.", Value: strconv.Itoa(req.Page)}
	}
	if req.Size < 1 {
		return &ParamError{Param: "size", Message: "`size` must be >= 1.", Value: strconv.Itoa(req.Size)}
	}
	if req.Size > MaxSize {
		req.Size = MaxSize
	}
	if req.Page > math.MaxInt/req.Size {
		return &ParamError{Param: "page", Message: "`page` is out of range.", Value: strconv.Itoa(req.Page)}
	}
	if len(req.Sort) == 0 {
		req.Sort = repositories.DefaultSort
	}
	req.Filter.Query = strings.TrimSpace(req.Filter.Query)
	return nil
}

func (req SearchRequest) pageRequest() repositories.PageRequest {
	return repositories.PageRequest{Page: req.Page, Size: req.Size, Sort: req.Sort}
}

// PageResponse represents one page of assets
type PageResponse struct {
	Items         []*asset.Asset `json:"items"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}

func newPageResponse(p *repositories.Page) *PageResponse {
	items := p.Items
	if items == nil {
		items = []*asset.Asset{}
	}
	return &PageResponse{
		Items:         items,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
	}
}

// ParseSort turns `field[,asc|desc]` terms into sort orders. Blank terms are
// skipped; an unknown field or direction is an error.
func ParseSort(raw []string) ([]repositories.SortOrder, error) {
	var orders []repositories.SortOrder
	for _, term := range raw {
		if strings.TrimSpace(term) == "" {
			continue
		}
		parts := strings.Split(term, ",")
		field := repositories.SortField(strings.TrimSpace(parts[0]))
		if field == "" {
			continue
		}
		if !field.Valid() {
			return nil, &ParamError{Param: "sort", Message: "invalid `sort` field: " + string(field), Value: term}
		}

		order := repositories.SortOrder{Field: field}
		if len(parts) >= 2 && strings.TrimSpace(parts[1]) != "" {
			switch dir := strings.ToUpper(strings.TrimSpace(parts[1])); dir {
			case "ASC":
			case "DESC":
				order.Desc = true
			default:
				return nil, &ParamError{Param: "sort", Message: "invalid `sort` direction: " + strings.TrimSpace(parts[1]), Value: term}
			}
		}
		orders = append(orders, order)
	}
	if len(orders) == 0 {
		return repositories.DefaultSort, nil
	}
	return orders, nil
}
