package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"assetdesk/internal/api"
	"assetdesk/internal/domain/asset"
	"assetdesk/internal/services/inventory"
	"assetdesk/internal/store/repositories"

	"github.com/go-chi/chi/v5"
)

// ListAssets handles GET /assets
func ListAssets(svc *inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseSearchRequest(r)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp, err := svc.Search(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// GetAsset handles GET /assets/{id}
func GetAsset(svc *inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		a, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// CreateAsset handles POST /assets
func CreateAsset(svc *inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.UpsertRequest
		if !decodeBody(w, r, &req) {
			return
		}
		a, err := svc.Create(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// UpdateAsset handles PUT /assets/{id}
func UpdateAsset(svc *inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		var req api.UpsertRequest
		if !decodeBody(w, r, &req) {
			return
		}
		a, err := svc.Update(r.Context(), id, req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// DeleteAsset handles DELETE /assets/{id}
func DeleteAsset(svc *inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, api.CodeInvalidRequest, "Malformed request body.", nil)
		return false
	}
	return true
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &inventory.ParamError{Param: "id", Message: "Invalid type for parameter. Expected: Long.", Value: raw, Malformed: true}
	}
	return id, nil
}

// parseSearchRequest parses list query parameters strictly: unlike the admin
// page, the API rejects values it cannot interpret.
func parseSearchRequest(r *http.Request) (inventory.SearchRequest, error) {
	q := r.URL.Query()
	req := inventory.SearchRequest{
		Page:   inventory.DefaultPage,
		Size:   inventory.DefaultSize,
		Filter: repositories.Filter{Query: q.Get("q")},
	}

	var err error
	if req.Page, err = intParam(q.Get("page"), "page", inventory.DefaultPage); err != nil {
		return req, err
	}
	if req.Size, err = intParam(q.Get("size"), "size", inventory.DefaultSize); err != nil {
		return req, err
	}
	if raw := strings.TrimSpace(q.Get("category")); raw != "" {
		c, ok := asset.ParseCategory(raw)
		if !ok {
			return req, enumError("category", raw)
		}
		req.Filter.Category = c
	}
	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		s, ok := asset.ParseStatus(raw)
		if !ok {
			return req, enumError("status", raw)
		}
		req.Filter.Status = s
	}
	if req.Sort, err = inventory.ParseSort(q["sort"]); err != nil {
		return req, err
	}
	return req, nil
}

func intParam(raw, name string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, &inventory.ParamError{Param: name, Message: "Invalid type for parameter. Expected: int.", Value: raw, Malformed: true}
	}
	return int(n), nil
}

func enumError(name, raw string) error {
	return &inventory.ParamError{Param: name, Message: "Invalid value for parameter.", Value: raw, Malformed: true}
}
