package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"assetdesk/internal/api"
	"assetdesk/internal/config"
	"assetdesk/internal/domain/asset"
	"assetdesk/internal/services/inventory"
	"assetdesk/internal/store/memory"
)

func newTestRouter(t *testing.T, origins ...string) http.Handler {
	t.Helper()
	var cfg config.Cfg
	cfg.UI.MaxVisiblePages = 4
	cfg.HTTP.AllowedOrigins = origins
	return NewRouter(RouterDependencies{
		Config:    cfg,
		Inventory: inventory.NewService(memory.NewAssetRepository(), nil),
	})
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createN(t *testing.T, h http.Handler, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		rec := do(t, h, http.MethodPost, "/assets", api.UpsertRequest{
			Name:            fmt.Sprintf("Notebook %02d", i),
			SerialNumber:    fmt.Sprintf("SN-%03d", i),
			Category:        asset.CategoryComputer,
			Status:          asset.StatusInUse,
			AcquisitionDate: "2024-01-15",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var e api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAssetCRUD(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/assets", api.UpsertRequest{
		Name: "Switch 24p", SerialNumber: "NET-1", Category: asset.CategoryNetworkEquipment,
		Status: asset.StatusInStock, AcquisitionDate: "2023-05-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created asset.Asset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	require.Equal(t, "2023-05-01", created.AcquisitionDate.String())

	path := fmt.Sprintf("/assets/%d", created.ID)
	rec = do(t, h, http.MethodPut, path, api.UpsertRequest{
		Name: "Switch 48p", SerialNumber: "NET-1", Category: asset.CategoryNetworkEquipment,
		Status: asset.StatusInUse, AcquisitionDate: "2023-05-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"Switch 48p"`)

	rec = do(t, h, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.Bytes())

	rec = do(t, h, http.MethodGet, path, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, api.CodeNotFound, decodeError(t, rec).Code)
}

func TestCreateErrors(t *testing.T) {
	h := newTestRouter(t)
	createN(t, h, 1)

	rec := do(t, h, http.MethodPost, "/assets", api.UpsertRequest{
		Name: "Dup", SerialNumber: "SN-001", Category: asset.CategoryComputer,
		Status: asset.StatusInUse, AcquisitionDate: "2024-01-15",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, api.CodeSerialConflict, decodeError(t, rec).Code)

	rec = do(t, h, http.MethodPost, "/assets", api.UpsertRequest{Category: "TOASTER"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := decodeError(t, rec)
	require.Equal(t, api.CodeValidationError, e.Code)
	require.NotEmpty(t, e.Errors)

	req := httptest.NewRequest(http.MethodPost, "/assets", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, api.CodeInvalidRequest, decodeError(t, rr).Code)

	rec = do(t, h, http.MethodGet, "/assets/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, api.CodeInvalidParameter, decodeError(t, rec).Code)
}

func TestListAssets(t *testing.T) {
	h := newTestRouter(t)
	createN(t, h, 12)

	rec := do(t, h, http.MethodGet, "/assets?page=1&size=5&sort=name,asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page api.PageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, int64(12), page.TotalElements)
	require.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 5)
	require.Equal(t, "Notebook 06", page.Items[0].Name)

	rec = do(t, h, http.MethodGet, "/assets?q=notebook%2011", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, int64(1), page.TotalElements)

	rec = do(t, h, http.MethodGet, "/assets?size=1000", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, inventory.MaxSize, page.Size)
}

func TestListAssetsRejectsBadParams(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		query string
		code  string
	}{
		{"page=-1", api.CodeInvalidRequest},
		{"size=0", api.CodeInvalidRequest},
		{"page=abc", api.CodeInvalidParameter},
		{"size=1.5", api.CodeInvalidParameter},
		{"category=LAPTOP", api.CodeInvalidParameter},
		{"status=in_use", api.CodeInvalidParameter},
		{"sort=price", api.CodeInvalidRequest},
		{"sort=name,sideways", api.CodeInvalidRequest},
	}
	for _, tc := range cases {
		rec := do(t, h, http.MethodGet, "/assets?"+tc.query, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, tc.query)
		e := decodeError(t, rec)
		require.Equal(t, tc.code, e.Code, tc.query)
		require.Equal(t, "/assets", e.Path)
	}
}

func TestAdminAssetsRedirectsToCanonicalURL(t *testing.T) {
	h := newTestRouter(t)

	cases := map[string]string{
		"/admin/assets?page=0&size=10":             "/admin/assets",
		"/admin/assets?q=&category=LAPTOP&size=7":  "/admin/assets",
		"/admin/assets?status=IN_USE&q=+x+&page=0": "/admin/assets?q=x&status=IN_USE",
		"/admin/assets?size=20&page=abc&tab=open":  "/admin/assets?size=20&tab=open",
	}
	for in, want := range cases {
		rec := do(t, h, http.MethodGet, in, nil)
		require.Equal(t, http.StatusFound, rec.Code, in)
		require.Equal(t, want, rec.Header().Get("Location"), in)
	}
}

func TestAdminAssetsRendersPageWindow(t *testing.T) {
	h := newTestRouter(t)
	createN(t, h, 95)

	rec := do(t, h, http.MethodGet, "/admin/assets?page=4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	// 10 pages, current index 4, budget 4: 1 … 4 5 … 10
	require.Contains(t, body, `<a href="/admin/assets">1</a>`)
	require.Contains(t, body, `<a href="/admin/assets?page=3">4</a>`)
	require.Contains(t, body, `aria-current="page">5</span>`)
	require.Contains(t, body, `<a href="/admin/assets?page=9">10</a>`)
	require.Equal(t, 2, strings.Count(body, `class="gap"`))
	require.Contains(t, body, `<a href="/admin/assets?size=20">20</a>`)
}

func TestAdminAssetsPastLastPage(t *testing.T) {
	h := newTestRouter(t)
	createN(t, h, 3)

	for _, page := range []string{"7", "2147483648", "922337203685477581", "1844674407370955162"} {
		rec := do(t, h, http.MethodGet, "/admin/assets?page="+page, nil)
		require.Equal(t, http.StatusFound, rec.Code, page)
		require.Equal(t, "/admin/assets", rec.Header().Get("Location"), page)
	}

	// 25 assets, 3 pages of 10
	for i := 4; i <= 25; i++ {
		rec := do(t, h, http.MethodPost, "/assets", api.UpsertRequest{
			Name: fmt.Sprintf("Monitor %02d", i), SerialNumber: fmt.Sprintf("MON-%03d", i),
			Category: asset.CategoryPeripheral, Status: asset.StatusInStock, AcquisitionDate: "2024-01-15",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/admin/assets?page=922337203685477581", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/admin/assets?page=2", rec.Header().Get("Location"))
}

func TestAdminAssetsEmptyStoreResetsPage(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/admin/assets?page=3", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/admin/assets", rec.Header().Get("Location"))
}

func TestListAssetsRejectsPagesBeyondInt32(t *testing.T) {
	h := newTestRouter(t)
	createN(t, h, 3)

	for _, page := range []string{"2147483648", "922337203685477581", "1844674407370955162"} {
		rec := do(t, h, http.MethodGet, "/assets?page="+page, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, page)
		require.Equal(t, api.CodeInvalidParameter, decodeError(t, rec).Code, page)
	}

	rec := do(t, h, http.MethodGet, "/assets?page=2147483647&size=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page api.PageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Empty(t, page.Items)
	require.Equal(t, int64(3), page.TotalElements)
}

func TestCORS(t *testing.T) {
	h := newTestRouter(t, "http://localhost:5173")

	req := httptest.NewRequest(http.MethodOptions, "/assets", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodGet, "/health", nil)

	rec := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `assetdesk_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
