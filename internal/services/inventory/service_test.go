package inventory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"assetdesk/internal/domain/asset"
	"assetdesk/internal/store/memory"
	"assetdesk/internal/store/repositories"
)

type mapCache struct {
	entries     map[string][]byte
	invalidated int
}

func newMapCache() *mapCache { return &mapCache{entries: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := c.entries[key]
	return b, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte) error {
	c.entries[key] = value
	return nil
}

func (c *mapCache) InvalidateLists(context.Context) error {
	c.invalidated++
	c.entries = map[string][]byte{}
	return nil
}

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mapCache) {
	t.Helper()
	c := newMapCache()
	svc := NewService(memory.NewAssetRepository(), c)
	svc.now = func() time.Time { return fixedNow }
	return svc, c
}

func validRequest() UpsertRequest {
	return UpsertRequest{
		Name:            "  ThinkPad T14 ",
		SerialNumber:    "SN-001",
		Category:        asset.CategoryComputer,
		Status:          asset.StatusInUse,
		AcquisitionDate: "2024-02-10",
	}
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "ThinkPad T14", created.Name)
	require.Equal(t, "2024-02-10", created.AcquisitionDate.String())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.SerialNumber, got.SerialNumber)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)

	req := UpsertRequest{Name: "   ", Category: "TOASTER", AcquisitionDate: "10/02/2024"}
	_, err := svc.Create(context.Background(), req)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	require.Contains(t, fields, "name")
	require.Contains(t, fields, "serialNumber")
	require.Contains(t, fields, "category")
	require.Contains(t, fields, "status")
	require.Contains(t, fields, "acquisitionDate")
}

func TestCreateRejectsFutureDate(t *testing.T) {
	svc, _ := newTestService(t)
	req := validRequest()
	req.AcquisitionDate = "2025-06-16"

	_, err := svc.Create(context.Background(), req)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "acquisitionDate", verr.Fields[0].Field)

	req.AcquisitionDate = "2025-06-15"
	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err, "today is allowed")
}

func TestCreateConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, validRequest())
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, "SN-001", conflict.SerialNumber)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	a, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	other := validRequest()
	other.SerialNumber = "SN-002"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	req := validRequest()
	req.Status = asset.StatusRetired
	updated, err := svc.Update(ctx, a.ID, req)
	require.NoError(t, err, "keeping its own serial is not a conflict")
	require.Equal(t, asset.StatusRetired, updated.Status)

	req.SerialNumber = "SN-002"
	_, err = svc.Update(ctx, a.ID, req)
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))

	_, err = svc.Update(ctx, 999, validRequest())
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, int64(999), nf.ID)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	a, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	var nf *NotFoundError
	require.True(t, errors.As(svc.Delete(ctx, a.ID), &nf))
}

func TestSearchCachesAndInvalidates(t *testing.T) {
	svc, c := newTestService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	resp, err := svc.Search(ctx, SearchRequest{Size: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.TotalElements)
	require.Len(t, c.entries, 1)

	cached, err := svc.Search(ctx, SearchRequest{Size: 10})
	require.NoError(t, err)
	require.Equal(t, resp.TotalElements, cached.TotalElements)
	require.Equal(t, resp.Items[0].SerialNumber, cached.Items[0].SerialNumber)

	other := validRequest()
	other.SerialNumber = "SN-009"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)
	require.Empty(t, c.entries, "writes must invalidate list pages")

	resp, err = svc.Search(ctx, SearchRequest{Size: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.TotalElements)
}

func TestSearchValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Search(ctx, SearchRequest{Page: -1, Size: 10})
	var perr *ParamError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "page", perr.Param)

	_, err = svc.Search(ctx, SearchRequest{Size: 0})
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "size", perr.Param)

	resp, err := svc.Search(ctx, SearchRequest{Size: 500})
	require.NoError(t, err)
	require.Equal(t, MaxSize, resp.Size)
	require.NotNil(t, resp.Items)
}

func TestSearchRejectsPageWhoseOffsetOverflows(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Search(ctx, SearchRequest{Page: math.MaxInt/10 + 1, Size: 10})
	var perr *ParamError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "page", perr.Param)
	require.False(t, perr.Malformed)

	// checked against the capped size
	resp, err := svc.Search(ctx, SearchRequest{Page: math.MaxInt/500 + 1, Size: 500})
	require.NoError(t, err)
	require.Empty(t, resp.Items)
}

func TestParseSort(t *testing.T) {
	orders, err := ParseSort([]string{"name,asc", " ", "acquisitionDate,DESC", "status"})
	require.NoError(t, err)
	require.Equal(t, []repositories.SortOrder{
		{Field: repositories.SortName},
		{Field: repositories.SortAcquisitionDate, Desc: true},
		{Field: repositories.SortStatus},
	}, orders)

	orders, err = ParseSort(nil)
	require.NoError(t, err)
	require.Equal(t, repositories.DefaultSort, orders)

	_, err = ParseSort([]string{"name,wrong"})
	require.ErrorContains(t, err, "sort")

	_, err = ParseSort([]string{"password"})
	var perr *ParamError
	require.True(t, errors.As(err, &perr))
}

func TestSeed(t *testing.T) {
	repo := memory.NewAssetRepository()
	ctx := context.Background()

	n, err := Seed(ctx, repo, 25, fixedNow)
	require.NoError(t, err)
	require.Equal(t, 25, n)

	n, err = Seed(ctx, repo, 25, fixedNow)
	require.NoError(t, err)
	require.Zero(t, n, "second run must not insert")
}

func TestGenerateSeedDeterministic(t *testing.T) {
	a := GenerateSeed(40, fixedNow)
	b := GenerateSeed(40, fixedNow)
	require.Len(t, a, 40)

	require.Equal(t, "Computador 001", a[0].Name)
	require.Equal(t, "GS-COM-USE-0001", a[0].SerialNumber)
	require.Equal(t, "GS-PER-USE-0002", a[1].SerialNumber)
	require.Equal(t, "GS-COM-STK-0006", a[5].SerialNumber)
	require.Equal(t, "GS-COM-USE-0021", a[20].SerialNumber)

	cutoff := fixedNow.AddDate(-seedYearsBack, 0, -1)
	for i := range a {
		require.Equal(t, a[i].AcquisitionDate, b[i].AcquisitionDate)
		require.False(t, a[i].AcquisitionDate.After(fixedNow))
		require.True(t, a[i].AcquisitionDate.Time.After(cutoff))
	}
}
