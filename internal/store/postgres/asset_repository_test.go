package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"assetdesk/internal/domain/asset"
	"assetdesk/internal/store/repositories"
)

func TestBuildWhere(t *testing.T) {
	where, args := buildWhere(repositories.Filter{
		Category: asset.CategoryComputer,
		Status:   asset.StatusInUse,
		Query:    " Dell_5 ",
	})

	wantWhere := ` WHERE category = $1 AND status = $2 AND (lower(name) LIKE $3 ESCAPE '\' OR lower(serial_number) LIKE $3 ESCAPE '\')`
	if where != wantWhere {
		t.Fatalf("where = %q", where)
	}
	if diff := cmp.Diff([]any{"COMPUTER", "IN_USE", `%dell\_5%`}, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWhereEmpty(t *testing.T) {
	where, args := buildWhere(repositories.Filter{Query: "   "})
	if where != "" || args != nil {
		t.Fatalf("expected no clause, got %q %v", where, args)
	}
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		sort []repositories.SortOrder
		want string
	}{
		{nil, " ORDER BY id DESC"},
		{[]repositories.SortOrder{{Field: repositories.SortAcquisitionDate, Desc: true}, {Field: repositories.SortName}},
			" ORDER BY acquisition_date DESC, name ASC"},
		{[]repositories.SortOrder{{Field: "bogus"}}, " ORDER BY id DESC"},
	}
	for _, tt := range tests {
		if got := orderBy(tt.sort); got != tt.want {
			t.Fatalf("orderBy(%v) = %q, want %q", tt.sort, got, tt.want)
		}
	}
}

func TestTranslateUniqueViolation(t *testing.T) {
	err := translate(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "assets_serial_number_uk"}))
	if !errors.Is(err, repositories.ErrSerialTaken) {
		t.Fatalf("expected ErrSerialTaken, got %v", err)
	}

	other := &pgconn.PgError{Code: "23502"}
	if got := translate(other); got != error(other) {
		t.Fatalf("unrelated errors must pass through, got %v", got)
	}
	if translate(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}
