package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assetdesk/internal/domain/asset"
	"assetdesk/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation  = "23505"
	serialConstraint = "assets_serial_number_uk"
	assetColumns     = `id, name, serial_number, category, status, acquisition_date, created_at, updated_at`
)

var sortColumns = map[repositories.SortField]string{
	repositories.SortID:              "id",
	repositories.SortName:            "name",
	repositories.SortSerialNumber:    "serial_number",
	repositories.SortCategory:        "category",
	repositories.SortStatus:          "status",
	repositories.SortAcquisitionDate: "acquisition_date",
	repositories.SortCreatedAt:       "created_at",
	repositories.SortUpdatedAt:       "updated_at",
}

// assetRepository implements AssetRepository on a pgx pool
type assetRepository struct {
	db *pgxpool.Pool
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *pgxpool.Pool) repositories.AssetRepository {
	return &assetRepository{db: db}
}

// Save inserts a new asset or updates an existing one
func (r *assetRepository) Save(ctx context.Context, a *asset.Asset) error {
	if a.ID == 0 {
		return r.insert(ctx, a)
	}
	return r.update(ctx, a)
}

// FindByID finds an asset by ID
func (r *assetRepository) FindByID(ctx context.Context, id int64) (*asset.Asset, error) {
	row := r.db.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	a, err := scanAsset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return a, err
}

// Search returns one page of assets matching f, plus the total match count
func (r *assetRepository) Search(ctx context.Context, f repositories.Filter, p repositories.PageRequest) (*repositories.Page, error) {
	where, args := buildWhere(f)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM assets`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count assets: %w", err)
	}

	query := `SELECT ` + assetColumns + ` FROM assets` + where + orderBy(p.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, p.Size, p.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}
	defer rows.Close()

	items := make([]*asset.Asset, 0, p.Size)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repositories.Page{Items: items, Page: p.Page, Size: p.Size, TotalElements: total}, nil
}

// ExistsBySerial reports whether another asset already uses serial
func (r *assetRepository) ExistsBySerial(ctx context.Context, serial string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM assets WHERE serial_number = $1 AND id <> $2)`,
		serial, excludeID).Scan(&exists)
	return exists, err
}

// Delete removes an asset by ID
func (r *assetRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Count returns the number of stored assets
func (r *assetRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM assets`).Scan(&n)
	return n, err
}

// SaveAll inserts assets in one transaction
func (r *assetRepository) SaveAll(ctx context.Context, assets []*asset.Asset) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, a := range assets {
		batch.Queue(`
			INSERT INTO assets (name, serial_number, category, status, acquisition_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			a.Name, a.SerialNumber, string(a.Category), string(a.Status),
			a.AcquisitionDate.Time, a.CreatedAt, a.UpdatedAt)
	}
	results := tx.SendBatch(ctx, batch)
	for _, a := range assets {
		if err := results.QueryRow().Scan(&a.ID); err != nil {
			results.Close()
			return translate(err)
		}
	}
	if err := results.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// insert creates a new asset record
func (r *assetRepository) insert(ctx context.Context, a *asset.Asset) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO assets (name, serial_number, category, status, acquisition_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		a.Name, a.SerialNumber, string(a.Category), string(a.Status),
		a.AcquisitionDate.Time, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	return translate(err)
}

// update modifies an existing asset record
func (r *assetRepository) update(ctx context.Context, a *asset.Asset) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE assets
		SET name = $1, serial_number = $2, category = $3, status = $4,
		    acquisition_date = $5, updated_at = $6
		WHERE id = $7`,
		a.Name, a.SerialNumber, string(a.Category), string(a.Status),
		a.AcquisitionDate.Time, a.UpdatedAt, a.ID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func buildWhere(f repositories.Filter) (string, []any) {
	var conds []string
	var args []any
	if f.Category != "" {
		args = append(args, string(f.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if strings.TrimSpace(f.Query) != "" {
		args = append(args, repositories.EscapeLike(f.Query))
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(lower(name) LIKE $%d ESCAPE '\' OR lower(serial_number) LIKE $%d ESCAPE '\')`, n, n))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(sort []repositories.SortOrder) string {
	if len(sort) == 0 {
		sort = repositories.DefaultSort
	}
	terms := make([]string, 0, len(sort))
	for _, o := range sort {
		col, ok := sortColumns[o.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		terms = append(terms, col+" "+dir)
	}
	if len(terms) == 0 {
		terms = append(terms, "id DESC")
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

// scanAsset scans a single row into an asset domain object
func scanAsset(row pgx.Row) (*asset.Asset, error) {
	var a asset.Asset
	var category, status string
	var acquired time.Time

	err := row.Scan(&a.ID, &a.Name, &a.SerialNumber, &category, &status, &acquired, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Category = asset.Category(category)
	a.Status = asset.Status(status)
	a.AcquisitionDate = asset.NewDate(acquired)
	return &a, nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation &&
		(pgErr.ConstraintName == "" || strings.EqualFold(pgErr.ConstraintName, serialConstraint)) {
		return fmt.Errorf("%w: %s", repositories.ErrSerialTaken, pgErr.Detail)
	}
	return err
}
