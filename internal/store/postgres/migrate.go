package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS assets (
	id               BIGSERIAL PRIMARY KEY,
	name             VARCHAR(255) NOT NULL,
	serial_number    VARCHAR(128) NOT NULL,
	category         VARCHAR(32)  NOT NULL,
	status           VARCHAR(32)  NOT NULL,
	acquisition_date DATE         NOT NULL,
	created_at       TIMESTAMPTZ  NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ  NOT NULL DEFAULT now(),
	CONSTRAINT assets_serial_number_uk UNIQUE (serial_number)
);
CREATE INDEX IF NOT EXISTS assets_category_idx ON assets (category);
CREATE INDEX IF NOT EXISTS assets_status_idx ON assets (status);
`

// Migrate creates the assets table and its indexes when missing.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}
