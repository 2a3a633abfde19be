package app

import (
	"context"

	"github.com/leasingsys/leasing-service/internal/repositories"
)

// Migrate bootstraps the leasings table. Name uniqueness is enforced
// case-insensitively at the store level to back the validation layer.
func Migrate(ctx context.Context, db repositories.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS leasings (
			id             BIGSERIAL PRIMARY KEY,
			name           TEXT NOT NULL,
			details        TEXT NOT NULL DEFAULT '',
			image_url      TEXT NOT NULL DEFAULT '',
			amenity        TEXT NOT NULL DEFAULT '',
			occupancy      INT NOT NULL DEFAULT 0,
			square_footage INT NOT NULL DEFAULT 0,
			rate           DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS leasings_name_lower_idx
			ON leasings (LOWER(name))`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
