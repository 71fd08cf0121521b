package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the chainage store.
var Migrations = migrate.NewGroup("chainage")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_chainage_targets",
			Version: "20260901000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS chainage_targets (
    id          TEXT PRIMARY KEY,
    package_id  TEXT NOT NULL,
    name        TEXT NOT NULL DEFAULT '',
    length_m    BIGINT NOT NULL CHECK (length_m > 0),
    metadata    JSONB NOT NULL DEFAULT '{}',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_chainage_targets_package ON chainage_targets (package_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS chainage_targets`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_chainage_progress_entries",
			Version: "20260901000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS chainage_progress_entries (
    id            TEXT PRIMARY KEY,
    package_id    TEXT NOT NULL,
    start_m       BIGINT NOT NULL,
    end_m         BIGINT NOT NULL,
    earthwork_m   BIGINT NOT NULL DEFAULT 0,
    lining_m      BIGINT NOT NULL DEFAULT 0,
    reported_date TIMESTAMPTZ NOT NULL,
    kind          TEXT NOT NULL,
    remarks       TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (end_m > start_m)
);

CREATE INDEX IF NOT EXISTS idx_chainage_entries_package ON chainage_progress_entries (package_id, created_at, id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS chainage_progress_entries`)
				return err
			},
		},
	)
}
