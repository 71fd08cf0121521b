package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the chainage store (SQLite).
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
    length_m    INTEGER NOT NULL CHECK (length_m > 0),
    metadata    TEXT NOT NULL DEFAULT '{}',
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
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
    start_m       INTEGER NOT NULL,
    end_m         INTEGER NOT NULL,
    earthwork_m   INTEGER NOT NULL DEFAULT 0,
    lining_m      INTEGER NOT NULL DEFAULT 0,
    reported_date TEXT NOT NULL,
    kind          TEXT NOT NULL,
    remarks       TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at    TEXT NOT NULL DEFAULT (datetime('now')),
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
