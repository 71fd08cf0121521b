// Package plugin provides an extensible plugin system for chainage.
// Plugins can hook into ledger lifecycle events to extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/target"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the ledger starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the ledger stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Target hooks
// ──────────────────────────────────────────────────

// OnTargetCreated is called after a package target is stored.
type OnTargetCreated interface {
	Plugin
	OnTargetCreated(ctx context.Context, t *target.Target) error
}

// ──────────────────────────────────────────────────
// Progress hooks
// ──────────────────────────────────────────────────

// OnProgressRecorded is called after a new entry is appended.
type OnProgressRecorded interface {
	Plugin
	OnProgressRecorded(ctx context.Context, e *progress.Entry) error
}

// OnProgressReplaced is called after an entry is replaced in place.
type OnProgressReplaced interface {
	Plugin
	OnProgressReplaced(ctx context.Context, previous, current *progress.Entry) error
}

// OnProgressRejected is called when a report fails validation.
// Nothing has been written when it fires.
type OnProgressRejected interface {
	Plugin
	OnProgressRejected(ctx context.Context, packageID string, c progress.Candidate, violations progress.Violations) error
}
