package store

import (
	"context"

	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/target"
)

// Store is the unified storage interface for all chainage entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to keep the contract readable in one place.
type Store interface {
	// Target methods
	CreateTarget(ctx context.Context, t *target.Target) error
	GetTarget(ctx context.Context, packageID string) (*target.Target, error)
	ListTargets(ctx context.Context, opts target.ListOpts) ([]*target.Target, error)

	// Progress entry methods
	AppendEntry(ctx context.Context, e *progress.Entry) error
	ListEntries(ctx context.Context, packageID string) ([]*progress.Entry, error)
	GetEntry(ctx context.Context, entryID id.EntryID) (*progress.Entry, error)
	ReplaceEntry(ctx context.Context, e *progress.Entry) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// compile-time checks that the unified interface covers the domain ones
var (
	_ target.Store   = (Store)(nil)
	_ progress.Store = (Store)(nil)
)
