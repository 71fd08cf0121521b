package progress

import (
	"context"

	"github.com/xraph/chainage/id"
)

// Store is the ordered, append-only collection of entries per package.
// ReplaceEntry keeps the entry's original position.
type Store interface {
	AppendEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, packageID string) ([]*Entry, error)
	GetEntry(ctx context.Context, entryID id.EntryID) (*Entry, error)
	ReplaceEntry(ctx context.Context, e *Entry) error
}
