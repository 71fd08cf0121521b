package chainage

import (
	"github.com/xraph/chainage/interval"
	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/types"
)

// Re-export common types for convenience so users don't have to import the
// sub-packages for everyday calls.

// Distance is re-exported from types package.
type Distance = types.Distance

// Entity is re-exported from types package.
type Entity = types.Entity

// Span is re-exported from interval package.
type Span = interval.Span

// Input is re-exported from progress package.
type Input = progress.Input

// Re-export Distance constructors
var (
	Km     = types.Km
	Meters = types.Meters
	Sum    = types.Sum
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
