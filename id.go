package chainage

import "github.com/xraph/chainage/id"

// ID is the primary identifier type for all chainage entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
