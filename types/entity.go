package types

import "time"

// Entity carries the record timestamps shared by targets and entries.
type Entity struct {
	CreatedAt time.Time `json:"created_at" grove:"created_at"`
	UpdatedAt time.Time `json:"updated_at" grove:"updated_at"`
}

// NewEntity creates a new Entity with current timestamps.
func NewEntity() Entity {
	now := time.Now().UTC()
	return Entity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp to now.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}
