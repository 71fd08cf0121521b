package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unique index", errors.New("constraint failed: UNIQUE constraint failed: chainage_targets.package_id (2067)"), true},
		{"wrapped", fmt.Errorf("grove: insert: %w", errors.New("UNIQUE constraint failed: chainage_progress_entries.id")), true},
		{"check constraint", errors.New("constraint failed: CHECK constraint failed: length_m > 0 (275)"), false},
		{"no rows", sql.ErrNoRows, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
