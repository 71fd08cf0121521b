package chainage

import (
	"errors"
	"fmt"

	"github.com/xraph/chainage/progress"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound     = errors.New("chainage: not found")
	ErrInvalidInput = errors.New("chainage: invalid input")

	// Target errors
	ErrTargetNotFound = errors.New("chainage: target not found")
	ErrTargetExists   = errors.New("chainage: target already exists for package")
	ErrInvalidTarget  = errors.New("chainage: invalid target")

	// Progress errors
	ErrEntryNotFound = errors.New("chainage: progress entry not found")
	ErrEntryExists   = errors.New("chainage: progress entry already exists")
	ErrRejected      = errors.New("chainage: progress rejected")

	// Store errors
	ErrStoreClosed     = errors.New("chainage: store is closed")
	ErrMigrationFailed = errors.New("chainage: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("chainage: validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e ValidationError) Unwrap() error { return ErrInvalidInput }

// RejectedError is returned by AddProgress and EditProgress when a report
// fails validation. It carries every violation that was found.
type RejectedError struct {
	PackageID  string
	Kind       progress.Kind
	Violations progress.Violations
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("chainage: progress rejected for package %q: %s", e.PackageID, e.Violations.Error())
}

// Unwrap exposes ErrRejected and every violation sentinel, so both
// errors.Is(err, ErrRejected) and errors.Is(err, progress.ErrOverlapConflict)
// hold for the same error.
func (e *RejectedError) Unwrap() []error {
	return []error{ErrRejected, e.Violations}
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTargetNotFound) ||
		errors.Is(err, ErrEntryNotFound)
}

// IsRejected returns true if a progress report failed validation.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}

// AsViolations extracts the validation violations from err, if any.
func AsViolations(err error) (progress.Violations, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Violations, true
	}
	var vs progress.Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}
