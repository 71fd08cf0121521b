package progress

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xraph/chainage/interval"
)

// Violation sentinels. Every Violation unwraps to exactly one of these.
var (
	ErrInvalidNumber             = errors.New("progress: value is not a representable distance")
	ErrRangeBounds               = errors.New("progress: range out of bounds")
	ErrExceedsSegmentLength      = errors.New("progress: work exceeds segment length")
	ErrNegativeWork              = errors.New("progress: negative work")
	ErrExistingEarthworkConflict = errors.New("progress: earthwork already exists in range")
	ErrLiningCapacityExceeded    = errors.New("progress: lining capacity exceeded")
	ErrOverlapConflict           = errors.New("progress: range overlaps existing work")
	ErrTargetExceeded            = errors.New("progress: target length exceeded")

	ErrInvalidBinWidth = errors.New("progress: invalid bin width")
)

// Code names a violation class.
type Code string

const (
	CodeInvalidNumber             Code = "invalid_number"
	CodeRangeBounds               Code = "range_bounds"
	CodeExceedsSegmentLength      Code = "exceeds_segment_length"
	CodeNegativeWork              Code = "negative_work"
	CodeExistingEarthworkConflict Code = "existing_earthwork_conflict"
	CodeLiningCapacityExceeded    Code = "lining_capacity_exceeded"
	CodeOverlapConflict           Code = "overlap_conflict"
	CodeTargetExceeded            Code = "target_exceeded"
)

var codeSentinels = map[Code]error{
	CodeInvalidNumber:             ErrInvalidNumber,
	CodeRangeBounds:               ErrRangeBounds,
	CodeExceedsSegmentLength:      ErrExceedsSegmentLength,
	CodeNegativeWork:              ErrNegativeWork,
	CodeExistingEarthworkConflict: ErrExistingEarthworkConflict,
	CodeLiningCapacityExceeded:    ErrLiningCapacityExceeded,
	CodeOverlapConflict:           ErrOverlapConflict,
	CodeTargetExceeded:            ErrTargetExceeded,
}

// Violation is one broken rule found while validating a report.
type Violation struct {
	Code    Code   `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
	// Suggested is the next contiguous range free of recorded work.
	// Only overlap conflicts carry it, and only when such a range exists.
	Suggested *interval.Span `json:"suggested,omitempty"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("progress: %s: %s", v.Field, v.Message)
}

// Unwrap returns the sentinel for the violation's code.
func (v Violation) Unwrap() error {
	return codeSentinels[v.Code]
}

// Violations is the complete list of problems with one report.
// An empty list means the report is acceptable.
type Violations []Violation

func (vs Violations) Error() string {
	switch len(vs) {
	case 0:
		return "progress: no violations"
	case 1:
		return vs[0].Error()
	}
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.Field + ": " + v.Message
	}
	return fmt.Sprintf("progress: %d violations: %s", len(vs), strings.Join(msgs, "; "))
}

// Unwrap exposes each violation to errors.Is and errors.As.
func (vs Violations) Unwrap() []error {
	errs := make([]error, len(vs))
	for i, v := range vs {
		errs[i] = v
	}
	return errs
}

// Has reports whether any violation carries the code.
func (vs Violations) Has(code Code) bool {
	for _, v := range vs {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Codes lists the codes in order.
func (vs Violations) Codes() []Code {
	codes := make([]Code, len(vs))
	for i, v := range vs {
		codes[i] = v.Code
	}
	return codes
}

func (vs *Violations) add(code Code, field, format string, args ...any) {
	*vs = append(*vs, Violation{Code: code, Field: field, Message: fmt.Sprintf(format, args...)})
}
