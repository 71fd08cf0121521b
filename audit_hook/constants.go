package audithook

// Action constants for audit events.
const (
	// Target actions
	ActionTargetCreated = "target.created"

	// Progress actions
	ActionProgressRecorded = "progress.recorded"
	ActionProgressReplaced = "progress.replaced"
	ActionProgressRejected = "progress.rejected"
)

// Resource constants for audit events.
const (
	ResourceTarget = "target"
	ResourceEntry  = "progress_entry"
)

// Category constants for audit events.
const (
	CategoryPlanning = "planning"
	CategoryProgress = "progress"
)

// Severity levels for audit events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
