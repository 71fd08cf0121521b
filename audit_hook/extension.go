// Package audithook bridges chainage lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on
// any particular audit system. Callers inject a RecorderFunc adapter at
// wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/chainage/plugin"
	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/target"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin             = (*Extension)(nil)
	_ plugin.OnTargetCreated    = (*Extension)(nil)
	_ plugin.OnProgressRecorded = (*Extension)(nil)
	_ plugin.OnProgressReplaced = (*Extension)(nil)
	_ plugin.OnProgressRejected = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges chainage lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// OnTargetCreated implements plugin.OnTargetCreated.
func (e *Extension) OnTargetCreated(ctx context.Context, t *target.Target) error {
	return e.record(ctx, ActionTargetCreated, SeverityInfo, OutcomeSuccess,
		ResourceTarget, t.ID.String(), CategoryPlanning, nil,
		"package_id", t.PackageID,
		"length_km", t.Length.Km(),
	)
}

// OnProgressRecorded implements plugin.OnProgressRecorded.
func (e *Extension) OnProgressRecorded(ctx context.Context, entry *progress.Entry) error {
	return e.record(ctx, ActionProgressRecorded, SeverityInfo, OutcomeSuccess,
		ResourceEntry, entry.ID.String(), CategoryProgress, nil,
		entryFields(entry)...,
	)
}

// OnProgressReplaced implements plugin.OnProgressReplaced.
func (e *Extension) OnProgressReplaced(ctx context.Context, previous, current *progress.Entry) error {
	kv := entryFields(current)
	kv = append(kv,
		"previous_span", previous.Span().String(),
		"previous_earthwork_km", previous.Earthwork.Km(),
		"previous_lining_km", previous.Lining.Km(),
	)
	return e.record(ctx, ActionProgressReplaced, SeverityInfo, OutcomeSuccess,
		ResourceEntry, current.ID.String(), CategoryProgress, nil,
		kv...,
	)
}

// OnProgressRejected implements plugin.OnProgressRejected.
func (e *Extension) OnProgressRejected(ctx context.Context, packageID string, c progress.Candidate, violations progress.Violations) error {
	var resourceID string
	if !c.ID.IsNil() {
		resourceID = c.ID.String()
	}
	var reason error
	if len(violations) > 0 {
		reason = violations
	}
	codes := make([]string, 0, len(violations))
	for _, code := range violations.Codes() {
		codes = append(codes, string(code))
	}
	return e.record(ctx, ActionProgressRejected, SeverityWarning, OutcomeFailure,
		ResourceEntry, resourceID, CategoryProgress, reason,
		"package_id", packageID,
		"span", c.Span.String(),
		"earthwork_km", c.Earthwork.Km(),
		"lining_km", c.Lining.Km(),
		"codes", codes,
	)
}

func entryFields(entry *progress.Entry) []any {
	return []any{
		"package_id", entry.PackageID,
		"span", entry.Span().String(),
		"kind", string(entry.Kind),
		"earthwork_km", entry.Earthwork.Km(),
		"lining_km", entry.Lining.Km(),
	}
}

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
