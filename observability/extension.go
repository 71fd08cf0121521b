// Package observability provides a metrics plugin for chainage that records
// progress decisions through a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/chainage/plugin"
	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/target"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin             = (*MetricsExtension)(nil)
	_ plugin.OnInit             = (*MetricsExtension)(nil)
	_ plugin.OnTargetCreated    = (*MetricsExtension)(nil)
	_ plugin.OnProgressRecorded = (*MetricsExtension)(nil)
	_ plugin.OnProgressReplaced = (*MetricsExtension)(nil)
	_ plugin.OnProgressRejected = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records ledger-wide progress metrics.
// Register it with chainage.WithPlugin.
type MetricsExtension struct {
	factory MetricFactory

	// Target metrics
	TargetCreated Counter
	TargetLength  Histogram

	// Progress metrics
	ProgressAccepted  Counter
	ProgressReplaced  Counter
	ProgressRejected  Counter
	AdditionalLining  Counter
	EarthworkRecorded Histogram
	LiningRecorded    Histogram

	// Violations per rejected report, and per class
	ViolationsPerReject Histogram
	violationCounters   map[progress.Code]Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	m := &MetricsExtension{
		factory: factory,

		TargetCreated: factory.Counter("chainage.target.created"),
		TargetLength:  factory.Histogram("chainage.target.length_km"),

		ProgressAccepted:  factory.Counter("chainage.progress.accepted"),
		ProgressReplaced:  factory.Counter("chainage.progress.replaced"),
		ProgressRejected:  factory.Counter("chainage.progress.rejected"),
		AdditionalLining:  factory.Counter("chainage.progress.additional_lining"),
		EarthworkRecorded: factory.Histogram("chainage.progress.earthwork_km"),
		LiningRecorded:    factory.Histogram("chainage.progress.lining_km"),

		ViolationsPerReject: factory.Histogram("chainage.progress.violations"),
		violationCounters:   make(map[progress.Code]Counter),
	}
	for _, code := range []progress.Code{
		progress.CodeRangeBounds,
		progress.CodeExceedsSegmentLength,
		progress.CodeNegativeWork,
		progress.CodeExistingEarthworkConflict,
		progress.CodeLiningCapacityExceeded,
		progress.CodeOverlapConflict,
		progress.CodeTargetExceeded,
	} {
		m.violationCounters[code] = factory.Counter("chainage.violation." + string(code))
	}
	return m
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// OnTargetCreated implements plugin.OnTargetCreated.
func (m *MetricsExtension) OnTargetCreated(_ context.Context, t *target.Target) error {
	m.TargetCreated.Inc()
	m.TargetLength.Observe(t.Length.Km())
	return nil
}

// OnProgressRecorded implements plugin.OnProgressRecorded.
func (m *MetricsExtension) OnProgressRecorded(_ context.Context, e *progress.Entry) error {
	m.ProgressAccepted.Inc()
	if e.Kind == progress.KindAdditionalLining {
		m.AdditionalLining.Inc()
	}
	m.EarthworkRecorded.Observe(e.Earthwork.Km())
	m.LiningRecorded.Observe(e.Lining.Km())
	return nil
}

// OnProgressReplaced implements plugin.OnProgressReplaced.
func (m *MetricsExtension) OnProgressReplaced(_ context.Context, _, _ *progress.Entry) error {
	m.ProgressReplaced.Inc()
	return nil
}

// OnProgressRejected implements plugin.OnProgressRejected.
func (m *MetricsExtension) OnProgressRejected(_ context.Context, _ string, _ progress.Candidate, violations progress.Violations) error {
	m.ProgressRejected.Inc()
	m.ViolationsPerReject.Observe(float64(len(violations)))
	for _, v := range violations {
		if c, ok := m.violationCounters[v.Code]; ok {
			c.Inc()
		}
	}
	return nil
}
