package chainage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/interval"
	"github.com/xraph/chainage/plugin"
	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/store"
	"github.com/xraph/chainage/target"
	"github.com/xraph/chainage/types"
)

// DefaultBinWidth is the bucket width used by BinnedSeries when the caller
// passes zero and no WithDefaultBinWidth option was given.
const DefaultBinWidth = 1 * types.Kilometer

// Ledger records range-based progress against a per-package target length.
type Ledger struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger
	locks   *lockset

	// Configuration
	skipMigrate     bool
	defaultBinWidth types.Distance
	now             func() time.Time
}

// New creates a new Ledger instance.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:           s,
		plugins:         plugin.NewRegistry(),
		logger:          slog.Default(),
		locks:           newLockset(),
		defaultBinWidth: DefaultBinWidth,
		now:             func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithDefaultBinWidth sets the bucket width BinnedSeries uses when called
// with a zero width. Non-positive values are ignored.
func WithDefaultBinWidth(width types.Distance) Option {
	return func(l *Ledger) {
		if width > 0 {
			l.defaultBinWidth = width
		}
	}
}

// WithSkipMigrate makes Start leave the store schema alone.
func WithSkipMigrate() Option {
	return func(l *Ledger) {
		l.skipMigrate = true
	}
}

// WithHookTimeout bounds how long a single plugin hook may run.
func WithHookTimeout(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.plugins.WithTimeout(d)
		}
	}
}

// WithClock overrides the source of timestamps. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Start migrates the store and initializes plugins.
func (l *Ledger) Start(ctx context.Context) error {
	if !l.skipMigrate {
		if err := l.store.Migrate(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrMigrationFailed, err)
		}
	}

	l.plugins.EmitInit(ctx, l)

	l.logger.Info("chainage started",
		"default_bin_width", l.defaultBinWidth.String(),
		"plugins", len(l.plugins.Plugins()),
	)

	return nil
}

// Stop shuts down plugins and closes the store.
func (l *Ledger) Stop() error {
	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	return l.store.Close()
}

// Store returns the underlying store.
func (l *Ledger) Store() store.Store { return l.store }

// ──────────────────────────────────────────────────
// Targets
// ──────────────────────────────────────────────────

// CreateTarget registers the target length of a package. Each package has
// exactly one target.
func (l *Ledger) CreateTarget(ctx context.Context, t *target.Target) error {
	t.PackageID = strings.TrimSpace(t.PackageID)
	if t.PackageID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTarget, ValidationError{Field: "package_id", Message: "is required"})
	}
	if t.Length <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTarget, ValidationError{Field: "length_km", Message: "must be positive"})
	}

	if t.ID.IsNil() {
		t.ID = id.NewTargetID()
	}
	t.Entity = l.entity()

	if err := l.store.CreateTarget(ctx, t); err != nil {
		return err
	}

	l.logger.Debug("target created", "package_id", t.PackageID, "length", t.Length.String())
	l.plugins.EmitTargetCreated(ctx, t)
	return nil
}

// GetTarget retrieves the target of a package.
func (l *Ledger) GetTarget(ctx context.Context, packageID string) (*target.Target, error) {
	return l.store.GetTarget(ctx, packageID)
}

// ListTargets returns every target in creation order.
func (l *Ledger) ListTargets(ctx context.Context) ([]*target.Target, error) {
	return l.store.ListTargets(ctx, target.ListOpts{})
}

// ──────────────────────────────────────────────────
// Progress
// ──────────────────────────────────────────────────

// AddProgress validates a report against the package's target and existing
// entries and appends it when valid. A rejected report returns a
// *RejectedError and leaves the store unchanged.
//
// Plugins are notified after the package is unlocked.
func (l *Ledger) AddProgress(ctx context.Context, packageID string, in progress.Input) (*progress.Entry, error) {
	unlock := l.locks.lock(packageID)
	e, rej, err := l.add(ctx, packageID, in)
	unlock()

	switch {
	case err != nil:
		return nil, err
	case rej != nil:
		return nil, l.reject(ctx, rej)
	}
	l.plugins.EmitProgressRecorded(ctx, e)
	return e, nil
}

// add runs with the package locked.
func (l *Ledger) add(ctx context.Context, packageID string, in progress.Input) (*progress.Entry, *rejection, error) {
	t, entries, err := l.snapshot(ctx, packageID)
	if err != nil {
		return nil, nil, err
	}

	c := in.Candidate(id.Nil)
	kind, violations := progress.Validate(c, entries, t.Length)
	if len(violations) > 0 {
		return nil, &rejection{packageID: packageID, kind: kind, c: c, violations: violations}, nil
	}

	e := &progress.Entry{
		Entity:       l.entity(),
		ID:           id.NewEntryID(),
		PackageID:    packageID,
		Start:        c.Span.Start,
		End:          c.Span.End,
		Earthwork:    c.Earthwork,
		Lining:       c.Lining,
		ReportedDate: l.reportedDate(in.ReportedDate),
		Kind:         kind,
		Remarks:      in.Remarks,
	}

	if err := l.store.AppendEntry(ctx, e); err != nil {
		l.logger.Error("append progress entry", "package_id", packageID, "error", err)
		return nil, nil, err
	}

	l.logger.Debug("progress recorded",
		"package_id", packageID,
		"entry_id", e.ID.String(),
		"span", e.Span().String(),
		"kind", string(kind),
	)
	return e, nil, nil
}

// EditProgress replaces an existing entry in place. The new values are
// validated as if the entry being replaced did not exist.
func (l *Ledger) EditProgress(ctx context.Context, entryID id.EntryID, in progress.Input) (*progress.Entry, error) {
	located, err := l.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	unlock := l.locks.lock(located.PackageID)
	previous, e, rej, err := l.edit(ctx, entryID, in)
	unlock()

	switch {
	case err != nil:
		return nil, err
	case rej != nil:
		return nil, l.reject(ctx, rej)
	}
	l.plugins.EmitProgressReplaced(ctx, previous, e)
	return e, nil
}

// edit runs with the entry's package locked.
func (l *Ledger) edit(ctx context.Context, entryID id.EntryID, in progress.Input) (previous, e *progress.Entry, rej *rejection, err error) {
	// Re-read under the lock; another edit may have landed in between.
	previous, err = l.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, nil, nil, err
	}

	t, entries, err := l.snapshot(ctx, previous.PackageID)
	if err != nil {
		return nil, nil, nil, err
	}

	c := in.Candidate(entryID)
	kind, violations := progress.Validate(c, entries, t.Length)
	if len(violations) > 0 {
		return nil, nil, &rejection{packageID: previous.PackageID, kind: kind, c: c, violations: violations}, nil
	}

	e = &progress.Entry{
		Entity:       previous.Entity,
		ID:           previous.ID,
		PackageID:    previous.PackageID,
		Start:        c.Span.Start,
		End:          c.Span.End,
		Earthwork:    c.Earthwork,
		Lining:       c.Lining,
		ReportedDate: l.reportedDate(in.ReportedDate),
		Kind:         kind,
		Remarks:      in.Remarks,
	}
	e.UpdatedAt = l.now()

	if err := l.store.ReplaceEntry(ctx, e); err != nil {
		l.logger.Error("replace progress entry", "entry_id", entryID.String(), "error", err)
		return nil, nil, nil, err
	}

	l.logger.Debug("progress replaced",
		"package_id", e.PackageID,
		"entry_id", e.ID.String(),
		"span", e.Span().String(),
		"kind", string(kind),
	)
	return previous, e, nil, nil
}

// ListProgress returns the package's entries in creation order.
func (l *Ledger) ListProgress(ctx context.Context, packageID string) ([]*progress.Entry, error) {
	return l.store.ListEntries(ctx, packageID)
}

// ──────────────────────────────────────────────────
// Aggregates
// ──────────────────────────────────────────────────

// Totals sums every entry of the package.
func (l *Ledger) Totals(ctx context.Context, packageID string) (*progress.Totals, error) {
	t, entries, err := l.snapshot(ctx, packageID)
	if err != nil {
		return nil, err
	}
	totals := progress.ComputeTotals(entries, t.Length)
	return &totals, nil
}

// RangeSummary reports the work already recorded inside [startKm, endKm),
// ignoring the entry exclude (pass id.Nil to include all).
func (l *Ledger) RangeSummary(ctx context.Context, packageID string, startKm, endKm float64, exclude id.EntryID) (*progress.RangeSummary, error) {
	start, err := types.ParseKm(startKm)
	if err != nil {
		return nil, ValidationError{Field: "start_km", Message: err.Error()}
	}
	end, err := types.ParseKm(endKm)
	if err != nil {
		return nil, ValidationError{Field: "end_km", Message: err.Error()}
	}
	query := interval.Of(start, end)
	if query.IsEmpty() {
		return nil, ValidationError{Field: "end_km", Message: "must be greater than start_km"}
	}

	entries, err := l.store.ListEntries(ctx, packageID)
	if err != nil {
		return nil, err
	}
	summary := progress.Summarize(query, entries, exclude)
	return &summary, nil
}

// BinnedSeries buckets the package's progress along its length. A zero
// widthKm uses the ledger's default bin width. Widths are whole meters, so
// a positive widthKm under half a meter is rejected.
func (l *Ledger) BinnedSeries(ctx context.Context, packageID string, widthKm float64) ([]progress.Bin, error) {
	width := l.defaultBinWidth
	if widthKm != 0 {
		w, err := types.ParseKm(widthKm)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", progress.ErrInvalidBinWidth, ValidationError{Field: "width_km", Message: err.Error()})
		}
		if w == 0 && widthKm > 0 {
			return nil, fmt.Errorf("%w: %w", progress.ErrInvalidBinWidth, ValidationError{
				Field:   "width_km",
				Message: fmt.Sprintf("%v km rounds to 0 m; the smallest width is 0.001 km", widthKm),
			})
		}
		width = w
	}

	t, entries, err := l.snapshot(ctx, packageID)
	if err != nil {
		return nil, err
	}
	return progress.BinnedSeries(t.Length, entries, width)
}

// ──────────────────────────────────────────────────
// helpers
// ──────────────────────────────────────────────────

func (l *Ledger) snapshot(ctx context.Context, packageID string) (*target.Target, []*progress.Entry, error) {
	t, err := l.store.GetTarget(ctx, packageID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := l.store.ListEntries(ctx, packageID)
	if err != nil {
		return nil, nil, err
	}
	return t, entries, nil
}

// rejection is a report that failed validation.
type rejection struct {
	packageID  string
	kind       progress.Kind
	c          progress.Candidate
	violations progress.Violations
}

func (l *Ledger) reject(ctx context.Context, r *rejection) error {
	l.logger.Info("progress rejected",
		"package_id", r.packageID,
		"span", r.c.Span.String(),
		"violations", len(r.violations),
		"codes", r.violations.Codes(),
	)
	l.plugins.EmitProgressRejected(ctx, r.packageID, r.c, r.violations)
	return &RejectedError{PackageID: r.packageID, Kind: r.kind, Violations: r.violations}
}

func (l *Ledger) entity() types.Entity {
	now := l.now()
	return types.Entity{CreatedAt: now, UpdatedAt: now}
}

func (l *Ledger) reportedDate(t time.Time) time.Time {
	if t.IsZero() {
		return l.now()
	}
	return t.UTC()
}
