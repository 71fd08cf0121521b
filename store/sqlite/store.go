package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/chainage"
	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/progress"
	chainagestore "github.com/xraph/chainage/store"
	"github.com/xraph/chainage/target"
)

// compile-time interface check
var _ chainagestore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("chainage/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("chainage/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Target Store ====================

// CreateTarget inserts t. A concurrent create that wins the race is caught by
// the unique index on package_id.
func (s *Store) CreateTarget(ctx context.Context, t *target.Target) error {
	if _, err := s.GetTarget(ctx, t.PackageID); err == nil {
		return chainage.ErrTargetExists
	} else if !errors.Is(err, chainage.ErrTargetNotFound) {
		return err
	}

	m := toTargetModel(t)
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return chainage.ErrTargetExists
		}
		return fmt.Errorf("chainage/sqlite: create target: %w", err)
	}
	return nil
}

func (s *Store) GetTarget(ctx context.Context, packageID string) (*target.Target, error) {
	m := new(targetModel)
	err := s.sdb.NewSelect(m).
		Where("package_id = ?", packageID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, chainage.ErrTargetNotFound
		}
		return nil, fmt.Errorf("chainage/sqlite: get target: %w", err)
	}
	return fromTargetModel(m)
}

func (s *Store) ListTargets(ctx context.Context, opts target.ListOpts) ([]*target.Target, error) {
	var models []targetModel
	q := s.sdb.NewSelect(&models)

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("chainage/sqlite: list targets: %w", err)
	}

	result := make([]*target.Target, len(models))
	for i := range models {
		t, err := fromTargetModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = t
	}
	return result, nil
}

// ==================== Progress Store ====================

func (s *Store) AppendEntry(ctx context.Context, e *progress.Entry) error {
	m := toEntryModel(e)
	if _, err := s.sdb.NewInsert(m).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return chainage.ErrEntryExists
		}
		return fmt.Errorf("chainage/sqlite: append entry: %w", err)
	}
	return nil
}

func (s *Store) ListEntries(ctx context.Context, packageID string) ([]*progress.Entry, error) {
	var models []entryModel
	err := s.sdb.NewSelect(&models).
		Where("package_id = ?", packageID).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("chainage/sqlite: list entries: %w", err)
	}

	result := make([]*progress.Entry, len(models))
	for i := range models {
		e, err := fromEntryModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

func (s *Store) GetEntry(ctx context.Context, entryID id.EntryID) (*progress.Entry, error) {
	m := new(entryModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", entryID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, chainage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("chainage/sqlite: get entry: %w", err)
	}
	return fromEntryModel(m)
}

// ReplaceEntry overwrites the row in place. created_at is part of the
// update so the caller controls the entry's position; the ledger keeps the
// original value.
func (s *Store) ReplaceEntry(ctx context.Context, e *progress.Entry) error {
	m := toEntryModel(e)
	res, err := s.sdb.NewUpdate(m).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("chainage/sqlite: replace entry: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return chainage.ErrEntryNotFound
	}
	return nil
}

