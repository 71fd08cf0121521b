package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/chainage"
	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/progress"
	chainagestore "github.com/xraph/chainage/store"
	"github.com/xraph/chainage/target"
)

// Collection name constants.
const (
	colTargets = "chainage_targets"
	colEntries = "chainage_progress_entries"
)

// compile-time interface check
var _ chainagestore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all chainage collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("chainage/mongo: migrate %s indexes: %w", col, err)
		}
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

func (s *Store) CreateTarget(ctx context.Context, t *target.Target) error {
	m := toTargetModel(t)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return chainage.ErrTargetExists
		}
		return fmt.Errorf("chainage/mongo: create target: %w", err)
	}
	return nil
}

func (s *Store) GetTarget(ctx context.Context, packageID string) (*target.Target, error) {
	var m targetModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"package_id": packageID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, chainage.ErrTargetNotFound
		}
		return nil, fmt.Errorf("chainage/mongo: get target: %w", err)
	}
	return fromTargetModel(&m)
}

func (s *Store) ListTargets(ctx context.Context, opts target.ListOpts) ([]*target.Target, error) {
	var models []targetModel

	q := s.mdb.NewFind(&models).
		Filter(bson.M{}).
		Sort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("chainage/mongo: list targets: %w", err)
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
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return chainage.ErrEntryExists
		}
		return fmt.Errorf("chainage/mongo: append entry: %w", err)
	}
	return nil
}

func (s *Store) ListEntries(ctx context.Context, packageID string) ([]*progress.Entry, error) {
	var models []entryModel

	err := s.mdb.NewFind(&models).
		Filter(bson.M{"package_id": packageID}).
		Sort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("chainage/mongo: list entries: %w", err)
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
	var m entryModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": entryID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, chainage.ErrEntryNotFound
		}
		return nil, fmt.Errorf("chainage/mongo: get entry: %w", err)
	}
	return fromEntryModel(&m)
}

func (s *Store) ReplaceEntry(ctx context.Context, e *progress.Entry) error {
	m := toEntryModel(e)

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID, "package_id": m.PackageID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("chainage/mongo: replace entry: %w", err)
	}
	if res.MatchedCount() == 0 {
		return chainage.ErrEntryNotFound
	}
	return nil
}

// ==================== Indexes ====================

func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colTargets: {
			{
				Keys:    bson.D{{Key: "package_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		colEntries: {
			{Keys: bson.D{{Key: "package_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		},
	}
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
