// Package memory is an in-process store.Store, for tests and single-node use.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/chainage"
	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/store"
	"github.com/xraph/chainage/target"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

type Store struct {
	mu     sync.RWMutex
	closed bool

	// Target storage, keyed by package id, plus creation order
	targets     map[string]*target.Target
	targetOrder []string

	// Entries per package in creation order, and entry id -> package id
	entries    map[string][]*progress.Entry
	entryOwner map[string]string
}

func New() *Store {
	return &Store{
		targets:    make(map[string]*target.Target),
		entries:    make(map[string][]*progress.Entry),
		entryOwner: make(map[string]string),
	}
}

// Target Store implementation
func (s *Store) CreateTarget(_ context.Context, t *target.Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return chainage.ErrStoreClosed
	}
	if _, exists := s.targets[t.PackageID]; exists {
		return chainage.ErrTargetExists
	}
	s.targets[t.PackageID] = t.Clone()
	s.targetOrder = append(s.targetOrder, t.PackageID)
	return nil
}

func (s *Store) GetTarget(_ context.Context, packageID string) (*target.Target, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.targets[packageID]; ok {
		return t.Clone(), nil
	}
	return nil, chainage.ErrTargetNotFound
}

func (s *Store) ListTargets(_ context.Context, opts target.ListOpts) ([]*target.Target, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*target.Target, 0, len(s.targetOrder))
	for _, pkg := range s.targetOrder {
		result = append(result, s.targets[pkg].Clone())
	}

	// Apply limit/offset
	start := min(opts.Offset, len(result))
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(result) {
		end = len(result)
	}

	return result[start:end], nil
}

// Progress Store implementation
func (s *Store) AppendEntry(_ context.Context, e *progress.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return chainage.ErrStoreClosed
	}
	key := e.ID.String()
	if _, exists := s.entryOwner[key]; exists {
		return chainage.ErrEntryExists
	}
	s.entries[e.PackageID] = append(s.entries[e.PackageID], e.Clone())
	s.entryOwner[key] = e.PackageID
	return nil
}

func (s *Store) ListEntries(_ context.Context, packageID string) ([]*progress.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.entries[packageID]
	result := make([]*progress.Entry, len(stored))
	for i, e := range stored {
		result[i] = e.Clone()
	}
	return result, nil
}

func (s *Store) GetEntry(_ context.Context, entryID id.EntryID) (*progress.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := entryID.String()
	pkg, ok := s.entryOwner[key]
	if !ok {
		return nil, chainage.ErrEntryNotFound
	}
	for _, e := range s.entries[pkg] {
		if e.ID.String() == key {
			return e.Clone(), nil
		}
	}
	return nil, chainage.ErrEntryNotFound
}

func (s *Store) ReplaceEntry(_ context.Context, e *progress.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return chainage.ErrStoreClosed
	}
	key := e.ID.String()
	pkg, ok := s.entryOwner[key]
	if !ok || pkg != e.PackageID {
		return chainage.ErrEntryNotFound
	}
	for i, existing := range s.entries[pkg] {
		if existing.ID.String() == key {
			s.entries[pkg][i] = e.Clone()
			return nil
		}
	}
	return chainage.ErrEntryNotFound
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return chainage.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
