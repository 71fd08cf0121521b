package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/chainage"
	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/store/memory"
	"github.com/xraph/chainage/target"
	"github.com/xraph/chainage/types"
)

func newTarget(pkg string) *target.Target {
	return &target.Target{
		Entity:    types.NewEntity(),
		ID:        id.NewTargetID(),
		PackageID: pkg,
		Length:    types.Km(10),
		Metadata:  map[string]string{"canal": "main"},
	}
}

func newEntry(pkg string, startKm, endKm float64) *progress.Entry {
	return &progress.Entry{
		Entity:    types.NewEntity(),
		ID:        id.NewEntryID(),
		PackageID: pkg,
		Start:     types.Km(startKm),
		End:       types.Km(endKm),
		Earthwork: types.Km(endKm - startKm),
		Kind:      progress.KindNewWork,
	}
}

func TestTargets(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	if _, err := s.GetTarget(ctx, "pkg-1"); !errors.Is(err, chainage.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}

	for _, pkg := range []string{"pkg-1", "pkg-2", "pkg-3"} {
		if err := s.CreateTarget(ctx, newTarget(pkg)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.CreateTarget(ctx, newTarget("pkg-1")); !errors.Is(err, chainage.ErrTargetExists) {
		t.Errorf("expected ErrTargetExists, got %v", err)
	}

	got, err := s.GetTarget(ctx, "pkg-2")
	if err != nil {
		t.Fatal(err)
	}
	if got.Length != types.Km(10) {
		t.Errorf("length = %s", got.Length)
	}

	// Returned values are copies.
	got.Metadata["canal"] = "changed"
	again, _ := s.GetTarget(ctx, "pkg-2")
	if again.Metadata["canal"] != "main" {
		t.Error("mutating a returned target changed the store")
	}

	all, err := s.ListTargets(ctx, target.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].PackageID != "pkg-1" || all[2].PackageID != "pkg-3" {
		t.Errorf("unexpected list order: %v", all)
	}

	page, _ := s.ListTargets(ctx, target.ListOpts{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].PackageID != "pkg-2" {
		t.Errorf("unexpected page: %v", page)
	}
	past, _ := s.ListTargets(ctx, target.ListOpts{Offset: 10})
	if len(past) != 0 {
		t.Errorf("expected empty page, got %d", len(past))
	}
}

func TestEntries(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	first := newEntry("pkg-1", 0, 4)
	second := newEntry("pkg-1", 4, 6)
	other := newEntry("pkg-2", 0, 1)
	for _, e := range []*progress.Entry{first, second, other} {
		if err := s.AppendEntry(ctx, e); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AppendEntry(ctx, first); !errors.Is(err, chainage.ErrEntryExists) {
		t.Errorf("expected ErrEntryExists, got %v", err)
	}

	list, err := s.ListEntries(ctx, "pkg-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID.String() != first.ID.String() || list[1].ID.String() != second.ID.String() {
		t.Fatalf("unexpected entries: %v", list)
	}

	empty, err := s.ListEntries(ctx, "unknown")
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty list, got %v, %v", empty, err)
	}

	got, err := s.GetEntry(ctx, second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.End != types.Km(6) {
		t.Errorf("end = %s", got.End)
	}

	if _, err := s.GetEntry(ctx, id.NewEntryID()); !errors.Is(err, chainage.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestReplaceEntryKeepsPosition(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	first := newEntry("pkg-1", 0, 4)
	second := newEntry("pkg-1", 4, 6)
	_ = s.AppendEntry(ctx, first)
	_ = s.AppendEntry(ctx, second)

	replacement := *first
	replacement.End = types.Km(3)
	replacement.Earthwork = types.Km(3)
	if err := s.ReplaceEntry(ctx, &replacement); err != nil {
		t.Fatal(err)
	}

	list, _ := s.ListEntries(ctx, "pkg-1")
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].ID.String() != first.ID.String() || list[0].End != types.Km(3) {
		t.Errorf("replacement did not keep its position: %+v", list[0])
	}

	missing := newEntry("pkg-1", 7, 8)
	if err := s.ReplaceEntry(ctx, missing); !errors.Is(err, chainage.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}

	moved := *second
	moved.PackageID = "pkg-2"
	if err := s.ReplaceEntry(ctx, &moved); !errors.Is(err, chainage.ErrEntryNotFound) {
		t.Errorf("moving an entry across packages should fail, got %v", err)
	}
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	if err := s.Ping(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Ping(ctx); !errors.Is(err, chainage.ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
	if err := s.AppendEntry(ctx, newEntry("pkg-1", 0, 1)); !errors.Is(err, chainage.ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
	if err := s.CreateTarget(ctx, newTarget("pkg-1")); !errors.Is(err, chainage.ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
}
