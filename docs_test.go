package chainage_test

import (
	"context"
	"log"
	"log/slog"
	"testing"

	"github.com/xraph/chainage"
	"github.com/xraph/chainage/id"
	"github.com/xraph/chainage/store/memory"
	"github.com/xraph/chainage/target"
	"github.com/xraph/chainage/types"
)

// TestDocumentationExamples verifies that the examples in the package docs compile and run.
func TestDocumentationExamples(t *testing.T) {
	t.Run("QuickStartExample", func(t *testing.T) {
		store := memory.New()

		l := chainage.New(store,
			chainage.WithLogger(slog.Default()),
			chainage.WithDefaultBinWidth(types.Kilometer),
		)

		ctx := context.Background()
		if err := l.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer l.Stop()

		if err := l.CreateTarget(ctx, &target.Target{PackageID: "pkg-7", Length: chainage.Km(10)}); err != nil {
			t.Fatal(err)
		}

		entry, err := l.AddProgress(ctx, "pkg-7", chainage.Input{
			StartKm: 0, EndKm: 4, EarthworkDoneKm: 4, LiningDoneKm: 2,
		})
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("recorded %s as %s\n", entry.Span(), entry.Kind)

		_, err = l.AddProgress(ctx, "pkg-7", chainage.Input{
			StartKm: 2, EndKm: 6, EarthworkDoneKm: 4,
		})
		vs, ok := chainage.AsViolations(err)
		if !ok {
			t.Fatalf("expected violations, got %v", err)
		}
		for _, v := range vs {
			log.Println(v.Code, v.Message)
		}
	})

	t.Run("QueryExamples", func(t *testing.T) {
		ctx := context.Background()
		l := chainage.New(memory.New())
		if err := l.CreateTarget(ctx, &target.Target{PackageID: "pkg-7", Length: chainage.Km(10)}); err != nil {
			t.Fatal(err)
		}

		if _, err := l.Totals(ctx, "pkg-7"); err != nil {
			t.Fatal(err)
		}
		if _, err := l.RangeSummary(ctx, "pkg-7", 0, 4, id.Nil); err != nil {
			t.Fatal(err)
		}
		if _, err := l.BinnedSeries(ctx, "pkg-7", 1); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("DistanceExamples", func(t *testing.T) {
		d := chainage.Km(4.25)
		if d.Meters() != 4250 {
			t.Errorf("Km(4.25) = %d m", d.Meters())
		}
		_ = d.String() // "4.250 km"
		_ = chainage.Sum(d, chainage.Meters(750))
	})
}
