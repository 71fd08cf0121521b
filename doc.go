// Package chainage is a range-based progress ledger for linear works such as
// canals, measured along their length in kilometers.
//
// Each package of work has a fixed target length. Field teams report progress
// as arbitrary, possibly overlapping ranges [start, end) together with how
// much earthwork and lining was completed inside that range. The ledger only
// accepts a report when it keeps the package physically consistent:
//
//   - totals never exceed the target length
//   - lining never exceeds the earthwork beneath it
//   - new work never overlaps ranges that already carry work
//
// Reporting more lining over a range whose earthwork is already recorded is
// allowed by resubmitting the exact same range with zero earthwork.
//
// # Quick Start
//
//	import (
//	    "github.com/xraph/chainage"
//	    "github.com/xraph/chainage/store/memory"
//	    "github.com/xraph/chainage/target"
//	)
//
//	l := chainage.New(memory.New())
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
//	_ = l.CreateTarget(ctx, &target.Target{PackageID: "pkg-7", Length: chainage.Km(10)})
//
//	entry, err := l.AddProgress(ctx, "pkg-7", chainage.Input{
//	    StartKm: 0, EndKm: 4, EarthworkDoneKm: 4, LiningDoneKm: 2,
//	})
//	if vs, ok := chainage.AsViolations(err); ok {
//	    for _, v := range vs {
//	        log.Println(v.Code, v.Message)
//	    }
//	}
//
// # Distances
//
// Distances are stored as whole meters (types.Distance). Kilometer floats are
// accepted and returned only at the edges, so range comparisons are exact.
//
// # Queries
//
// Totals, RangeSummary and BinnedSeries read a snapshot of the package:
//
//	totals, _ := l.Totals(ctx, "pkg-7")
//	summary, _ := l.RangeSummary(ctx, "pkg-7", 0, 4, id.Nil)
//	bins, _ := l.BinnedSeries(ctx, "pkg-7", 1)
//
// RangeSummary attributes each overlapping entry proportionally to the
// overlap. BinnedSeries adds an entry's full totals to every bin position it
// covers, so its values are a display aid and do not sum to Totals.
//
// # Stores
//
// store/memory keeps everything in process. store/postgres, store/sqlite and
// store/mongo persist through Grove.
//
// # Plugins
//
// Plugins implement any of the hook interfaces in package plugin and are
// registered with WithPlugin. audit_hook records every decision to an audit
// trail and observability counts accepted and rejected reports.
package chainage
