// Package dataprocessing turns Gamry .DTA exports into typed signal records.
// It consolidates classification, header parsing, table reading and derived
// metric computation into a cohesive package that handles the complete data
// lifecycle from raw instrument text to a filterable signal collection.
//
// # Architecture
//
// The package is organized around four components:
//
// 1. Parser: classifies a file by its TAG line and reads its data table(s)
// 2. Analytics: computes series resistance and corner-frequency metrics
// 3. Processor: loads whole directories concurrently with per-file errors
// 4. Filter: selects signal subsets by technique, label and metadata
//
// # Usage
//
// Parse a single export:
//
//	sig, err := dataprocessing.ParseFile("sweep_S1.DTA")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Load a directory and filter it:
//
//	result, err := dataprocessing.LoadSignals(ctx, "data", 4)
//	sweeps := dataprocessing.FilterSignals(result.Signals, dataprocessing.Filter{
//	    Technique: domain.TechniqueImpedanceSweep,
//	})
//
// # Error Handling
//
// Per-file failures (malformed header, unreadable table) abort only that
// file; batch loading continues and reports a per-file error list. Files
// whose TAG token is outside the known technique set are skipped, not
// failed. An interpolation target outside the sampled range leaves the
// corresponding derived fields absent and is never surfaced as an error.
package dataprocessing
