package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"dtacli/internal/config"
	"dtacli/internal/dataprocessing"
	"dtacli/internal/infrastructure"
	"dtacli/pkg/contracts"
	"dtacli/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", "", "input directory with .DTA exports (defaults to configured data dir)")
	technique := flag.String("technique", "", "only keep signals of this technique tag (EISPOT, EISMON, CV, CPC, CHRONOA)")
	label := flag.String("label", "", "only keep signals whose label contains this substring")
	workers := flag.Int("workers", 0, "number of concurrent parse workers (0 = one per CPU)")
	verbose := flag.Bool("v", false, "enable debug logging")
	version := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetVersionInfo().String())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	if *inDir == "" {
		*inDir = cfg.Paths.DataDir
	}
	if *workers == 0 {
		*workers = cfg.Processing.Workers
	}

	filter := dataprocessing.Filter{LabelContains: *label}
	if *technique != "" {
		tech, ok := domain.TechniqueFromTag(strings.ToUpper(*technique))
		if !ok {
			slog.Error("Unknown technique tag", "technique", *technique)
			os.Exit(1)
		}
		filter.Technique = tech
	}

	slog.Info("Loading signal files", "dir", *inDir)
	result, err := dataprocessing.LoadSignals(context.Background(), *inDir, *workers)
	if err != nil {
		slog.Error("Failed to load signals", "error", err)
		os.Exit(1)
	}

	for _, fe := range result.Errors {
		slog.Warn("File failed to parse", "file", filepath.Base(fe.File), "error", fe.Err)
	}

	signals := dataprocessing.FilterSignals(result.Signals, filter)
	printSummary(signals)

	slog.Info("Done",
		"parsed", len(result.Signals),
		"matched", len(signals),
		"failed", len(result.Errors))
}

// printSummary writes a human-readable table of the matched signals.
func printSummary(signals []*domain.Signal) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "LABEL\tTECHNIQUE\tROWS\tAREA (cm2)\tRs (Ohm)\tF_3dB (Hz)\tF_45deg (Hz)")
	for _, sig := range signals {
		rs, dbFreq, phaseFreq := "-", "-", "-"
		if d := sig.Derived; d != nil {
			rs = fmt.Sprintf("%.4g", d.SeriesResistance)
			if d.DBCorner != nil {
				dbFreq = fmt.Sprintf("%.4g", d.DBCorner.Freq)
			}
			if d.PhaseCorner != nil {
				phaseFreq = fmt.Sprintf("%.4g", d.PhaseCorner.Freq)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4g\t%s\t%s\t%s\n",
			sig.Label, sig.Technique, len(sig.Table.Rows), sig.Area, rs, dbFreq, phaseFreq)
	}
}
