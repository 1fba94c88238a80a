package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"dtacli/internal/errors"
	"dtacli/internal/files"
	"dtacli/pkg/contracts/domain"
)

// FileError pairs a failed file with its parse error.
type FileError struct {
	File string
	Err  error
}

// LoadResult is the outcome of a batch load: every successfully parsed
// signal in file-enumeration order plus the per-file failures. A per-file
// failure never aborts the batch.
type LoadResult struct {
	Signals []*domain.Signal
	Errors  []FileError
}

// LoadSignals discovers every .DTA export under dir and parses them
// concurrently. Signals carry no shared state once constructed, so files
// are independent work items; each gets its own result slot to keep output
// in deterministic enumeration order. Files with unrecognized technique
// tags are skipped silently.
func LoadSignals(ctx context.Context, dir string, workers int) (*LoadResult, error) {
	discovery := files.NewDiscovery(dir)
	infos, err := discovery.FindSignalFiles(".")
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate signal files: %w", err)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	signals := make([]*domain.Signal, len(infos))
	failures := make([]error, len(infos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, info := range infos {
		i, info := i, info
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			sig, err := ParseFile(info.Path)
			if err != nil {
				if errors.Is(err, errors.ErrUnrecognizedTechnique) {
					slog.Debug("skipping file with unknown technique tag",
						slog.String("file", info.Name))
					return nil
				}
				slog.Warn("failed to parse signal file",
					slog.String("file", info.Name),
					slog.String("error", err.Error()))
				failures[i] = err
				return nil
			}

			signals[i] = sig
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &LoadResult{}
	for i, info := range infos {
		if signals[i] != nil {
			result.Signals = append(result.Signals, signals[i])
		}
		if failures[i] != nil {
			result.Errors = append(result.Errors, FileError{File: info.Path, Err: failures[i]})
		}
	}

	slog.Info("signal batch loaded",
		slog.String("dir", dir),
		slog.Int("files", len(infos)),
		slog.Int("signals", len(result.Signals)),
		slog.Int("failures", len(result.Errors)))
	return result, nil
}
