// Package batch runs the analysis pipeline over whole directories of
// reports, either in one pass or continuously via a filesystem watcher.
package batch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/luxaudit/luxaudit/constants"
	"github.com/luxaudit/luxaudit/internal/analyze"
	"github.com/luxaudit/luxaudit/internal/standards"
)

// FileResult is the per-file outcome of a directory run.
type FileResult struct {
	Path   string          `json:"path"`
	Report *analyze.Report `json:"report,omitempty"`
	Err    string          `json:"error,omitempty"`
}

// DirStats aggregates a directory run.
type DirStats struct {
	Scanned   int `json:"scanned"`
	Matched   int `json:"matched"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Runner fans report files out to a bounded set of workers. Each file is
// analyzed start-to-finish by one worker; results keep discovery order.
type Runner struct {
	analyzer *analyze.Analyzer
	workers  int
	log      *slog.Logger
}

func NewRunner(analyzer *analyze.Analyzer, workers int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{analyzer: analyzer, workers: workers, log: logger}
}

// ProcessDirectory walks root for PDF reports, skipping hidden entries, and
// analyzes each one. Per-file failures are recorded, not fatal.
func (r *Runner) ProcessDirectory(ctx context.Context, root string, mode constants.AnalysisMode, standard standards.StandardType) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var (
		stats DirStats
		paths []string
	)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if isHidden(path) && path != root {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if allowedExt(path) {
			stats.Matched++
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	results := r.run(ctx, paths, mode, standard)
	for _, res := range results {
		if res.Err == "" {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
	}
	r.log.Info("directory processed",
		slog.String("root", root),
		slog.Int("matched", stats.Matched),
		slog.Int("succeeded", stats.Succeeded),
		slog.Int("failed", stats.Failed))
	return results, stats, nil
}

func (r *Runner) run(ctx context.Context, paths []string, mode constants.AnalysisMode, standard standards.StandardType) []FileResult {
	results := make([]FileResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path := paths[i]
				report, err := r.analyzer.Analyze(ctx, path, mode, standard)
				if err != nil {
					r.log.Warn("file analysis failed", slog.String("path", path), slog.Any("error", err))
					results[i] = FileResult{Path: path, Err: err.Error()}
					continue
				}
				results[i] = FileResult{Path: path, Report: report}
			}
		}()
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

func allowedExt(path string) bool {
	ext := constants.NormalizeExt(filepath.Ext(path))
	_, ok := constants.AllowedExtensions[ext]
	return ok
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
