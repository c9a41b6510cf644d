package pdfextract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/luxaudit/luxaudit/constants"
	"github.com/luxaudit/luxaudit/internal/common"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	OCRDPI      int // rasterization DPI for scanned PDFs, default 300
	MaxPages    int // 0 = no limit
	TessdataDir string
}

// TableFinder detects cell grids in extracted text. Injected so table
// detection lives with the table quality code rather than here.
type TableFinder func(text string) [][][]string

type Extractor struct {
	backends   []Backend
	findTables TableFinder
	logger     *slog.Logger
}

// NewExtractor builds the backend chain in priority order: poppler text
// layer, poppler layout, in-process stream parsing, then OCR.
func NewExtractor(cfg Config, finder TableFinder, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	runner := execRunner{}
	return &Extractor{
		backends: []Backend{
			newTextBackend(cfg.Pdftotext, runner),
			newLayoutBackend(cfg.Pdftotext, runner),
			newStreamBackend(),
			newOCRBackend(cfg.Pdftoppm, cfg.Tesseract, cfg.OCRDPI, cfg.MaxPages, cfg.TessdataDir, runner, logger),
		},
		findTables: finder,
		logger:     logger,
	}
}

// ExtractAll runs every available backend and returns all scored candidates
// in backend priority order. A failing backend contributes nothing; only
// when every backend comes back empty is that an error.
func (e *Extractor) ExtractAll(ctx context.Context, path string) ([]Result, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		e.logger.Error("unsupported input extension", "extension", ext)
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}

	var results []Result
	for _, b := range e.backends {
		if !b.Available() {
			e.logger.Debug("extraction backend unavailable", "backend", b.Name())
			continue
		}
		start := time.Now()
		res, err := b.Extract(ctx, path)
		res.Duration = time.Since(start)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Warn("extraction backend failed",
				"backend", b.Name(), "error", err, "duration_ms", res.Duration.Milliseconds())
			continue
		}
		if e.findTables != nil && res.Text != "" {
			res.Tables = e.findTables(res.Text)
		}
		res.Score = Score(len(res.Text), len(res.Tables), res.Confidence)
		e.logger.Debug("extraction backend done",
			"backend", b.Name(),
			"chars", len(res.Text),
			"tables", len(res.Tables),
			"score", res.Score,
			"duration_ms", res.Duration.Milliseconds())
		results = append(results, res)
	}
	return results, nil
}

// Extract runs all backends and returns the best-scoring non-empty candidate.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	results, err := e.ExtractAll(ctx, path)
	if err != nil {
		return Result{}, err
	}
	best := pickBest(results)
	if best < 0 {
		return Result{}, common.ErrExtractionExhausted
	}
	e.logger.Info("extraction arbitration",
		"path", path,
		"candidates", len(results),
		"winner", results[best].Method,
		"score", results[best].Score)
	return results[best], nil
}
