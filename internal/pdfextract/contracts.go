package pdfextract

import (
	"context"
	"time"
)

// Method names for extraction candidates. Stable values (stored in exports and DB).
const (
	MethodText   = "pdf-text"   // poppler text layer, raw reading order
	MethodLayout = "pdf-layout" // poppler text layer, physical layout preserved
	MethodStream = "pdf-stream" // in-process content stream parsing
	MethodOCR    = "pdf-ocr"    // rasterize and OCR
)

// Result is one extraction candidate for a PDF.
type Result struct {
	Text       string
	Tables     [][][]string // row-major cell grids detected in the text
	Pages      int
	Method     string
	Confidence float64 // fixed per backend, reflects typical fidelity
	Score      float64 // arbitration score, filled in by the extractor
	Duration   time.Duration
	Warnings   []string
}

// Backend produces one extraction candidate. Available reports whether the
// backend can run at all (external binaries present); unavailable backends
// are skipped without error.
type Backend interface {
	Name() string
	Confidence() float64
	Available() bool
	Extract(ctx context.Context, path string) (Result, error)
}
