package pdfextract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ocrBackend rasterizes pages with pdftoppm and runs tesseract on each one.
// It is the slowest backend and the only one that handles scanned reports.
type ocrBackend struct {
	pdftoppm    string
	tesseract   string
	dpi         int
	maxPages    int
	lang        string
	tessdataDir string
	runner      Runner
	log         *slog.Logger
}

func newOCRBackend(pdftoppm, tesseract string, dpi, maxPages int, tessdataDir string, r Runner, logger *slog.Logger) *ocrBackend {
	if dpi <= 0 {
		dpi = 300
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ocrBackend{
		pdftoppm:    pdftoppm,
		tesseract:   tesseract,
		dpi:         dpi,
		maxPages:    maxPages,
		lang:        "eng",
		tessdataDir: tessdataDir,
		runner:      r,
		log:         logger,
	}
}

func (b *ocrBackend) Name() string        { return MethodOCR }
func (b *ocrBackend) Confidence() float64 { return 0.70 }

func (b *ocrBackend) Available() bool {
	if _, err := exec.LookPath(b.pdftoppm); err != nil {
		return false
	}
	_, err := exec.LookPath(b.tesseract)
	return err == nil
}

func (b *ocrBackend) Extract(ctx context.Context, path string) (Result, error) {
	tmpDir, err := os.MkdirTemp("", "la-pp-*")
	if err != nil {
		return Result{Method: MethodOCR}, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			b.log.Warn("failed to remove temp dir", slog.String("dir", tmpDir), slog.Any("error", err))
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := b.runner.Run(ctx, b.pdftoppm, "-r", fmt.Sprintf("%d", b.dpi), "-png", path, prefix)
	if err != nil {
		return Result{Method: MethodOCR, Warnings: []string{string(errb)}}, err
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if b.maxPages > 0 && len(matches) > b.maxPages {
		matches = matches[:b.maxPages]
	}
	if len(matches) == 0 {
		return Result{Method: MethodOCR, Warnings: []string{"pdftoppm produced no images"}},
			fmt.Errorf("no pages rendered")
	}

	var sb strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, err := b.pageOCR(ctx, img)
		if err != nil {
			// tolerate individual page failures; remaining pages still count
			warns = append(warns, err.Error())
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\f\n") // keep a clear page break marker
		}
		sb.WriteString(txt)
		warns = append(warns, w...)
	}

	return Result{
		Text:       normalizeOCR(sb.String()),
		Pages:      len(matches),
		Method:     MethodOCR,
		Confidence: b.Confidence(),
		Warnings:   warns,
	}, nil
}

func (b *ocrBackend) pageOCR(ctx context.Context, img string) (string, []string, error) {
	args := []string{img, "stdout", "-l", b.lang}
	if b.tessdataDir != "" {
		args = append(args, "--tessdata-dir", b.tessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := b.runner.Run(ctx, b.tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract %s: %w", filepath.Base(img), err)
	}

	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return txt, nil, nil
}

var (
	reBoxNoise   = regexp.MustCompile(`(?m)^\s*[_\-]{3,}\s*$`)
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// normalizeOCR cleans up line endings and blank-line runs. Runs of spaces are
// kept as-is; column alignment feeds table detection downstream.
func normalizeOCR(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
