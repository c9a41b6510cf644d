package tables

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type cmdRunner struct{}

func (cmdRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// LatticeConfig controls ruling-line table detection on rasterized pages.
type LatticeConfig struct {
	Pdftoppm  string // if empty -> "pdftoppm"
	Tesseract string // if empty -> "tesseract"
	DPI       int    // default 150; ruling lines need less resolution than OCR
	MaxPages  int    // 0 = no limit
}

// LatticeExtractor finds bordered tables by scanning page images for ruling
// lines, then recognizes each cell region separately.
type LatticeExtractor struct {
	cfg    LatticeConfig
	runner Runner
	logger *slog.Logger
}

func NewLatticeExtractor(cfg LatticeConfig, logger *slog.Logger) *LatticeExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 150
	}
	return &LatticeExtractor{cfg: cfg, runner: cmdRunner{}, logger: logger}
}

// Available reports whether the required binaries are on PATH.
func (e *LatticeExtractor) Available() bool {
	if _, err := exec.LookPath(e.cfg.Pdftoppm); err != nil {
		return false
	}
	_, err := exec.LookPath(e.cfg.Tesseract)
	return err == nil
}

// Extract rasterizes the document and detects bordered tables per page.
// Individual page failures are tolerated; the remaining pages still count.
func (e *LatticeExtractor) Extract(ctx context.Context, path string) ([]Candidate, error) {
	tmpDir, err := os.MkdirTemp("", "la-lat-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, truncateStderr(errb))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}

	var cands []Candidate
	for pageIdx, imgPath := range matches {
		grid, err := e.pageGrid(ctx, imgPath, tmpDir)
		if err != nil {
			e.logger.Warn("lattice detection failed for page", "page", pageIdx+1, "error", err)
			continue
		}
		if grid != nil {
			cands = append(cands, NewCandidate(grid, pageIdx+1, MethodLattice))
		}
	}
	return cands, nil
}

// cell grids larger than this are almost certainly line noise
const maxLatticeCells = 200

// pageGrid scans one page image for ruling lines and OCRs each cell.
// Returns nil (no error) when the page has no bordered table.
func (e *LatticeExtractor) pageGrid(ctx context.Context, imgPath, tmpDir string) ([][]string, error) {
	f, err := os.Open(imgPath)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(imgPath), err)
	}

	hLines, vLines := rulingLines(img)
	if len(hLines) < 3 || len(vLines) < 3 {
		return nil, nil
	}
	rows := len(hLines) - 1
	cols := len(vLines) - 1
	if rows*cols > maxLatticeCells {
		return nil, nil
	}

	grid := make([][]string, rows)
	for i := 0; i < rows; i++ {
		grid[i] = make([]string, cols)
		for j := 0; j < cols; j++ {
			cell := cropCell(img, vLines[j], hLines[i], vLines[j+1], hLines[i+1])
			if cell == nil {
				continue
			}
			text, err := e.ocrCell(ctx, cell, tmpDir)
			if err != nil {
				// a cell that will not recognize stays empty
				continue
			}
			grid[i][j] = text
		}
	}
	return grid, nil
}

func (e *LatticeExtractor) ocrCell(ctx context.Context, cell image.Image, tmpDir string) (string, error) {
	f, err := os.CreateTemp(tmpDir, "cell-*.png")
	if err != nil {
		return "", err
	}
	name := f.Name()
	defer os.Remove(name)
	if err := png.Encode(f, cell); err != nil {
		f.Close()
		return "", err
	}
	f.Close()

	// --psm 7: treat the image as a single text line
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, name, "stdout", "--psm", "7")
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncateStderr(errb))
	}
	return strings.TrimSpace(string(out)), nil
}

// rulingLines returns the y positions of horizontal and x positions of
// vertical ruling lines, found where a row or column is mostly dark pixels.
func rulingLines(img image.Image) (hLines, vLines []int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, nil
	}

	rowDark := make([]int, h)
	colDark := make([]int, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// luma threshold on 16-bit channels
			if (r+g+bl)/3 < 0x6000 {
				rowDark[y]++
				colDark[x]++
			}
		}
	}

	hLines = collapseRuns(thresholdIndices(rowDark, int(float64(w)*0.5)))
	vLines = collapseRuns(thresholdIndices(colDark, int(float64(h)*0.5)))
	return hLines, vLines
}

func thresholdIndices(counts []int, min int) []int {
	var idx []int
	for i, c := range counts {
		if c >= min {
			idx = append(idx, i)
		}
	}
	return idx
}

// collapseRuns merges adjacent indices (a thick line spans several pixels)
// into one representative position each.
func collapseRuns(idx []int) []int {
	var out []int
	for i := 0; i < len(idx); i++ {
		j := i
		for j+1 < len(idx) && idx[j+1] == idx[j]+1 {
			j++
		}
		out = append(out, (idx[i]+idx[j])/2)
		i = j
	}
	return out
}

// cropCell copies the region strictly inside the ruling lines. Returns nil
// for degenerate regions.
func cropCell(img image.Image, x0, y0, x1, y1 int) image.Image {
	const inset = 2
	b := img.Bounds()
	r := image.Rect(b.Min.X+x0+inset, b.Min.Y+y0+inset, b.Min.X+x1-inset, b.Min.Y+y1-inset)
	if r.Dx() < 4 || r.Dy() < 4 {
		return nil
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			out.Set(x, y, img.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	return out
}

func truncateStderr(b []byte) string {
	s := string(b)
	if len(s) > 512 {
		return s[:512] + "...(truncated)"
	}
	return strings.TrimSpace(s)
}
