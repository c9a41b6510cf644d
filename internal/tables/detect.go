package tables

import (
	"regexp"
	"strings"
)

var (
	columnGapRe = regexp.MustCompile(`\s{2,}`)
	delimiterRe = regexp.MustCompile(`[|\t]`)
)

// DetectStream finds tables in layout-preserving text by looking for runs of
// consecutive lines whose cells are separated by two or more spaces. A run
// qualifies as a table when it spans at least two lines and the column
// counts stay within one of each other.
func DetectStream(text string) [][][]string {
	var grids [][][]string
	var run [][]string

	flush := func() {
		if len(run) >= 2 {
			grid := make([][]string, len(run))
			copy(grid, run)
			grids = append(grids, normalizeGrid(grid))
		}
		run = nil
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitColumns(line)
		if len(cells) < 2 {
			flush()
			continue
		}
		if len(run) > 0 {
			prev := len(run[len(run)-1])
			if abs(len(cells)-prev) > 1 {
				flush()
			}
		}
		run = append(run, cells)
	}
	flush()
	return grids
}

// DetectGrid finds tables delimited explicitly with pipes or tabs.
func DetectGrid(text string) [][][]string {
	var grids [][][]string
	var run [][]string

	flush := func() {
		if len(run) >= 2 {
			grid := make([][]string, len(run))
			copy(grid, run)
			grids = append(grids, normalizeGrid(grid))
		}
		run = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if !delimiterRe.MatchString(line) {
			flush()
			continue
		}
		var cells []string
		for _, c := range delimiterRe.Split(line, -1) {
			c = strings.TrimSpace(c)
			if c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) < 2 {
			flush()
			continue
		}
		run = append(run, cells)
	}
	flush()
	return grids
}

// GridsFromText is the detector handed to the PDF extractor for arbitration
// scoring. Stream detection only; explicit-delimiter tables are rare in
// Dialux output and counting them twice would skew the score.
func GridsFromText(text string) [][][]string {
	return DetectStream(text)
}

// ExtractFromText runs all text detectors, scores the results, and collapses
// duplicates across detectors.
func ExtractFromText(text string) []Candidate {
	var cands []Candidate
	for _, grid := range DetectStream(text) {
		cands = append(cands, NewCandidate(grid, 0, MethodStream))
	}
	for _, grid := range DetectGrid(text) {
		cands = append(cands, NewCandidate(grid, 0, MethodGrid))
	}
	return Dedup(cands, DefaultSimilarityThreshold)
}

func splitColumns(line string) []string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	var cells []string
	for _, c := range columnGapRe.Split(strings.TrimLeft(line, " \t"), -1) {
		c = strings.TrimSpace(c)
		if c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// normalizeGrid pads ragged rows so every row has the same width.
func normalizeGrid(rows [][]string) [][]string {
	_, cols := Shape(rows)
	for i, row := range rows {
		for len(row) < cols {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
