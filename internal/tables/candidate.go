// Package tables turns raw extracted text and page images into scored,
// deduplicated table candidates.
package tables

import (
	"strings"

	"github.com/google/uuid"
)

// Detection method names. Stable values (stored in exports and DB).
const (
	MethodStream  = "stream"     // whitespace column alignment in layout text
	MethodGrid    = "text-grid"  // delimiter-based row/column splitting
	MethodLattice = "lattice"    // ruling-line grid on a rasterized page
)

// Method base confidences, all below the text-layer extraction backends.
var methodConfidence = map[string]float64{
	MethodStream:  0.75,
	MethodGrid:    0.65,
	MethodLattice: 0.80,
}

// Candidate is one detected table plus its provenance and quality.
type Candidate struct {
	ID      string     `json:"id"`
	Page    int        `json:"page"`
	Method  string     `json:"method"`
	Rows    [][]string `json:"rows"`
	Quality Quality    `json:"quality"`
}

// NewCandidate scores the grid and assigns a fresh ID.
func NewCandidate(rows [][]string, page int, method string) Candidate {
	return Candidate{
		ID:      uuid.NewString(),
		Page:    page,
		Method:  method,
		Rows:    rows,
		Quality: ScoreGrid(rows),
	}
}

func MethodConfidence(method string) float64 {
	if c, ok := methodConfidence[method]; ok {
		return c
	}
	return 0.5
}

// Rank blends structural quality with the detection method's base fidelity.
// Used to order candidates fed into downstream fact extraction.
func (c Candidate) Rank() float64 {
	return 0.7*c.Quality.Overall + 0.3*MethodConfidence(c.Method)
}

// Flatten serializes the grid to one line per row with cells joined by
// single spaces, for feeding into pattern extraction.
func (c Candidate) Flatten() string {
	var sb strings.Builder
	for _, row := range c.Rows {
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Shape returns rows x cols. Cols is the widest row.
func Shape(rows [][]string) (int, int) {
	r := len(rows)
	c := 0
	for _, row := range rows {
		if len(row) > c {
			c = len(row)
		}
	}
	return r, c
}
