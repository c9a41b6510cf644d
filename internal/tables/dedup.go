package tables

import (
	"sort"
	"strings"
)

// DefaultSimilarityThreshold is the cell-wise similarity above which two
// same-shaped tables count as duplicates.
const DefaultSimilarityThreshold = 0.8

// Dedup collapses near-duplicate tables, keeping the higher-quality
// instance of each duplicate pair. Candidates are ranked by overall score
// before comparison, so input order only breaks exact ties. Idempotent.
func Dedup(cands []Candidate, threshold float64) []Candidate {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if len(cands) < 2 {
		return cands
	}

	ranked := make([]Candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quality.Overall > ranked[j].Quality.Overall
	})

	var kept []Candidate
	for _, cand := range ranked {
		dup := false
		for _, k := range kept {
			if Similarity(cand.Rows, k.Rows) >= threshold {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, cand)
		}
	}
	return kept
}

// Similarity compares two same-shaped grids cell by cell. Exact non-empty
// matches count 1, substring overlaps count 0.5. Differently shaped grids
// are never similar.
func Similarity(a, b [][]string) float64 {
	ra, ca := Shape(a)
	rb, cb := Shape(b)
	if ra != rb || ca != cb || ra == 0 || ca == 0 {
		return 0
	}

	var score float64
	total := ra * ca
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			va := cellAt(a, i, j)
			vb := cellAt(b, i, j)
			switch {
			case va == vb && va != "":
				score += 1
			case va != "" && vb != "" && (strings.Contains(va, vb) || strings.Contains(vb, va)):
				score += 0.5
			}
		}
	}
	return score / float64(total)
}

func cellAt(rows [][]string, i, j int) string {
	if i >= len(rows) || j >= len(rows[i]) {
		return ""
	}
	return strings.TrimSpace(rows[i][j])
}
