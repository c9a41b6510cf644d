package pdfextract

// Score rates one extraction candidate. Text volume dominates, detected
// tables and backend fidelity share the rest. Saturation points: 10000
// characters of text and 10 tables.
func Score(textLen, tableCount int, confidence float64) float64 {
	textScore := float64(textLen) / 10000
	if textScore > 1 {
		textScore = 1
	}
	tableScore := float64(tableCount) / 10
	if tableScore > 1 {
		tableScore = 1
	}
	return 0.4*textScore + 0.3*tableScore + 0.3*confidence
}

// pickBest returns the index of the highest-scoring candidate. Ties keep the
// earliest candidate, so backend priority order decides. Returns -1 when
// every candidate is empty.
func pickBest(results []Result) int {
	best := -1
	bestScore := -1.0
	for i, r := range results {
		if r.Text == "" && len(r.Tables) == 0 {
			continue
		}
		if r.Score > bestScore {
			best = i
			bestScore = r.Score
		}
	}
	return best
}
