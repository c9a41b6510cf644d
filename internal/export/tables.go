package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/luxaudit/luxaudit/internal/tables"
)

var tableQualityHeader = []string{
	"id", "page", "method", "rows", "cols",
	"fill_ratio", "shape_score", "content_score", "structure_score",
	"noise_penalty", "overall_score", "confidence",
}

// TableQualityCSV renders one row per detected table candidate so scoring
// behavior can be inspected without digging through JSON.
func TableQualityCSV(cands []tables.Candidate) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(tableQualityHeader); err != nil {
		return nil, err
	}
	for _, c := range cands {
		rows, cols := tables.Shape(c.Rows)
		record := []string{
			c.ID,
			fmt.Sprintf("%d", c.Page),
			c.Method,
			fmt.Sprintf("%d", rows),
			fmt.Sprintf("%d", cols),
			fmt.Sprintf("%.3f", c.Quality.FillRatio),
			fmt.Sprintf("%.3f", c.Quality.ShapeScore),
			fmt.Sprintf("%.3f", c.Quality.ContentScore),
			fmt.Sprintf("%.3f", c.Quality.StructureScore),
			fmt.Sprintf("%.3f", c.Quality.NoisePenalty),
			fmt.Sprintf("%.3f", c.Quality.Overall),
			c.Quality.Confidence,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
