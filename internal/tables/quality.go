package tables

import (
	"regexp"
	"strings"
)

// Quality holds the per-table quality metrics. All component scores live in
// [0,1]; Overall is their weighted combination minus the noise penalty.
type Quality struct {
	FillRatio      float64 `json:"fill_ratio"`
	ShapeScore     float64 `json:"shape_score"`
	ContentScore   float64 `json:"content_score"`
	StructureScore float64 `json:"structure_score"`
	NoisePenalty   float64 `json:"noise_penalty"`
	Overall        float64 `json:"overall_score"`
	Confidence     string  `json:"confidence_level"`
}

// Confidence levels by overall score.
const (
	ConfidenceExcellent = "excellent" // >= 0.8
	ConfidenceGood      = "good"      // >= 0.6
	ConfidenceFair      = "fair"      // >= 0.4
	ConfidencePoor      = "poor"
)

func ConfidenceLevel(overall float64) string {
	switch {
	case overall >= 0.8:
		return ConfidenceExcellent
	case overall >= 0.6:
		return ConfidenceGood
	case overall >= 0.4:
		return ConfidenceFair
	default:
		return ConfidencePoor
	}
}

// ScoreGrid computes quality metrics for a cell grid. Pure function:
// identical input always yields identical output.
func ScoreGrid(rows [][]string) Quality {
	r, c := Shape(rows)
	if r == 0 || c == 0 {
		return Quality{Confidence: ConfidencePoor}
	}

	q := Quality{
		FillRatio:      fillRatio(rows, r, c),
		ShapeScore:     shapeScore(r, c),
		ContentScore:   contentScore(rows),
		StructureScore: structureScore(rows, c),
		NoisePenalty:   noisePenalty(rows),
	}
	q.Overall = clamp01(0.3*q.FillRatio + 0.2*q.ShapeScore + 0.3*q.ContentScore + 0.2*q.StructureScore - q.NoisePenalty)
	q.Confidence = ConfidenceLevel(q.Overall)
	return q
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func fillRatio(rows [][]string, r, c int) float64 {
	filled := 0
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				filled++
			}
		}
	}
	return float64(filled) / float64(r*c)
}

// shapeScore prefers 2-8 column tables. Degenerate single-row or
// single-column grids score zero.
func shapeScore(r, c int) float64 {
	if r < 2 || c < 2 {
		return 0
	}
	return clamp01(float64(c-1) / 8.0)
}

var unitTokens = []string{
	"W", "lm", "lx", "V", "A", "Hz", "°C", "°F", "m", "mm", "cm", "kg", "g",
	"s", "min", "h", "day", "week", "month", "year", "%", "dB", "cd", "sr",
}

var technicalTerms = []string{
	"efficacy", "illuminance", "luminous", "luminaire", "working", "plane",
	"calculation", "building", "room", "story", "floor", "ceiling", "wall",
	"target", "minimum", "maximum", "average", "total", "power", "energy",
	"lighting", "design", "specification", "manufacturer", "article", "model",
	"lux", "lumen", "watt", "candela", "steradian", "luminance", "brightness",
	"glare", "uniformity", "color temperature", "cri", "ugr", "power density",
}

var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\.\d+`),        // decimal numbers
	regexp.MustCompile(`\d+[eE][+-]?\d+`), // scientific notation
	regexp.MustCompile(`\d+\s*[WlmVAdB°%]`),
	regexp.MustCompile(`\d{2,}`),
}

var structuredPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z]`), // title case run
	regexp.MustCompile(`^[A-Z]+$`),             // all caps, likely a header
	regexp.MustCompile(`^\d+\.\s+`),            // numbered list
	regexp.MustCompile(`^[A-Z][a-z]+:`),        // label with colon
}

func meaningfulCell(s string) bool {
	for _, u := range unitTokens {
		if strings.Contains(s, u) {
			return true
		}
	}
	for _, p := range numberPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	lower := strings.ToLower(s)
	for _, t := range technicalTerms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	for _, p := range structuredPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func contentScore(rows [][]string) float64 {
	total, meaningful := 0, 0
	for _, row := range rows {
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			total++
			if meaningfulCell(cell) {
				meaningful++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(meaningful) / float64(total)
}

var pureNumberRe = regexp.MustCompile(`^\d+\.?\d*$`)

func structureScore(rows [][]string, cols int) float64 {
	// fraction of columns carrying any data
	nonEmptyCols := 0
	for col := 0; col < cols; col++ {
		for _, row := range rows {
			if col < len(row) && strings.TrimSpace(row[col]) != "" {
				nonEmptyCols++
				break
			}
		}
	}

	// header plausibility of the first row: short cells throughout
	hasHeaders := false
	if len(rows) > 0 && len(rows[0]) > 0 {
		sum, max := 0, 0
		for _, cell := range rows[0] {
			n := len(strings.TrimSpace(cell))
			sum += n
			if n > max {
				max = n
			}
		}
		if float64(sum)/float64(len(rows[0])) < 20 && max < 50 {
			hasHeaders = true
		}
	}

	// column type consistency: mostly numeric or mostly text both count
	consistent := 0
	for col := 0; col < cols; col++ {
		var values []string
		for _, row := range rows {
			if col < len(row) {
				if v := strings.TrimSpace(row[col]); v != "" {
					values = append(values, v)
				}
			}
		}
		if len(values) <= 1 {
			continue
		}
		numeric := 0
		for _, v := range values {
			if pureNumberRe.MatchString(v) {
				numeric++
			}
		}
		ratio := float64(numeric) / float64(len(values))
		if ratio > 0.7 || ratio < 0.3 {
			consistent++
		}
	}

	headerScore := 0.0
	if hasHeaders {
		headerScore = 1.0
	}
	return 0.4*float64(nonEmptyCols)/float64(cols) +
		0.3*headerScore +
		0.3*float64(consistent)/float64(cols)
}

var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[^a-zA-Z0-9\s]{3,}$`),            // mostly symbols
	regexp.MustCompile(`^[a-z]{1,2}$`),                    // very short lowercase fragments
	regexp.MustCompile(`^[^a-zA-Z0-9]*$`),                 // no alphanumeric content
	regexp.MustCompile(`^[a-zA-Z]$`),                      // single letters
	regexp.MustCompile(`^[0-9,]{1,3}$`),                   // bare digit/comma groups
	regexp.MustCompile(`^[^a-zA-Z0-9\s.,:\-()]{2,}$`),     // random symbol runs
}

var (
	specialCharRe = regexp.MustCompile(`[^a-zA-Z0-9\s.,:\-()]`)
	fragmentRe    = regexp.MustCompile(`[a-z]{1,2}[^a-zA-Z]`)
)

func noisyCell(s string) bool {
	for _, p := range noisePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	if float64(len(specialCharRe.FindAllString(s, -1)))/float64(len(s)) > 0.3 {
		return true
	}
	return len(fragmentRe.FindAllString(s, -1)) > 2
}

func noisePenalty(rows [][]string) float64 {
	total, noisy := 0, 0
	for _, row := range rows {
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			total++
			if noisyCell(cell) {
				noisy++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(noisy) / float64(total)
}
