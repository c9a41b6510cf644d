package standards

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pemistahl/lingua-go"

	"github.com/luxaudit/luxaudit/constants"
)

// requirementPatterns maps a compliance parameter to the regexes that
// harvest its thresholds from standards-document text. Group 1 is the
// numeric value.
var requirementPatterns = []struct {
	param    string
	unit     string
	patterns []*regexp.Regexp
}{
	{"illuminance", "lux", compileReqs(
		`(\d+(?:\.\d+)?)\s*(?:lux|lx)`,
		`illuminance[:\s]*(\d+(?:\.\d+)?)`,
		`lighting level[:\s]*(\d+(?:\.\d+)?)`,
	)},
	{"uniformity", "", compileReqs(
		`uniformity[:\s]*(\d+(?:\.\d+)?)`,
		`u0[:\s]*(\d+(?:\.\d+)?)`,
	)},
	{"ugr", "", compileReqs(
		`ugr[:\s]*(\d+(?:\.\d+)?)`,
		`unified glare rating[:\s]*(\d+(?:\.\d+)?)`,
	)},
	{"power_density", "W/m²", compileReqs(
		`(\d+(?:\.\d+)?)\s*(?:w/m²|watt/m²|w/m2)`,
		`power density[:\s]*(\d+(?:\.\d+)?)`,
		`lighting power density[:\s]*(\d+(?:\.\d+)?)`,
	)},
	{"color_temperature", "K", compileReqs(
		`(\d+(?:\.\d+)?)\s*(?:k|kelvin)\b`,
		`colou?r temperature[:\s]*(\d+(?:\.\d+)?)`,
		`correlated colou?r temperature[:\s]*(\d+(?:\.\d+)?)`,
	)},
	{"cri", "", compileReqs(
		`cri[:\s]*(\d+(?:\.\d+)?)`,
		`colou?r rendering index[:\s]*(\d+(?:\.\d+)?)`,
	)},
}

var versionPatterns = compileReqs(
	`version\s+(\d+(?:\.\d+)*)`,
	`v(\d+(?:\.\d+)*)`,
	`(\d{4})`,
	`edition\s+(\d+)`,
)

func compileReqs(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

// Processor turns extracted standards-document text into database entries.
type Processor struct {
	db       *Database
	detector lingua.LanguageDetector
	log      *slog.Logger
}

func NewProcessor(db *Database, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.German, lingua.French).
		Build()
	return &Processor{db: db, detector: detector, log: logger}
}

// Process identifies the standard in the given text, harvests its
// requirements, merges them into the database and returns the document.
func (p *Processor) Process(path, text string) (*Document, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc := &Document{
		Name:        name,
		Type:        IdentifyStandard(text, filepath.Base(path)),
		Version:     extractVersion(text),
		Language:    p.detectLanguage(text),
		TextContent: text,
		ProcessedAt: time.Now().UTC(),
	}
	doc.Requirements = harvestRequirements(text, doc.Type)

	p.log.Info("standards document processed",
		slog.String("name", doc.Name),
		slog.String("standard", string(doc.Type)),
		slog.String("version", doc.Version),
		slog.String("language", doc.Language),
		slog.Int("requirements", len(doc.Requirements)))

	if err := p.db.Merge(doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// IdentifyStandard picks the standard family from document text and filename.
func IdentifyStandard(text, filename string) StandardType {
	haystack := strings.ToLower(text) + " " + strings.ToLower(filename)

	switch {
	case containsAny(haystack, "en 12464-1", "en12464-1", "12464-1"):
		return StandardEN12464
	case containsAny(haystack, "breeam", "building research establishment"):
		return StandardBREEAM
	case containsAny(haystack, "illuminating engineering society", "ies "):
		return StandardIES
	case containsAny(haystack, "commission internationale", "cie "):
		return StandardCIE
	case containsAny(haystack, "iso 8995", "iso8995", "8995"):
		return StandardISO8995
	}
	return StandardCustom
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func extractVersion(text string) string {
	for _, re := range versionPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return "Unknown"
}

func (p *Processor) detectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return "en"
	}
	lang, ok := p.detector.DetectLanguageOf(text)
	if !ok {
		return "en"
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

func harvestRequirements(text string, standard StandardType) []Requirement {
	var reqs []Requirement
	for _, family := range requirementPatterns {
		for _, re := range family.patterns {
			for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
				val, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
				if err != nil {
					continue
				}
				roomType := roomTypeFromContext(text, loc[0], loc[1])
				condition := conditionFromContext(text, loc[0], loc[1])
				reqs = append(reqs, Requirement{
					Parameter:   family.param,
					Value:       val,
					Unit:        family.unit,
					Condition:   condition,
					RoomType:    roomType,
					Standard:    standard,
					Description: family.param + " requirement for " + string(roomType),
				})
			}
		}
	}
	return reqs
}

// roomTypeFromContext classifies the room bucket from text surrounding a
// requirement match.
func roomTypeFromContext(text string, start, end int) constants.RoomType {
	lo := max(0, start-200)
	hi := min(len(text), end+200)
	return constants.ClassifyRoom("", text[lo:hi])
}

// conditionFromContext decides whether a matched value is a minimum,
// maximum or average threshold. Minimum is the default.
func conditionFromContext(text string, start, end int) string {
	lo := max(0, start-100)
	hi := min(len(text), end+100)
	ctx := strings.ToLower(text[lo:hi])

	switch {
	case containsAny(ctx, "minimum", "min", "least"):
		return "minimum"
	case containsAny(ctx, "maximum", "max", "most"):
		return "maximum"
	case containsAny(ctx, "average", "avg", "mean"):
		return "average"
	}
	return "minimum"
}
