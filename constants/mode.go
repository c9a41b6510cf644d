package constants

import "strings"

// AnalysisMode selects how much work the analyzer does per report.
type AnalysisMode string

const (
	// ModeFast runs pattern extraction plus lightweight company detection.
	ModeFast AnalysisMode = "fast"
	// ModeStandard runs pattern extraction with local metadata heuristics only.
	ModeStandard AnalysisMode = "standard"
	// ModeEnhanced additionally sends a report excerpt to the LLM for
	// structured extraction. Requires an API key.
	ModeEnhanced AnalysisMode = "enhanced"
)

func ParseAnalysisMode(input string) (AnalysisMode, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "fast":
		return ModeFast, true
	case "standard", "":
		return ModeStandard, true
	case "enhanced":
		return ModeEnhanced, true
	}
	return ModeStandard, false
}
