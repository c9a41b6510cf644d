// Package analyze orchestrates extraction, fact mining and compliance
// checking into a single analysis report.
package analyze

import (
	"strings"
	"time"

	"github.com/luxaudit/luxaudit/constants"
	"github.com/luxaudit/luxaudit/internal/facts"
	"github.com/luxaudit/luxaudit/internal/llm"
	"github.com/luxaudit/luxaudit/internal/standards"
)

// ReportType classifies what kind of Dialux export was analyzed.
type ReportType string

const (
	ReportLuminaireSchedule   ReportType = "luminaire_schedule"
	ReportLightingCalculation ReportType = "lighting_calculation"
	ReportProjectReport       ReportType = "project_report"
	ReportComprehensive       ReportType = "comprehensive"
)

// IdentifyReportType inspects document text for report-kind keywords.
// First matching family wins.
func IdentifyReportType(text string) ReportType {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "luminaire", "fixture", "schedule"):
		return ReportLuminaireSchedule
	case containsAny(lower, "calculation", "lighting calculation", "illuminance"):
		return ReportLightingCalculation
	case containsAny(lower, "project", "report", "summary"):
		return ReportProjectReport
	}
	return ReportComprehensive
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Room is an extracted room with its compliance verdicts attached.
type Room struct {
	facts.RoomRecord
	Compliance     []standards.ComplianceResult `json:"compliance_results"`
	ComplianceRate float64                      `json:"compliance_rate"`
}

// Stats aggregates parameter means across rooms that carry the parameter.
type Stats struct {
	IlluminanceAvg  float64 `json:"illuminance_avg"`
	UniformityAvg   float64 `json:"uniformity_avg"`
	UGRAvg          float64 `json:"ugr_avg"`
	PowerDensityAvg float64 `json:"power_density_avg"`
	ComplianceRate  float64 `json:"compliance_rate"`
	DataQuality     float64 `json:"data_quality"`
}

// Report is the top-level result of one analysis run.
type Report struct {
	ProjectName      string                  `json:"project_name"`
	SourceFile       string                  `json:"source_file"`
	Mode             constants.AnalysisMode  `json:"analysis_mode"`
	ReportType       ReportType              `json:"report_type"`
	Standard         standards.StandardType  `json:"standard"`
	ExtractionMethod string                  `json:"extraction_method"`
	ExtractionScore  float64                 `json:"extraction_score"`
	Confidence       float64                 `json:"confidence"`
	Metadata         *llm.ProjectMetadata    `json:"project_metadata,omitempty"`
	Companies        *llm.CompanyInfo        `json:"company_info,omitempty"`
	Luminaires       []llm.LuminaireDetail   `json:"luminaire_details,omitempty"`
	Rooms            []Room                  `json:"rooms"`
	TotalArea        float64                 `json:"total_area"`
	TotalRooms       int                     `json:"total_rooms"`
	Stats            Stats                   `json:"statistics"`
	Recommendations  []string                `json:"recommendations"`
	CriticalIssues   []string                `json:"critical_issues"`
	ProcessedAt      time.Time               `json:"processed_at"`
	Duration         time.Duration           `json:"duration"`
}

// computeStats averages the parameters each room actually carries. Rooms
// missing a parameter do not drag its mean toward zero.
func computeStats(rooms []Room) Stats {
	if len(rooms) == 0 {
		return Stats{}
	}

	var s Stats
	mean := func(pick func(Room) *float64) float64 {
		sum, n := 0.0, 0
		for _, r := range rooms {
			if v := pick(r); v != nil {
				sum += *v
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return sum / float64(n)
	}

	s.IlluminanceAvg = mean(func(r Room) *float64 { return r.IlluminanceAvg })
	s.UniformityAvg = mean(func(r Room) *float64 { return r.Uniformity })
	s.UGRAvg = mean(func(r Room) *float64 { return r.UGR })
	s.PowerDensityAvg = mean(func(r Room) *float64 { return r.PowerDensity })

	var rate, quality float64
	for _, r := range rooms {
		rate += r.ComplianceRate
		quality += r.DataCompleteness
	}
	s.ComplianceRate = rate / float64(len(rooms))
	s.DataQuality = quality / float64(len(rooms))
	return s
}
