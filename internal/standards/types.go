package standards

import (
	"strings"
	"time"

	"github.com/luxaudit/luxaudit/constants"
)

// StandardType identifies a lighting standard family.
type StandardType string

const (
	StandardEN12464 StandardType = "EN_12464_1"
	StandardBREEAM  StandardType = "BREEAM"
	StandardIES     StandardType = "IES"
	StandardCIE     StandardType = "CIE"
	StandardISO8995 StandardType = "ISO_8995"
	StandardCustom  StandardType = "CUSTOM"
)

// ParseStandard resolves user-supplied standard names. Empty input selects
// the EN 12464-1 default; unrecognized input is reported, not guessed.
func ParseStandard(input string) (StandardType, bool) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "", "EN_12464_1", "EN12464", "EN 12464-1":
		return StandardEN12464, true
	case "BREEAM":
		return StandardBREEAM, true
	case "IES":
		return StandardIES, true
	case "CIE":
		return StandardCIE, true
	case "ISO_8995", "ISO8995", "ISO 8995":
		return StandardISO8995, true
	case "CUSTOM":
		return StandardCustom, true
	}
	return StandardCustom, false
}

// Requirement is a single threshold harvested from a standards document.
type Requirement struct {
	Parameter   string             `json:"parameter"`
	Value       float64            `json:"value"`
	Unit        string             `json:"unit"`
	Condition   string             `json:"condition"` // minimum, maximum, average
	RoomType    constants.RoomType `json:"room_type"`
	Standard    StandardType       `json:"standard"`
	Description string             `json:"description,omitempty"`
}

// Document is a processed standards document.
type Document struct {
	Name         string        `json:"name"`
	Type         StandardType  `json:"standard_type"`
	Version      string        `json:"version"`
	Language     string        `json:"language"`
	Requirements []Requirement `json:"requirements"`
	TextContent  string        `json:"-"`
	ProcessedAt  time.Time     `json:"processed_at"`
}

// ComplianceResult reports one threshold check for one parameter.
type ComplianceResult struct {
	Parameter            string             `json:"parameter"`
	RequiredValue        float64            `json:"required_value"`
	ActualValue          float64            `json:"actual_value"`
	Unit                 string             `json:"unit"`
	IsCompliant          bool               `json:"is_compliant"`
	CompliancePercentage float64            `json:"compliance_percentage"`
	Deviation            float64            `json:"deviation"`
	RoomType             constants.RoomType `json:"room_type"`
	Standard             StandardType       `json:"standard"`
	Notes                string             `json:"notes,omitempty"`
}

// ParameterUnit returns the reporting unit for a compliance parameter.
func ParameterUnit(parameter string) string {
	switch parameter {
	case "illuminance":
		return "lux"
	case "power_density":
		return "W/m²"
	case "color_temperature":
		return "K"
	default:
		return ""
	}
}
