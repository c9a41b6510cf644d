package llm

import "context"

// ProjectMetadata is the project-level portion of a structured extraction.
type ProjectMetadata struct {
	ProjectName     string   `json:"project_name,omitempty"`
	ProjectLocation string   `json:"project_location,omitempty"`
	ProjectDate     string   `json:"project_date,omitempty"`
	ProjectType     string   `json:"project_type,omitempty"`
	BuildingType    string   `json:"building_type,omitempty"`
	TotalArea       *float64 `json:"total_area,omitempty"`
	TotalRooms      *int     `json:"total_rooms,omitempty"`
}

// CompanyInfo holds every company role that shows up in lighting reports.
type CompanyInfo struct {
	ProjectCompany       string `json:"project_company,omitempty"`
	LuminaireManufacturer string `json:"luminaire_manufacturer,omitempty"`
	DriverCircuitCompany string `json:"driver_circuit_company,omitempty"`
	ConsultantCompany    string `json:"consultant_company,omitempty"`
	InstallerCompany     string `json:"installer_company,omitempty"`
}

// LuminaireDetail is one fixture specification.
type LuminaireDetail struct {
	LuminaireModel   string   `json:"luminaire_model,omitempty"`
	LuminaireType    string   `json:"luminaire_type,omitempty"`
	DriverType       string   `json:"driver_type,omitempty"`
	DriverModel      string   `json:"driver_model,omitempty"`
	PowerConsumption *float64 `json:"power_consumption,omitempty"`
	LuminousFlux     *float64 `json:"luminous_flux,omitempty"`
	ColorTemperature *float64 `json:"color_temperature,omitempty"`
	CRI              *float64 `json:"cri,omitempty"`
	BeamAngle        *float64 `json:"beam_angle,omitempty"`
}

// RoomDetail is one room as the model reports it.
type RoomDetail struct {
	RoomName         string   `json:"room_name"`
	RoomType         string   `json:"room_type"`
	Area             float64  `json:"area"`
	IlluminanceAvg   *float64 `json:"illuminance_avg,omitempty"`
	IlluminanceMin   *float64 `json:"illuminance_min,omitempty"`
	IlluminanceMax   *float64 `json:"illuminance_max,omitempty"`
	Uniformity       *float64 `json:"uniformity,omitempty"`
	UGR              *float64 `json:"ugr,omitempty"`
	PowerDensity     *float64 `json:"power_density,omitempty"`
	LuminaireCount   *int     `json:"luminaire_count,omitempty"`
	LuminaireSpacing *float64 `json:"luminaire_spacing,omitempty"`
}

// StructuredExtraction is the normalized shape we want from the LLM.
type StructuredExtraction struct {
	ProjectMetadata  ProjectMetadata   `json:"project_metadata"`
	CompanyInfo      CompanyInfo       `json:"company_info"`
	LuminaireDetails []LuminaireDetail `json:"luminaire_details,omitempty"`
	RoomDetails      []RoomDetail      `json:"room_details,omitempty"`
	Confidence       float64           `json:"confidence,omitempty"`
}

// ExcerptLimit bounds the text sent to the model. Dialux reports front-load
// their summary pages, so the prefix carries most of the signal.
const ExcerptLimit = 8000

type ExtractRequest struct {
	Text         string // full document text; the client sends only the excerpt
	FilenameHint string
}

// Excerpt returns the bounded document prefix.
func (r ExtractRequest) Excerpt() string {
	if len(r.Text) > ExcerptLimit {
		return r.Text[:ExcerptLimit]
	}
	return r.Text
}

// MetadataExtractor is the interface the analyzers depend on.
type MetadataExtractor interface {
	// ExtractStructured performs the full structured extraction. A transport
	// or JSON failure is a hard error.
	ExtractStructured(ctx context.Context, req ExtractRequest) (StructuredExtraction, []byte /*rawJSON*/, error)
	// ExtractCompanies runs the short company-name-only prompt.
	ExtractCompanies(ctx context.Context, req ExtractRequest) (CompanyInfo, error)
}
