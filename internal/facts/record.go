// Package facts extracts per-room photometric values from report text using
// layered regex extraction with a fallback cascade for degenerate layouts.
package facts

import (
	"github.com/luxaudit/luxaudit/constants"
)

// RoomRecord is one room's extracted values. Optional fields are nil when no
// pattern matched or every match failed plausibility checks.
type RoomRecord struct {
	Name string             `json:"room_name"`
	Type constants.RoomType `json:"room_type"`
	Area float64            `json:"area"`

	IlluminanceAvg   *float64 `json:"illuminance_avg,omitempty"`
	IlluminanceMin   *float64 `json:"illuminance_min,omitempty"`
	IlluminanceMax   *float64 `json:"illuminance_max,omitempty"`
	Uniformity       *float64 `json:"uniformity,omitempty"`
	UGR              *float64 `json:"ugr,omitempty"`
	PowerDensity     *float64 `json:"power_density,omitempty"`
	ColorTemperature *float64 `json:"color_temperature,omitempty"`
	CRI              *float64 `json:"cri,omitempty"`
	LuminousEfficacy *float64 `json:"luminous_efficacy,omitempty"`
	MountingHeight   *float64 `json:"mounting_height,omitempty"`

	DataCompleteness float64 `json:"data_completeness"`
	ConfidenceScore  float64 `json:"confidence_score"`
}

// Completeness is the fraction of the eight core parameters present.
func (r *RoomRecord) Completeness() float64 {
	found := 0
	for _, p := range []*float64{
		r.IlluminanceAvg, r.Uniformity, r.UGR, r.PowerDensity,
		r.ColorTemperature, r.CRI, r.LuminousEfficacy,
	} {
		if p != nil {
			found++
		}
	}
	if r.Area > 0 {
		found++
	}
	return float64(found) / 8.0
}

// Values returns the non-nil parameters keyed by canonical name, the shape
// the compliance checker consumes.
func (r *RoomRecord) Values() map[constants.Parameter]float64 {
	out := make(map[constants.Parameter]float64)
	put := func(p constants.Parameter, v *float64) {
		if v != nil {
			out[p] = *v
		}
	}
	put(constants.ParamIlluminanceAvg, r.IlluminanceAvg)
	put(constants.ParamIlluminanceMin, r.IlluminanceMin)
	put(constants.ParamIlluminanceMax, r.IlluminanceMax)
	put(constants.ParamUniformity, r.Uniformity)
	put(constants.ParamUGR, r.UGR)
	put(constants.ParamPowerDensity, r.PowerDensity)
	put(constants.ParamColorTemperature, r.ColorTemperature)
	put(constants.ParamCRI, r.CRI)
	put(constants.ParamLuminousEfficacy, r.LuminousEfficacy)
	if r.Area > 0 {
		out[constants.ParamArea] = r.Area
	}
	return out
}

func fptr(v float64) *float64 { return &v }
