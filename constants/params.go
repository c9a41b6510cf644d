package constants

// Parameter is the canonical name of a photometric quantity extracted from
// lighting reports. Stable values (store these exact strings in exports and DB).
type Parameter string

const (
	ParamIlluminanceAvg   Parameter = "illuminance_avg"
	ParamIlluminanceMin   Parameter = "illuminance_min"
	ParamIlluminanceMax   Parameter = "illuminance_max"
	ParamUniformity       Parameter = "uniformity"
	ParamUGR              Parameter = "ugr"
	ParamPowerDensity     Parameter = "power_density"
	ParamColorTemperature Parameter = "color_temperature"
	ParamCRI              Parameter = "cri"
	ParamLuminousEfficacy Parameter = "luminous_efficacy"
	ParamArea             Parameter = "area"
	ParamMountingHeight   Parameter = "mounting_height"
)

// Range is an inclusive plausibility interval for an extracted value.
// Values outside the interval are discarded, never clamped.
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// PlausibleRanges filters obviously wrong regex captures, e.g. a page number
// matched as an illuminance value or a percentage matched as uniformity.
var PlausibleRanges = map[Parameter]Range{
	ParamIlluminanceAvg: {Min: 1, Max: 10000},
	ParamIlluminanceMin: {Min: 1, Max: 10000},
	ParamIlluminanceMax: {Min: 1, Max: 10000},
	ParamUniformity:     {Min: 0.01, Max: 1.0},
	ParamUGR:            {Min: 1, Max: 50},
}

// Plausible reports whether v is acceptable for the parameter. Parameters
// without a registered range accept any value.
func Plausible(p Parameter, v float64) bool {
	r, ok := PlausibleRanges[p]
	if !ok {
		return true
	}
	return r.Contains(v)
}
