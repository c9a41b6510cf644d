package facts

import (
	"regexp"
	"strconv"

	"github.com/luxaudit/luxaudit/constants"
)

// patternFamily is an ordered list of regex alternatives for one parameter.
// The first pattern whose first plausible match parses wins; later
// alternatives are fallback only, never merged.
type patternFamily struct {
	param    constants.Parameter
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// Pattern order matters. The more anchored forms (keyword before value) come
// first; bare number+unit forms are last-resort.
var patternFamilies = []patternFamily{
	{constants.ParamIlluminanceAvg, compileAll(
		`(?:average|avg|mean|e\s*avg|em)[:\s]*(\d+(?:\.\d+)?)\s*(?:lux|lx)`,
		`(\d+(?:\.\d+)?)\s*(?:lux|lx)\s*(?:average|avg|mean)`,
		`illuminance[:\s]*(\d+(?:\.\d+)?)\s*(?:lux|lx)`,
		`e[:\s]*(\d+(?:\.\d+)?)\s*(?:lux|lx)`,
		`(\d+(?:\.\d+)?)\s*(?:lux|lx)`,
	)},
	{constants.ParamIlluminanceMin, compileAll(
		`(?:minimum|min|e\s*min)[:\s]*(\d+(?:\.\d+)?)\s*(?:lux|lx)`,
		`(\d+(?:\.\d+)?)\s*(?:lux|lx)\s*(?:minimum|min)`,
		`(\d+(?:\.\d+)?)\s*(?:lux|lx)\s*\(min\)`,
	)},
	{constants.ParamIlluminanceMax, compileAll(
		`(?:maximum|max|e\s*max)[:\s]*(\d+(?:\.\d+)?)\s*(?:lux|lx)`,
		`(\d+(?:\.\d+)?)\s*(?:lux|lx)\s*(?:maximum|max)`,
		`(\d+(?:\.\d+)?)\s*(?:lux|lx)\s*\(max\)`,
	)},
	{constants.ParamUniformity, compileAll(
		`(?:uniformity|uniform|u0)[:\s]*(\d+(?:\.\d+)?)`,
		`(\d+(?:\.\d+)?)\s*(?:uniformity|uniform)`,
		`(\d+(?:\.\d+)?)\s*\(uniformity\)`,
		`u0[:\s]*(\d+(?:\.\d+)?)`,
	)},
	{constants.ParamUGR, compileAll(
		`ugr[:\s]*(\d+(?:\.\d+)?)`,
		`unified glare rating[:\s]*(\d+(?:\.\d+)?)`,
		`glare[:\s]*(\d+(?:\.\d+)?)`,
		`(\d+(?:\.\d+)?)\s*(?:ugr|glare)`,
	)},
	{constants.ParamPowerDensity, compileAll(
		`(\d+(?:\.\d+)?)\s*(?:w/m²|watt/m²|w/m2)`,
		`power density[:\s]*(\d+(?:\.\d+)?)`,
		`lighting power density[:\s]*(\d+(?:\.\d+)?)`,
	)},
	{constants.ParamColorTemperature, compileAll(
		`(\d+(?:\.\d+)?)\s*(?:k|kelvin)\b`,
		`color temperature[:\s]*(\d+(?:\.\d+)?)`,
		`correlated color temperature[:\s]*(\d+(?:\.\d+)?)`,
	)},
	{constants.ParamCRI, compileAll(
		`cri[:\s]*(\d+(?:\.\d+)?)`,
		`color rendering index[:\s]*(\d+(?:\.\d+)?)`,
		`ra[:\s]*(\d+(?:\.\d+)?)`,
		`(\d+(?:\.\d+)?)\s*(?:cri|ra)\b`,
	)},
	{constants.ParamLuminousEfficacy, compileAll(
		`(\d+(?:\.\d+)?)\s*(?:lm/w|lumen/watt)`,
		`luminous efficacy[:\s]*(\d+(?:\.\d+)?)`,
		`efficacy[:\s]*(\d+(?:\.\d+)?)`,
	)},
	{constants.ParamArea, compileAll(
		`(\d+(?:\.\d+)?)\s*(?:m²|m2|square meter)`,
		`area[:\s]*(\d+(?:\.\d+)?)`,
		`surface[:\s]*(\d+(?:\.\d+)?)`,
	)},
	{constants.ParamMountingHeight, compileAll(
		`mounting[:\s]*(\d+(?:\.\d+)?)`,
		`height[:\s]*(\d+(?:\.\d+)?)`,
		`(\d+(?:\.\d+)?)\s*(?:m|meter)\b`,
	)},
}

// extractParams runs every pattern family over one text segment. A family
// contributes at most one value: the first plausible parse in pattern order.
// Parse failures and implausible values skip that match silently.
func extractParams(text string) map[constants.Parameter]float64 {
	params := make(map[constants.Parameter]float64)
	for _, fam := range patternFamilies {
		if v, ok := firstPlausible(fam, text); ok {
			params[fam.param] = v
		}
	}
	return params
}

func firstPlausible(fam patternFamily, text string) (float64, bool) {
	for _, re := range fam.patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if !constants.Plausible(fam.param, v) {
				continue
			}
			return v, true
		}
	}
	return 0, false
}

// allMatches harvests every plausible value for one parameter across the
// whole text, in match order. Used by the fallback cascade.
func allMatches(param constants.Parameter, exprs []*regexp.Regexp, text string) []float64 {
	var out []float64
	for _, re := range exprs {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if !constants.Plausible(param, v) {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

func familyFor(p constants.Parameter) []*regexp.Regexp {
	for _, fam := range patternFamilies {
		if fam.param == p {
			return fam.patterns
		}
	}
	return nil
}
