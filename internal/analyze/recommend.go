package analyze

import "fmt"

// Recommendations generates threshold-driven remediation text per room plus
// project-level advice. Severity tiers follow how far a value sits from its
// requirement.
func Recommendations(report *Report) []string {
	var recs []string

	for _, room := range report.Rooms {
		for _, res := range room.Compliance {
			switch res.Parameter {
			case "illuminance":
				if !res.IsCompliant {
					switch {
					case res.ActualValue < res.RequiredValue*0.5:
						recs = append(recs, fmt.Sprintf(
							"CRITICAL: increase illuminance in %q by %.0f lux (current %.0f, required %.0f); add luminaires or increase output",
							room.Name, res.Deviation, res.ActualValue, res.RequiredValue))
					case res.ActualValue < res.RequiredValue*0.8:
						recs = append(recs, fmt.Sprintf(
							"HIGH: increase illuminance in %q by %.0f lux (current %.0f, required %.0f); adjust spacing or upgrade fixtures",
							room.Name, res.Deviation, res.ActualValue, res.RequiredValue))
					default:
						recs = append(recs, fmt.Sprintf(
							"MODERATE: increase illuminance in %q by %.0f lux (current %.0f, required %.0f)",
							room.Name, res.Deviation, res.ActualValue, res.RequiredValue))
					}
				} else if res.ActualValue > res.RequiredValue*1.5 {
					recs = append(recs, fmt.Sprintf(
						"ENERGY: reduce illuminance in %q by %.0f lux (current %.0f, required %.0f); consider dimming",
						room.Name, res.ActualValue-res.RequiredValue, res.ActualValue, res.RequiredValue))
				}
			case "uniformity":
				if !res.IsCompliant {
					switch {
					case res.ActualValue < 0.3:
						recs = append(recs, fmt.Sprintf(
							"CRITICAL: improve uniformity in %q (current %.2f, required %.2f); reduce spacing or add diffusers",
							room.Name, res.ActualValue, res.RequiredValue))
					case res.ActualValue < 0.5:
						recs = append(recs, fmt.Sprintf(
							"HIGH: improve uniformity in %q (current %.2f, required %.2f); adjust light distribution",
							room.Name, res.ActualValue, res.RequiredValue))
					default:
						recs = append(recs, fmt.Sprintf(
							"MODERATE: improve uniformity in %q (current %.2f, required %.2f)",
							room.Name, res.ActualValue, res.RequiredValue))
					}
				}
			case "ugr":
				if !res.IsCompliant {
					switch {
					case res.ActualValue > 25:
						recs = append(recs, fmt.Sprintf(
							"CRITICAL: reduce glare in %q by %.1f UGR (current %.1f, max %.1f); install louvres or low-glare luminaires",
							room.Name, res.Deviation, res.ActualValue, res.RequiredValue))
					case res.ActualValue > 22:
						recs = append(recs, fmt.Sprintf(
							"HIGH: reduce glare in %q by %.1f UGR (current %.1f, max %.1f); add glare control or adjust mounting height",
							room.Name, res.Deviation, res.ActualValue, res.RequiredValue))
					default:
						recs = append(recs, fmt.Sprintf(
							"MODERATE: reduce glare in %q by %.1f UGR (current %.1f, max %.1f)",
							room.Name, res.Deviation, res.ActualValue, res.RequiredValue))
					}
				}
			case "power_density":
				if !res.IsCompliant {
					recs = append(recs, fmt.Sprintf(
						"POWER: reduce power density in %q by %.1f W/m² (current %.1f, max %.1f); consider LED retrofit or dimming controls",
						room.Name, res.Deviation, res.ActualValue, res.RequiredValue))
				} else if res.ActualValue > res.RequiredValue*0.8 {
					recs = append(recs, fmt.Sprintf(
						"POWER: %q is near its power density limit (%.1f of %.1f W/m²); smart controls could recover headroom",
						room.Name, res.ActualValue, res.RequiredValue))
				}
			}
		}
	}

	if report.TotalArea > 0 {
		recs = append(recs, fmt.Sprintf(
			"PROJECT: %.1f m² across %d rooms; centralized lighting control would simplify energy management",
			report.TotalArea, report.TotalRooms))
	}
	if report.Companies != nil && report.Companies.LuminaireManufacturer != "" {
		recs = append(recs, fmt.Sprintf(
			"LUMINAIRES: %s fixtures in use; verify control-system compatibility and warranty terms",
			report.Companies.LuminaireManufacturer))
	}
	if report.Companies != nil && report.Companies.DriverCircuitCompany != "" {
		recs = append(recs, fmt.Sprintf(
			"DRIVERS: circuits by %s; confirm dimming compatibility (DALI-2 or 0-10V)",
			report.Companies.DriverCircuitCompany))
	}
	recs = append(recs,
		"MAINTENANCE: schedule lamp replacement, cleaning and performance checks to hold compliance over time",
		"CONTROLS: occupancy sensors and daylight harvesting can cut energy use without losing compliance")

	return recs
}

// CriticalIssues flags the findings that need action before anything else.
func CriticalIssues(report *Report) []string {
	var issues []string

	for _, room := range report.Rooms {
		for _, res := range room.Compliance {
			if res.IsCompliant {
				continue
			}
			switch res.Parameter {
			case "illuminance":
				ratio := 0.0
				if res.RequiredValue > 0 {
					ratio = res.ActualValue / res.RequiredValue
				}
				switch {
				case ratio < 0.3:
					issues = append(issues, fmt.Sprintf(
						"SEVERE: illuminance in %q is critically low at %.0f lux (%.0f%% of required %.0f)",
						room.Name, res.ActualValue, ratio*100, res.RequiredValue))
				case ratio < 0.5:
					issues = append(issues, fmt.Sprintf(
						"CRITICAL: illuminance in %q is severely inadequate at %.0f lux (%.0f%% of required %.0f)",
						room.Name, res.ActualValue, ratio*100, res.RequiredValue))
				case ratio < 0.7:
					issues = append(issues, fmt.Sprintf(
						"HIGH: illuminance in %q is well below requirement (%.0f vs %.0f lux)",
						room.Name, res.ActualValue, res.RequiredValue))
				}
			case "uniformity":
				switch {
				case res.ActualValue < 0.2:
					issues = append(issues, fmt.Sprintf(
						"SEVERE: extremely poor uniformity in %q (%.2f)", room.Name, res.ActualValue))
				case res.ActualValue < 0.3:
					issues = append(issues, fmt.Sprintf(
						"CRITICAL: very poor uniformity in %q (%.2f)", room.Name, res.ActualValue))
				case res.ActualValue < 0.4:
					issues = append(issues, fmt.Sprintf(
						"HIGH: poor uniformity in %q (%.2f)", room.Name, res.ActualValue))
				}
			case "ugr":
				switch {
				case res.ActualValue > 30:
					issues = append(issues, fmt.Sprintf(
						"SEVERE: extreme glare in %q (UGR %.1f); immediate glare control required",
						room.Name, res.ActualValue))
				case res.ActualValue > 25:
					issues = append(issues, fmt.Sprintf(
						"CRITICAL: excessive glare in %q (UGR %.1f)", room.Name, res.ActualValue))
				case res.ActualValue > 22:
					issues = append(issues, fmt.Sprintf(
						"HIGH: high glare in %q (UGR %.1f)", room.Name, res.ActualValue))
				}
			case "power_density":
				switch {
				case res.ActualValue > res.RequiredValue*1.5:
					issues = append(issues, fmt.Sprintf(
						"ENERGY CRITICAL: power density in %q is %.1f W/m², %.0f%% of the %.1f limit",
						room.Name, res.ActualValue, res.ActualValue/res.RequiredValue*100, res.RequiredValue))
				case res.ActualValue > res.RequiredValue*1.2:
					issues = append(issues, fmt.Sprintf(
						"ENERGY HIGH: power density in %q exceeds its limit by %.1f W/m²",
						room.Name, res.ActualValue-res.RequiredValue))
				}
			}
		}
	}

	switch {
	case report.Stats.ComplianceRate < 0.3:
		issues = append(issues, fmt.Sprintf(
			"PROJECT CRITICAL: overall compliance rate is %.1f%%; major redesign required",
			report.Stats.ComplianceRate*100))
	case report.Stats.ComplianceRate < 0.5:
		issues = append(issues, fmt.Sprintf(
			"PROJECT HIGH: overall compliance rate is %.1f%%; improvements needed across multiple parameters",
			report.Stats.ComplianceRate*100))
	}
	if report.Stats.DataQuality < 0.5 {
		issues = append(issues, fmt.Sprintf(
			"DATA QUALITY: extraction confidence is low (%.1f%%); verify parameters manually",
			report.Stats.DataQuality*100))
	}
	if report.TotalArea <= 1.0 {
		issues = append(issues, fmt.Sprintf(
			"AREA: total area of %.1f m² looks wrong; room dimension extraction may have failed",
			report.TotalArea))
	}

	return issues
}
