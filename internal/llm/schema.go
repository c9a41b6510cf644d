package llm

// BuildExtractionJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the structured extraction shape.
func BuildExtractionJSONSchema() map[string]any {
	numberOrNull := func() map[string]any {
		return map[string]any{"type": []string{"number", "null"}}
	}
	stringOrNull := func() map[string]any {
		return map[string]any{"type": []string{"string", "null"}}
	}

	roomProps := map[string]any{
		"room_name":         map[string]any{"type": "string", "minLength": 1},
		"room_type":         map[string]any{"type": "string"},
		"area":              map[string]any{"type": "number", "minimum": 0.0},
		"illuminance_avg":   numberOrNull(),
		"illuminance_min":   numberOrNull(),
		"illuminance_max":   numberOrNull(),
		"uniformity":        numberOrNull(),
		"ugr":               numberOrNull(),
		"power_density":     numberOrNull(),
		"luminaire_count":   numberOrNull(),
		"luminaire_spacing": numberOrNull(),
	}

	luminaireProps := map[string]any{
		"luminaire_model":   stringOrNull(),
		"luminaire_type":    stringOrNull(),
		"driver_type":       stringOrNull(),
		"driver_model":      stringOrNull(),
		"power_consumption": numberOrNull(),
		"luminous_flux":     numberOrNull(),
		"color_temperature": numberOrNull(),
		"cri":               numberOrNull(),
		"beam_angle":        numberOrNull(),
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"project_metadata": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"project_name":     stringOrNull(),
					"project_location": stringOrNull(),
					"project_date":     stringOrNull(),
					"project_type":     stringOrNull(),
					"building_type":    stringOrNull(),
					"total_area":       numberOrNull(),
					"total_rooms":      numberOrNull(),
				},
			},
			"company_info": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"project_company":        stringOrNull(),
					"luminaire_manufacturer": stringOrNull(),
					"driver_circuit_company": stringOrNull(),
					"consultant_company":     stringOrNull(),
					"installer_company":      stringOrNull(),
				},
			},
			"luminaire_details": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           luminaireProps,
				},
			},
			"room_details": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           roomProps,
					"required":             []string{"room_name", "room_type", "area"},
				},
			},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"project_metadata", "company_info"},
	}
}

// BuildCompanyJSONSchema describes the short company-extraction response.
func BuildCompanyJSONSchema() map[string]any {
	stringOrNull := map[string]any{"type": []string{"string", "null"}}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"project_name":           stringOrNull,
			"project_company":        stringOrNull,
			"luminaire_manufacturer": stringOrNull,
			"driver_circuit_company": stringOrNull,
		},
	}
}
