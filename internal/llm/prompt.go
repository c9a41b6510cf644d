package llm

import "strings"

// BuildStructuredPrompt composes the full extraction prompt. The model must
// return bare JSON; fences are stripped defensively anyway.
func BuildStructuredPrompt(req ExtractRequest) (system, user string) {
	system = "You are an expert lighting engineer. Extract structured data from lighting reports and return valid JSON only."

	var b strings.Builder
	b.WriteString("Analyze this Dialux lighting report and return a JSON object matching the provided JSON Schema.\n\n")
	b.WriteString("Extract ALL numerical values as numbers, not text: ")
	b.WriteString("areas in m² as floats, illuminance in lux as floats, uniformity ratios as floats, ")
	b.WriteString("UGR as floats, power density in W/m² as floats.\n\n")
	if f := strings.TrimSpace(req.FilenameHint); f != "" {
		b.WriteString("Filename: ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString("\nText to analyze:\n")
	b.WriteString(req.Excerpt())
	b.WriteString("\n\nFocus on finding: room areas (critical), illuminance values, uniformity ratios, ")
	b.WriteString("UGR values, power density, company names, driver circuit information, luminaire specifications.\n")
	b.WriteString("Return ONLY the JSON object, no other text.")
	return system, b.String()
}

// BuildCompanyPrompt composes the short prompt used by fast mode: company
// names only, small response.
func BuildCompanyPrompt(req ExtractRequest) (system, user string) {
	system = "Extract company names from text. Return JSON only."

	var b strings.Builder
	b.WriteString("Extract ONLY company names from this lighting report text.\n\nText: ")
	b.WriteString(req.Excerpt())
	b.WriteString("\n\nReturn JSON with these fields (use null if not found):\n")
	b.WriteString(`{"project_name": null, "project_company": null, "luminaire_manufacturer": null, "driver_circuit_company": null}`)
	b.WriteString("\n\nLook for project/company names, luminaire manufacturers (like Philips, Osram), ")
	b.WriteString("driver circuit companies, and brand names. Return ONLY the JSON, no other text.")
	return system, b.String()
}
