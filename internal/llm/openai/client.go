package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/luxaudit/luxaudit/internal/llm"
)

// ExtractStructured implements llm.MetadataExtractor using text-only
// chat/completions. Transport failures and unparseable JSON are hard errors;
// the enhanced analysis mode has no fallback.
func (c *Client) ExtractStructured(ctx context.Context, req llm.ExtractRequest) (llm.StructuredExtraction, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.Text),
		"excerpt_len", len(req.Excerpt()),
	)

	schema := llm.BuildExtractionJSONSchema()
	sys, user := llm.BuildStructuredPrompt(req)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": sys},
			{"role": "user", "content": user},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	content, err := c.chat(ctx, body)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return llm.StructuredExtraction{}, nil, err
	}

	cleaned, dropped, err := llm.NormalizeAndSanitizeJSON([]byte(content), c.log)
	if err != nil {
		c.log.Error("llm.extract.parse_error",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return llm.StructuredExtraction{}, []byte(content), fmt.Errorf("parse structured response: %w", err)
	}
	if len(dropped) > 0 {
		c.log.Warn("llm.extract.sanitized", "req_id", rid, "dropped", dropped)
	}

	if err := c.validateResponse(schema, cleaned); err != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return llm.StructuredExtraction{}, cleaned, fmt.Errorf("schema validation failed: %w", err)
	}

	var out llm.StructuredExtraction
	if err := json.Unmarshal(cleaned, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return llm.StructuredExtraction{}, cleaned, fmt.Errorf("unmarshal extraction: %w", err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"project", out.ProjectMetadata.ProjectName,
		"rooms", len(out.RoomDetails),
		"luminaires", len(out.LuminaireDetails),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, cleaned, nil
}

// ExtractCompanies runs the short company prompt on the cheaper model. Errors
// here are soft for the caller (fast mode recovers to its regex heuristic).
func (c *Client) ExtractCompanies(ctx context.Context, req llm.ExtractRequest) (llm.CompanyInfo, error) {
	rid := uuid.New().String()
	start := time.Now()

	sys, user := llm.BuildCompanyPrompt(req)
	body := map[string]any{
		"model":           c.cfg.FastModel,
		"temperature":     c.cfg.Temperature,
		"max_tokens":      200,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": sys},
			{"role": "user", "content": user},
		},
	}

	content, err := c.chat(ctx, body)
	if err != nil {
		c.log.Warn("llm.companies.http_error",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return llm.CompanyInfo{}, err
	}

	raw := llm.StripCodeFences([]byte(content))
	var resp struct {
		ProjectName          string `json:"project_name"`
		ProjectCompany       string `json:"project_company"`
		LuminaireManufacturer string `json:"luminaire_manufacturer"`
		DriverCircuitCompany string `json:"driver_circuit_company"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.log.Warn("llm.companies.parse_error", "req_id", rid, "error", err)
		return llm.CompanyInfo{}, fmt.Errorf("parse company response: %w", err)
	}

	c.log.Info("llm.companies.ok",
		"req_id", rid,
		"manufacturer", resp.LuminaireManufacturer,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return llm.CompanyInfo{
		ProjectCompany:        resp.ProjectCompany,
		LuminaireManufacturer: resp.LuminaireManufacturer,
		DriverCircuitCompany:  resp.DriverCircuitCompany,
	}, nil
}

// validateResponse uses the validator compiled at construction, falling back
// to one-shot compilation if that failed.
func (c *Client) validateResponse(schema map[string]any, data []byte) error {
	if c.validator != nil {
		return c.validator.Validate(data)
	}
	return llm.ValidateJSONAgainstSchema(schema, data)
}

// chat posts one chat/completions request and returns the first choice's
// message content.
func (c *Client) chat(ctx context.Context, body map[string]any) (string, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		return "", fmt.Errorf("openai status %d: %w", status, err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
