package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"
)

// StripCodeFences removes a markdown ```json fence wrapper when the model
// ignores the bare-JSON instruction.
func StripCodeFences(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}

// NormalizeAndSanitizeJSON
// - Strips markdown fences
// - Drops null/empty optional strings in nested objects
// - Removes unknown top-level keys (strict additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw = StripCodeFences(raw)

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)

	allowed := map[string]struct{}{
		"project_metadata": {}, "company_info": {}, "luminaire_details": {},
		"room_details": {}, "confidence": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	for _, objKey := range []string{"project_metadata", "company_info"} {
		obj, ok := m[objKey].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range maps.Clone(obj) {
			switch t := v.(type) {
			case nil:
				delete(obj, k)
				dropped = append(dropped, objKey+"."+k+"(null)")
			case string:
				s := strings.TrimSpace(t)
				if s == "" || strings.EqualFold(s, "null") {
					delete(obj, k)
					dropped = append(dropped, objKey+"."+k+"(empty)")
				} else {
					obj[k] = s
				}
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}
