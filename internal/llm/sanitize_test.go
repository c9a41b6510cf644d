package llm

import (
	"encoding/json"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  \n{\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := string(StripCodeFences([]byte(tc.in))); got != tc.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeAndSanitizeJSON_DropsUnknownTopLevelKeys(t *testing.T) {
	raw := []byte(`{"project_metadata":{"project_name":"Tower"},"reasoning":"because","confidence":0.9}`)
	out, dropped, err := NormalizeAndSanitizeJSON(raw, nil)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if _, ok := m["reasoning"]; ok {
		t.Error("unknown key reasoning survived sanitization")
	}
	if _, ok := m["project_metadata"]; !ok {
		t.Error("allowed key project_metadata was removed")
	}
	if len(dropped) != 1 || dropped[0] != "reasoning(unknown)" {
		t.Errorf("dropped = %v, want [reasoning(unknown)]", dropped)
	}
}

func TestNormalizeAndSanitizeJSON_CleansNestedStrings(t *testing.T) {
	raw := []byte(`{"project_metadata":{"project_name":"  Tower  ","location":null,"date":"","client":"null"}}`)
	out, dropped, err := NormalizeAndSanitizeJSON(raw, nil)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}

	var m map[string]map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	meta := m["project_metadata"]
	if got := meta["project_name"]; got != "Tower" {
		t.Errorf("project_name = %v, want trimmed Tower", got)
	}
	for _, k := range []string{"location", "date", "client"} {
		if _, ok := meta[k]; ok {
			t.Errorf("key %q should have been dropped", k)
		}
	}
	if len(dropped) != 3 {
		t.Errorf("dropped %d entries, want 3: %v", len(dropped), dropped)
	}
}

func TestNormalizeAndSanitizeJSON_Fenced(t *testing.T) {
	raw := []byte("```json\n{\"confidence\": 0.8}\n```")
	out, _, err := NormalizeAndSanitizeJSON(raw, nil)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if m["confidence"] != 0.8 {
		t.Errorf("confidence = %v, want 0.8", m["confidence"])
	}
}

func TestNormalizeAndSanitizeJSON_InvalidJSON(t *testing.T) {
	if _, _, err := NormalizeAndSanitizeJSON([]byte("not json at all"), nil); err == nil {
		t.Fatal("expected decode error")
	}
}
