package standards

import (
	"testing"

	"github.com/luxaudit/luxaudit/constants"
)

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	return NewChecker(NewDatabase("", nil), nil)
}

func findResult(results []ComplianceResult, param, notes string) *ComplianceResult {
	for i := range results {
		if results[i].Parameter == param && results[i].Notes == notes {
			return &results[i]
		}
	}
	return nil
}

func TestCheck_IlluminanceShortfall(t *testing.T) {
	checker := newTestChecker(t)
	results := checker.Check(map[string]float64{"illuminance": 300}, constants.Office, StandardEN12464)

	r := findResult(results, "illuminance", "Minimum requirement check")
	if r == nil {
		t.Fatal("no illuminance minimum result")
	}
	if r.IsCompliant {
		t.Error("300 lux against a 500 lux minimum must not be compliant")
	}
	if r.Deviation != 200 {
		t.Errorf("deviation = %f, want 200", r.Deviation)
	}
	if r.CompliancePercentage != 60 {
		t.Errorf("compliance percentage = %f, want 60", r.CompliancePercentage)
	}
	if r.Unit != "lux" {
		t.Errorf("unit = %q, want lux", r.Unit)
	}
}

func TestCheck_IlluminanceMet(t *testing.T) {
	checker := newTestChecker(t)
	results := checker.Check(map[string]float64{"illuminance": 600}, constants.Office, StandardEN12464)

	r := findResult(results, "illuminance", "Minimum requirement check")
	if r == nil {
		t.Fatal("no illuminance minimum result")
	}
	if !r.IsCompliant {
		t.Error("600 lux against a 500 lux minimum must be compliant")
	}
	if r.Deviation != -100 {
		t.Errorf("deviation = %f, want -100 (headroom)", r.Deviation)
	}
}

func TestCheck_UGRMaximum(t *testing.T) {
	checker := newTestChecker(t)
	results := checker.Check(map[string]float64{"ugr": 22}, constants.Office, StandardEN12464)

	r := findResult(results, "ugr", "Maximum requirement check")
	if r == nil {
		t.Fatal("no ugr maximum result")
	}
	if r.IsCompliant {
		t.Error("UGR 22 against a 19 maximum must not be compliant")
	}
	if r.Deviation != 3 {
		t.Errorf("deviation = %f, want 3", r.Deviation)
	}
}

func TestCheck_UnknownStandardYieldsEmptyList(t *testing.T) {
	checker := newTestChecker(t)
	results := checker.Check(map[string]float64{"illuminance": 500}, constants.Office, StandardType("NOT_A_STANDARD"))

	if results == nil {
		t.Fatal("results must be an empty list, not nil")
	}
	if len(results) != 0 {
		t.Errorf("got %d results for unknown standard, want 0", len(results))
	}
}

func TestCheck_UnknownRoomTypeFallsBackToOffice(t *testing.T) {
	checker := newTestChecker(t)
	direct := checker.Check(map[string]float64{"illuminance": 450}, constants.Office, StandardEN12464)
	fallback := checker.Check(map[string]float64{"illuminance": 450}, constants.RoomType("laboratory"), StandardEN12464)

	if len(fallback) != len(direct) {
		t.Fatalf("fallback produced %d results, office produced %d", len(fallback), len(direct))
	}
	r := findResult(fallback, "illuminance", "Minimum requirement check")
	if r == nil {
		t.Fatal("no illuminance result under fallback")
	}
	if r.RequiredValue != 500 {
		t.Errorf("required = %f, want the office minimum 500", r.RequiredValue)
	}
}

func TestCheck_AbsentParametersSkipped(t *testing.T) {
	checker := newTestChecker(t)
	results := checker.Check(map[string]float64{"uniformity": 0.7}, constants.Office, StandardEN12464)

	for _, r := range results {
		if r.Parameter != "uniformity" {
			t.Errorf("unexpected result for %q, only uniformity was supplied", r.Parameter)
		}
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestCheck_ColorTemperatureBand(t *testing.T) {
	checker := newTestChecker(t)
	results := checker.Check(map[string]float64{"color_temperature": 4000}, constants.Office, StandardEN12464)

	lo := findResult(results, "color_temperature", "Minimum requirement check")
	hi := findResult(results, "color_temperature", "Maximum requirement check")
	if lo == nil || hi == nil {
		t.Fatal("color temperature must be checked against both band edges")
	}
	if !lo.IsCompliant || !hi.IsCompliant {
		t.Error("4000 K is inside the 3000-6500 K band")
	}
}
