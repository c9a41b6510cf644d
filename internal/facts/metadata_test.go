package facts

import (
	"strings"
	"testing"
)

func TestProjectName_Label(t *testing.T) {
	text := "Dialux evo 11\nProject: Riverside Office Tower\nDate: 2024-03-01"
	if got := ProjectName(text, "/tmp/report.pdf"); got != "Riverside Office Tower" {
		t.Errorf("project name = %q, want Riverside Office Tower", got)
	}
}

func TestProjectName_FilenameFallback(t *testing.T) {
	if got := ProjectName("no labels here", "/data/in/warehouse_2024.pdf"); got != "warehouse_2024" {
		t.Errorf("project name = %q, want warehouse_2024", got)
	}
}

func TestProjectName_OverlongLabelFallsBack(t *testing.T) {
	long := "Project: " + strings.Repeat("x", 130)
	if got := ProjectName(long, "/tmp/fallback.pdf"); got != "fallback" {
		t.Errorf("project name = %q, want fallback", got)
	}
}

func TestCompanyHeuristic_KnownBrand(t *testing.T) {
	text := "Luminaires supplied by PHILIPS Lighting BV"
	if got := CompanyHeuristic(text); got != "PHILIPS" {
		t.Errorf("company = %q, want PHILIPS", got)
	}
}

func TestCompanyHeuristic_Label(t *testing.T) {
	text := "Manufacturer: Nordlicht Leuchten\nModel: NL-500"
	if got := CompanyHeuristic(text); got != "Nordlicht Leuchten" {
		t.Errorf("company = %q, want Nordlicht Leuchten", got)
	}
}

func TestCompanyHeuristic_NoMatch(t *testing.T) {
	if got := CompanyHeuristic("nothing useful in this text"); got != "" {
		t.Errorf("company = %q, want empty", got)
	}
}
