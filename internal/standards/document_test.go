package standards

import (
	"strings"
	"testing"
)

func TestIdentifyStandard(t *testing.T) {
	cases := []struct {
		text     string
		filename string
		want     StandardType
	}{
		{"This document covers EN 12464-1 indoor workplaces", "doc.pdf", StandardEN12464},
		{"", "en12464-1_2021.pdf", StandardEN12464},
		{"BREEAM assessment criteria", "doc.pdf", StandardBREEAM},
		{"Building Research Establishment method", "doc.pdf", StandardBREEAM},
		{"Illuminating Engineering Society handbook", "doc.pdf", StandardIES},
		{"Commission Internationale de l'Eclairage", "doc.pdf", StandardCIE},
		{"", "iso8995_requirements.pdf", StandardISO8995},
		{"some unrelated guidance text", "notes.pdf", StandardCustom},
	}
	for _, tc := range cases {
		if got := IdentifyStandard(tc.text, tc.filename); got != tc.want {
			t.Errorf("IdentifyStandard(%q, %q) = %s, want %s", tc.text, tc.filename, got, tc.want)
		}
	}
}

func TestExtractVersion(t *testing.T) {
	if got := extractVersion("Standard version 2021 applies"); got != "2021" {
		t.Errorf("version = %q, want 2021", got)
	}
	if got := extractVersion("revision v3.1 of the guidance"); got != "3.1" {
		t.Errorf("version = %q, want 3.1", got)
	}
	if got := extractVersion("no numbers of note here"); got != "Unknown" {
		t.Errorf("version = %q, want Unknown", got)
	}
}

func TestConditionFromContext(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"maintained illuminance of at least 500 lux", "minimum"},
		{"UGR shall not exceed the maximum 19", "maximum"},
		{"average value of 500 lux across the task area", "average"},
		{"illuminance 500 lux", "minimum"},
	}
	for _, tc := range cases {
		i := strings.Index(tc.text, "500")
		if i < 0 {
			i = strings.Index(tc.text, "19")
		}
		got := conditionFromContext(tc.text, i, i+3)
		if got != tc.want {
			t.Errorf("conditionFromContext(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestHarvestRequirements_IlluminanceMinimum(t *testing.T) {
	text := "Office areas require a minimum illuminance of 500 lux for task work."
	reqs := harvestRequirements(text, StandardEN12464)

	var found bool
	for _, r := range reqs {
		if r.Parameter == "illuminance" && r.Value == 500 {
			found = true
			if r.Condition != "minimum" {
				t.Errorf("condition = %q, want minimum", r.Condition)
			}
			if r.Unit != "lux" {
				t.Errorf("unit = %q, want lux", r.Unit)
			}
			if r.Standard != StandardEN12464 {
				t.Errorf("standard = %s, want %s", r.Standard, StandardEN12464)
			}
		}
	}
	if !found {
		t.Fatal("no illuminance requirement harvested")
	}
}
