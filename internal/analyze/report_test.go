package analyze

import (
	"testing"

	"github.com/luxaudit/luxaudit/internal/facts"
)

func TestIdentifyReportType(t *testing.T) {
	cases := []struct {
		text string
		want ReportType
	}{
		{"Luminaire schedule for building A", ReportLuminaireSchedule},
		{"Fixture list with wattages", ReportLuminaireSchedule},
		{"Illuminance calculation results", ReportLightingCalculation},
		{"Annual energy summary", ReportProjectReport},
		{"nothing identifiable", ReportComprehensive},
	}
	for _, tc := range cases {
		if got := IdentifyReportType(tc.text); got != tc.want {
			t.Errorf("IdentifyReportType(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func fp(v float64) *float64 { return &v }

func TestComputeStats_MissingParamsExcludedFromMean(t *testing.T) {
	rooms := []Room{
		{RoomRecord: facts.RoomRecord{IlluminanceAvg: fp(500), Uniformity: fp(0.6), DataCompleteness: 0.5}, ComplianceRate: 1.0},
		{RoomRecord: facts.RoomRecord{IlluminanceAvg: fp(300), DataCompleteness: 0.25}, ComplianceRate: 0.5},
		{RoomRecord: facts.RoomRecord{DataCompleteness: 0.25}, ComplianceRate: 0},
	}
	s := computeStats(rooms)

	if s.IlluminanceAvg != 400 {
		t.Errorf("illuminance mean = %f, want 400 (two carriers)", s.IlluminanceAvg)
	}
	if s.UniformityAvg != 0.6 {
		t.Errorf("uniformity mean = %f, want 0.6 (single carrier)", s.UniformityAvg)
	}
	if s.UGRAvg != 0 {
		t.Errorf("ugr mean = %f, want 0 (no carriers)", s.UGRAvg)
	}
	if s.ComplianceRate != 0.5 {
		t.Errorf("compliance rate = %f, want 0.5 over all rooms", s.ComplianceRate)
	}
	if want := (0.5 + 0.25 + 0.25) / 3; s.DataQuality != want {
		t.Errorf("data quality = %f, want %f", s.DataQuality, want)
	}
}

func TestComputeStats_NoRooms(t *testing.T) {
	s := computeStats(nil)
	if s != (Stats{}) {
		t.Errorf("stats for no rooms = %+v, want zero value", s)
	}
}
