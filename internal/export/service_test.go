package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/luxaudit/luxaudit/internal/analyze"
	"github.com/luxaudit/luxaudit/internal/facts"
	"github.com/luxaudit/luxaudit/internal/tables"
)

func fp(v float64) *float64 { return &v }

func sampleReport() *analyze.Report {
	return &analyze.Report{
		ProjectName: "Riverside Tower",
		SourceFile:  "/data/riverside.pdf",
		TotalRooms:  2,
		TotalArea:   40.7,
		Rooms: []analyze.Room{
			{RoomRecord: facts.RoomRecord{Name: "Office 1", Type: "office", Area: 25.5, IlluminanceAvg: fp(500)}},
			{RoomRecord: facts.RoomRecord{Name: "Corridor", Type: "corridor", Area: 15.2}},
		},
	}
}

func TestReportCSV(t *testing.T) {
	data, err := ReportCSV(sampleReport())
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header plus 2 rooms", len(records))
	}
	if records[0][0] != "room_name" {
		t.Errorf("header starts with %q, want room_name", records[0][0])
	}
	if records[1][0] != "Office 1" || records[1][3] != "500.0" {
		t.Errorf("row 1 = %v", records[1])
	}
	// Missing optional values render as empty cells, not zeros.
	if records[2][3] != "" {
		t.Errorf("corridor illuminance cell = %q, want empty", records[2][3])
	}
}

func TestReportJSON_RoundTrips(t *testing.T) {
	data, err := ReportJSON(sampleReport())
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded analyze.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ProjectName != "Riverside Tower" || len(decoded.Rooms) != 2 {
		t.Errorf("decoded = %q with %d rooms", decoded.ProjectName, len(decoded.Rooms))
	}
}

func TestSummary(t *testing.T) {
	report := sampleReport()
	report.CriticalIssues = []string{"CRITICAL: Office 1 severely underlit"}
	out := Summary(report)

	for _, want := range []string{"Riverside Tower", "Office 1", "Corridor", "severely underlit"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestReportXLSX(t *testing.T) {
	data, err := ReportXLSX(sampleReport())
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	// XLSX is a zip container.
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Error("output is not a zip archive")
	}
}

func TestTableQualityCSV(t *testing.T) {
	cands := []tables.Candidate{
		tables.NewCandidate([][]string{{"Area", "Lux"}, {"25.5", "500"}}, 1, tables.MethodStream),
	}
	data, err := TableQualityCSV(cands)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header plus 1 candidate", len(records))
	}
	if records[1][2] != tables.MethodStream {
		t.Errorf("method column = %q, want %s", records[1][2], tables.MethodStream)
	}
}
