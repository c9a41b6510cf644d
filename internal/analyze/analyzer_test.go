package analyze

import (
	"strings"
	"testing"

	"github.com/luxaudit/luxaudit/internal/facts"
	"github.com/luxaudit/luxaudit/internal/tables"
)

func TestComplianceValues(t *testing.T) {
	rec := facts.RoomRecord{
		Area:           24.0,
		IlluminanceAvg: fp(500),
		IlluminanceMin: fp(420),
		Uniformity:     fp(0.6),
		UGR:            fp(19),
	}
	got := complianceValues(&rec)

	want := map[string]float64{
		"illuminance": 500,
		"uniformity":  0.6,
		"ugr":         19,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d values %v, want %d", len(got), got, len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("value %q = %v, want %v", k, got[k], v)
		}
	}
	// Area and min illuminance carry no requirement threshold.
	if _, ok := got["area"]; ok {
		t.Error("area should not be checked")
	}
	if _, ok := got["illuminance_min"]; ok {
		t.Error("min illuminance should not be checked")
	}
}

func TestMergeTableText_BestFirst(t *testing.T) {
	weak := tables.Candidate{
		Method:  tables.MethodGrid,
		Rows:    [][]string{{"low", "fidelity"}},
		Quality: tables.Quality{Overall: 0.3},
	}
	strong := tables.Candidate{
		Method:  tables.MethodLattice,
		Rows:    [][]string{{"high", "fidelity"}},
		Quality: tables.Quality{Overall: 0.9},
	}

	got := mergeTableText([]tables.Candidate{weak, strong})

	hi := strings.Index(got, "high fidelity")
	lo := strings.Index(got, "low fidelity")
	if hi < 0 || lo < 0 {
		t.Fatalf("merged text missing rows: %q", got)
	}
	if hi > lo {
		t.Errorf("higher-ranked candidate should come first: %q", got)
	}
}

func TestMergeTableText_Empty(t *testing.T) {
	if got := mergeTableText(nil); got != "" {
		t.Errorf("mergeTableText(nil) = %q, want empty", got)
	}
}
