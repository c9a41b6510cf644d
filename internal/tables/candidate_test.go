package tables

import "testing"

func TestMethodConfidence(t *testing.T) {
	cases := []struct {
		method string
		want   float64
	}{
		{MethodStream, 0.75},
		{MethodGrid, 0.65},
		{MethodLattice, 0.80},
		{"unknown", 0.5},
	}
	for _, tc := range cases {
		if got := MethodConfidence(tc.method); got != tc.want {
			t.Errorf("MethodConfidence(%q) = %v, want %v", tc.method, got, tc.want)
		}
	}
}

func TestRankOrdersMethodsAtEqualQuality(t *testing.T) {
	lattice := Candidate{Method: MethodLattice, Quality: Quality{Overall: 0.9}}
	stream := Candidate{Method: MethodStream, Quality: Quality{Overall: 0.9}}
	grid := Candidate{Method: MethodGrid, Quality: Quality{Overall: 0.9}}

	if lattice.Rank() <= stream.Rank() {
		t.Errorf("lattice rank %v should beat stream rank %v", lattice.Rank(), stream.Rank())
	}
	if stream.Rank() <= grid.Rank() {
		t.Errorf("stream rank %v should beat grid rank %v", stream.Rank(), grid.Rank())
	}
}

func TestRankFavorsQualityOverMethod(t *testing.T) {
	// 0.7 quality weight dominates the 0.3 method weight.
	strong := Candidate{Method: MethodGrid, Quality: Quality{Overall: 0.9}}
	weak := Candidate{Method: MethodLattice, Quality: Quality{Overall: 0.3}}
	if strong.Rank() <= weak.Rank() {
		t.Errorf("high-quality grid rank %v should beat low-quality lattice rank %v", strong.Rank(), weak.Rank())
	}
}

func TestFlatten(t *testing.T) {
	c := Candidate{Rows: [][]string{
		{"Room", "Area", "Em"},
		{"Office 1", "24.0", "500"},
	}}
	want := "Room Area Em\nOffice 1 24.0 500\n"
	if got := c.Flatten(); got != want {
		t.Errorf("Flatten() = %q, want %q", got, want)
	}
}

func TestNewCandidateAssignsIDAndQuality(t *testing.T) {
	c := NewCandidate([][]string{{"a", "b"}, {"1", "2"}}, 3, MethodStream)
	if c.ID == "" {
		t.Error("expected a generated ID")
	}
	if c.Page != 3 || c.Method != MethodStream {
		t.Errorf("unexpected provenance: page %d method %q", c.Page, c.Method)
	}
	if c.Quality.Overall == 0 {
		t.Error("expected the grid to be scored")
	}
}
