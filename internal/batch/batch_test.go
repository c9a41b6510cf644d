package batch

import "testing"

func TestAllowedExt(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/in/report.pdf", true},
		{"/in/REPORT.PDF", true},
		{"/in/report.txt", false},
		{"/in/noext", false},
	}
	for _, tc := range cases {
		if got := allowedExt(tc.path); got != tc.want {
			t.Errorf("allowedExt(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestIsHidden(t *testing.T) {
	if !isHidden(".processing") {
		t.Error(".processing must be hidden")
	}
	if isHidden("reports") {
		t.Error("reports must not be hidden")
	}
}
