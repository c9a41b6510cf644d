package standards

import "testing"

func TestParseStandard(t *testing.T) {
	cases := []struct {
		in   string
		want StandardType
		ok   bool
	}{
		{"", StandardEN12464, true},
		{"EN_12464_1", StandardEN12464, true},
		{"en 12464-1", StandardEN12464, true},
		{"breeam", StandardBREEAM, true},
		{"ISO 8995", StandardISO8995, true},
		{"custom", StandardCustom, true},
		{"DIN-5035", StandardCustom, false},
	}
	for _, tc := range cases {
		got, ok := ParseStandard(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseStandard(%q) = (%s, %v), want (%s, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
