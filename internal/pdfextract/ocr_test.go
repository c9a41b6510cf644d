package pdfextract

import "testing"

func TestNewOCRBackendDefaults(t *testing.T) {
	b := newOCRBackend("pdftoppm", "tesseract", 0, 5, "", execRunner{}, nil)
	if b.dpi != 300 {
		t.Errorf("dpi = %d, want default 300", b.dpi)
	}
	if b.log == nil {
		t.Error("logger should default, not stay nil")
	}
	if b.lang != "eng" {
		t.Errorf("lang = %q, want eng", b.lang)
	}
}

func TestNormalizeOCR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a\r\nb\r\nc", "a\nb\nc"},
		{"a\n\n\n\n\nb", "a\n\nb"},
		{"row  \t\nnext", "row\nnext"},
		{"____\ntext", "____\ntext"}, // box noise stripped per page, not here
	}
	for _, tc := range cases {
		if got := normalizeOCR(tc.in); got != tc.want {
			t.Errorf("normalizeOCR(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
