package tables

import "testing"

func TestDetectStream_AlignedColumns(t *testing.T) {
	text := "Room        Area      Lux\n" +
		"Office 1    25.5      500\n" +
		"Corridor    15.2      300\n"
	grids := DetectStream(text)

	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}
	if r, c := Shape(grids[0]); r != 3 || c != 3 {
		t.Errorf("shape = %dx%d, want 3x3", r, c)
	}
	if grids[0][1][2] != "500" {
		t.Errorf("cell [1][2] = %q, want 500", grids[0][1][2])
	}
}

func TestDetectStream_ProseIsNotATable(t *testing.T) {
	text := "This report documents the lighting design.\nAll values follow standard practice.\n"
	if grids := DetectStream(text); len(grids) != 0 {
		t.Errorf("got %d grids from prose, want 0", len(grids))
	}
}

func TestDetectStream_SingleLineRunDiscarded(t *testing.T) {
	text := "prose line\nA  B  C\nmore prose\n"
	if grids := DetectStream(text); len(grids) != 0 {
		t.Errorf("got %d grids, want 0 for a one-line run", len(grids))
	}
}

func TestDetectStream_ColumnJumpSplitsRuns(t *testing.T) {
	text := "A  B\nC  D\nE  F  G  H  I\nJ  K  L  M  N\n"
	grids := DetectStream(text)
	if len(grids) != 2 {
		t.Fatalf("got %d grids, want 2 (column count jumped by 3)", len(grids))
	}
}

func TestDetectGrid_PipeDelimited(t *testing.T) {
	text := "| Room | Area |\n| Office | 25.5 |\n"
	grids := DetectGrid(text)

	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}
	if r, c := Shape(grids[0]); r != 2 || c != 2 {
		t.Errorf("shape = %dx%d, want 2x2", r, c)
	}
	if grids[0][1][0] != "Office" {
		t.Errorf("cell [1][0] = %q, want Office", grids[0][1][0])
	}
}

func TestDetectGrid_TabDelimited(t *testing.T) {
	text := "Room\tArea\nOffice\t25.5\n"
	grids := DetectGrid(text)
	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}
}

func TestNormalizeGrid_PadsRaggedRows(t *testing.T) {
	grid := normalizeGrid([][]string{{"a", "b", "c"}, {"d"}})
	if len(grid[1]) != 3 {
		t.Fatalf("row 1 has %d cells, want padded to 3", len(grid[1]))
	}
	if grid[1][1] != "" || grid[1][2] != "" {
		t.Error("padding cells must be empty")
	}
}

func TestExtractFromText_ScoresAndDedups(t *testing.T) {
	text := "Room        Area\nOffice 1    25.5\nCorridor    15.2\n"
	cands := ExtractFromText(text)

	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	if cands[0].Method != MethodStream {
		t.Errorf("method = %q, want %s", cands[0].Method, MethodStream)
	}
	if cands[0].Quality.Overall <= 0 {
		t.Error("candidate must carry a quality score")
	}
	if cands[0].ID == "" {
		t.Error("candidate must carry an id")
	}
}
