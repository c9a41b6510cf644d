package facts

import (
	"fmt"
	"strings"
	"testing"
)

func TestFallback_AreasDriveRoomCount(t *testing.T) {
	text := "Total 40.0 m² hall and 22.5 m² store plus 40.0 m² annex"
	rooms := fallbackRooms(text, "")

	// Duplicate 40.0 collapses and rooms come out largest first.
	if len(rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(rooms))
	}
	if rooms[0].Area != 40.0 || rooms[1].Area != 22.5 {
		t.Errorf("areas = %f, %f; want 40.0, 22.5", rooms[0].Area, rooms[1].Area)
	}
	for i, r := range rooms {
		if r.ConfidenceScore != 0.2 {
			t.Errorf("room %d confidence = %f, want 0.2", i+1, r.ConfidenceScore)
		}
		if r.Name != fmt.Sprintf("Room %d", i+1) {
			t.Errorf("room %d name = %q", i+1, r.Name)
		}
	}
}

func TestFallback_AreaCapAtTen(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 15; i++ {
		fmt.Fprintf(&sb, "%d.5 m²\n", i*10)
	}
	rooms := fallbackRooms(sb.String(), "")
	if len(rooms) != 10 {
		t.Errorf("got %d rooms, want capped at 10", len(rooms))
	}
}

func TestFallback_IlluminanceEstimatesArea(t *testing.T) {
	rooms := fallbackRooms("measured 500 lux and 200 lux", "")

	if len(rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(rooms))
	}
	// area = max(10, 100 - lux/10)
	if rooms[0].Area != 50 {
		t.Errorf("room 1 area = %f, want 50", rooms[0].Area)
	}
	if rooms[1].Area != 80 {
		t.Errorf("room 2 area = %f, want 80", rooms[1].Area)
	}
	if rooms[0].IlluminanceAvg == nil || *rooms[0].IlluminanceAvg != 500 {
		t.Errorf("room 1 illuminance = %v, want 500", rooms[0].IlluminanceAvg)
	}
}

func TestFallback_IlluminanceAreaFloor(t *testing.T) {
	rooms := fallbackRooms("reading of 950 lux", "")
	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rooms))
	}
	if rooms[0].Area != 10 {
		t.Errorf("area = %f, want floor of 10", rooms[0].Area)
	}
}

func TestFallback_TripleRows(t *testing.T) {
	tableText := "24.0 500 36\n18.5 300 24\n12.0 200 12\n"
	rooms := roomsFromTripleRows(tableText)

	if len(rooms) != 3 {
		t.Fatalf("got %d rooms, want 3", len(rooms))
	}
	if rooms[1].Area != 18.5 {
		t.Errorf("room 2 area = %f, want 18.5", rooms[1].Area)
	}
	if rooms[1].IlluminanceAvg == nil || *rooms[1].IlluminanceAvg != 300 {
		t.Errorf("room 2 illuminance = %v, want 300", rooms[1].IlluminanceAvg)
	}
}

func TestFallback_TripleRowsSkipImplausible(t *testing.T) {
	// Second column must be a plausible illuminance.
	tableText := "24.0 50000 36\n"
	if rooms := roomsFromTripleRows(tableText); len(rooms) != 0 {
		t.Errorf("got %d rooms, want 0 for implausible illuminance", len(rooms))
	}
}

func TestUniqueDesc(t *testing.T) {
	got := uniqueDesc([]float64{30, 10, 30, 20, 10})
	want := []float64{30, 20, 10}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}
