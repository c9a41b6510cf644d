package facts

import (
	"testing"
)

func TestExtractRooms_TwoSegmentedRooms(t *testing.T) {
	text := "Room 1: 25.5 m², 500 lux\nRoom 2: 15.2 m2, 300 lux"
	rooms := NewExtractor(nil).ExtractRooms(text, "")

	if len(rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(rooms))
	}
	if rooms[0].Area != 25.5 {
		t.Errorf("room 1 area = %f, want 25.5", rooms[0].Area)
	}
	if rooms[1].Area != 15.2 {
		t.Errorf("room 2 area = %f, want 15.2", rooms[1].Area)
	}
	if rooms[0].IlluminanceAvg == nil || *rooms[0].IlluminanceAvg != 500 {
		t.Errorf("room 1 illuminance = %v, want 500", rooms[0].IlluminanceAvg)
	}
	if rooms[1].IlluminanceAvg == nil || *rooms[1].IlluminanceAvg != 300 {
		t.Errorf("room 2 illuminance = %v, want 300", rooms[1].IlluminanceAvg)
	}
	for i, r := range rooms {
		if r.Uniformity != nil {
			t.Errorf("room %d uniformity = %v, want nil (not in source)", i+1, *r.Uniformity)
		}
		if r.ConfidenceScore <= 0 {
			t.Errorf("room %d confidence = %f, want positive", i+1, r.ConfidenceScore)
		}
	}
}

func TestExtractRooms_EmptyTextYieldsPlaceholder(t *testing.T) {
	rooms := NewExtractor(nil).ExtractRooms("", "")

	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want exactly 1 placeholder", len(rooms))
	}
	r := rooms[0]
	if r.Name != "Main Room" {
		t.Errorf("name = %q, want Main Room", r.Name)
	}
	if r.Area != 1.0 {
		t.Errorf("area = %f, want 1.0", r.Area)
	}
	if r.ConfidenceScore != 0.2 {
		t.Errorf("confidence = %f, want 0.2", r.ConfidenceScore)
	}
	if r.IlluminanceAvg != nil || r.Uniformity != nil || r.UGR != nil {
		t.Error("placeholder room must not carry photometric values")
	}
}

func TestExtractRooms_ImplausibleUniformityDiscarded(t *testing.T) {
	text := "Room: Office A\nsurface: 20\nuniformity: 5.0\n"
	rooms := NewExtractor(nil).ExtractRooms(text, "")

	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rooms))
	}
	if rooms[0].Uniformity != nil {
		t.Errorf("uniformity = %v, want nil (5.0 is out of range)", *rooms[0].Uniformity)
	}
	if rooms[0].Area != 20 {
		t.Errorf("area = %f, want 20", rooms[0].Area)
	}
}

func TestExtractRooms_PlausibleUniformityKept(t *testing.T) {
	text := "Room: Office A\nuniformity: 0.65\n"
	rooms := NewExtractor(nil).ExtractRooms(text, "")

	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rooms))
	}
	if rooms[0].Uniformity == nil || *rooms[0].Uniformity != 0.65 {
		t.Errorf("uniformity = %v, want 0.65", rooms[0].Uniformity)
	}
}

func TestCompleteness(t *testing.T) {
	r := RoomRecord{Area: 10, IlluminanceAvg: fptr(500), Uniformity: fptr(0.6), UGR: fptr(19)}
	if got, want := r.Completeness(), 0.5; got != want {
		t.Errorf("completeness = %f, want %f", got, want)
	}
	empty := RoomRecord{}
	if got := empty.Completeness(); got != 0 {
		t.Errorf("completeness of empty record = %f, want 0", got)
	}
}
