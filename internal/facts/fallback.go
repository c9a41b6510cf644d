package facts

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/luxaudit/luxaudit/constants"
)

// An empty room list is worse than a low-confidence guess: Dialux layouts
// vary enormously, so when segmentation finds nothing this cascade always
// produces at least one room. Callers see the low confidence score on the
// records and treat them accordingly.

const (
	maxFallbackRooms    = 10
	maxTripleRooms      = 5
	fallbackConfidence  = 0.2
	placeholderRoomName = "Main Room"
)

var (
	tripleRowRe     = regexp.MustCompile(`(?m)^\s*(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)\s*$`)
	standaloneNumRe = regexp.MustCompile(`\b(\d{2,}(?:\.\d+)?)\b`)
)

// fallbackRooms tries each strategy in order; the first that produces any
// rooms wins.
func fallbackRooms(text, tableText string) []RoomRecord {
	combined := text + "\n" + tableText

	if rooms := roomsFromAreas(combined); len(rooms) > 0 {
		return rooms
	}
	if rooms := roomsFromIlluminance(combined); len(rooms) > 0 {
		return rooms
	}
	if rooms := roomsFromTripleRows(tableText); len(rooms) > 0 {
		return rooms
	}
	if rooms := roomsFromStandaloneNumbers(combined); len(rooms) > 0 {
		return rooms
	}
	return []RoomRecord{placeholderRoom()}
}

// roomsFromAreas creates one room per unique area value, largest first,
// pairing the i-th illuminance/uniformity/UGR by extraction order.
func roomsFromAreas(text string) []RoomRecord {
	areas := uniqueDesc(allMatches(constants.ParamArea, familyFor(constants.ParamArea), text))
	if len(areas) == 0 {
		return nil
	}
	if len(areas) > maxFallbackRooms {
		areas = areas[:maxFallbackRooms]
	}

	illuminance := allMatches(constants.ParamIlluminanceAvg, familyFor(constants.ParamIlluminanceAvg), text)
	uniformity := allMatches(constants.ParamUniformity, familyFor(constants.ParamUniformity), text)
	ugr := allMatches(constants.ParamUGR, familyFor(constants.ParamUGR), text)

	rooms := make([]RoomRecord, len(areas))
	for i, area := range areas {
		r := RoomRecord{
			Name:            fmt.Sprintf("Room %d", i+1),
			Type:            constants.Office,
			Area:            area,
			ConfidenceScore: fallbackConfidence,
		}
		if i < len(illuminance) {
			r.IlluminanceAvg = fptr(illuminance[i])
		}
		if i < len(uniformity) {
			r.Uniformity = fptr(uniformity[i])
		}
		if i < len(ugr) {
			r.UGR = fptr(ugr[i])
		}
		r.DataCompleteness = r.Completeness()
		rooms[i] = r
	}
	return rooms
}

// roomsFromIlluminance estimates an area per illuminance value. The formula
// max(10, 100 - illuminance/10) is a deliberately rough placeholder, not a
// physical model.
func roomsFromIlluminance(text string) []RoomRecord {
	values := allMatches(constants.ParamIlluminanceAvg, familyFor(constants.ParamIlluminanceAvg), text)
	if len(values) == 0 {
		return nil
	}
	if len(values) > maxFallbackRooms {
		values = values[:maxFallbackRooms]
	}

	rooms := make([]RoomRecord, len(values))
	for i, lux := range values {
		area := 100 - lux/10
		if area < 10 {
			area = 10
		}
		r := RoomRecord{
			Name:            fmt.Sprintf("Room %d", i+1),
			Type:            constants.Office,
			Area:            area,
			IlluminanceAvg:  fptr(lux),
			ConfidenceScore: fallbackConfidence,
		}
		r.DataCompleteness = r.Completeness()
		rooms[i] = r
	}
	return rooms
}

// roomsFromTripleRows treats rows of three whitespace-separated numbers as
// (area, illuminance, _) when both land in plausible ranges.
func roomsFromTripleRows(tableText string) []RoomRecord {
	var rooms []RoomRecord
	for _, m := range tripleRowRe.FindAllStringSubmatch(tableText, -1) {
		if len(rooms) >= maxTripleRooms {
			break
		}
		area, err1 := strconv.ParseFloat(m[1], 64)
		lux, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if area <= 0 || area > 10000 || !constants.Plausible(constants.ParamIlluminanceAvg, lux) {
			continue
		}
		r := RoomRecord{
			Name:            fmt.Sprintf("Room %d", len(rooms)+1),
			Type:            constants.Office,
			Area:            area,
			IlluminanceAvg:  fptr(lux),
			ConfidenceScore: fallbackConfidence,
		}
		r.DataCompleteness = r.Completeness()
		rooms = append(rooms, r)
	}
	return rooms
}

// roomsFromStandaloneNumbers takes any number with at least two digits in
// [1,10000] as a candidate area.
func roomsFromStandaloneNumbers(text string) []RoomRecord {
	var areas []float64
	for _, m := range standaloneNumRe.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v < 1 || v > 10000 {
			continue
		}
		areas = append(areas, v)
	}
	areas = uniqueDesc(areas)
	if len(areas) == 0 {
		return nil
	}
	if len(areas) > maxFallbackRooms {
		areas = areas[:maxFallbackRooms]
	}

	rooms := make([]RoomRecord, len(areas))
	for i, area := range areas {
		r := RoomRecord{
			Name:            fmt.Sprintf("Room %d", i+1),
			Type:            constants.Office,
			Area:            area,
			ConfidenceScore: fallbackConfidence,
		}
		r.DataCompleteness = r.Completeness()
		rooms[i] = r
	}
	return rooms
}

func placeholderRoom() RoomRecord {
	r := RoomRecord{
		Name:            placeholderRoomName,
		Type:            constants.Office,
		Area:            1.0,
		ConfidenceScore: fallbackConfidence,
	}
	r.DataCompleteness = r.Completeness()
	return r
}

func uniqueDesc(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	var out []float64
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}
