package facts

import (
	"log/slog"

	"github.com/luxaudit/luxaudit/constants"
)

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// ExtractRooms builds room records from document text plus flattened table
// text. Room-header segmentation runs first; when it finds nothing, the
// fallback cascade guarantees at least one room.
func (e *Extractor) ExtractRooms(text, tableText string) []RoomRecord {
	sections := findRoomSections(text)

	var rooms []RoomRecord
	for _, sec := range sections {
		rooms = append(rooms, e.roomFromSection(sec))
	}
	if len(rooms) > 0 {
		e.logger.Debug("facts.rooms.segmented", "count", len(rooms))
		return rooms
	}

	rooms = fallbackRooms(text, tableText)
	e.logger.Debug("facts.rooms.fallback", "count", len(rooms))
	return rooms
}

func (e *Extractor) roomFromSection(sec roomSection) RoomRecord {
	params := extractParams(sec.Body)

	room := RoomRecord{
		Name: sec.Name,
		Type: constants.ClassifyRoom(sec.Name, sec.Body),
	}
	if v, ok := params[constants.ParamArea]; ok {
		room.Area = v
	}
	assign := func(dst **float64, p constants.Parameter) {
		if v, ok := params[p]; ok {
			*dst = fptr(v)
		}
	}
	assign(&room.IlluminanceAvg, constants.ParamIlluminanceAvg)
	assign(&room.IlluminanceMin, constants.ParamIlluminanceMin)
	assign(&room.IlluminanceMax, constants.ParamIlluminanceMax)
	assign(&room.Uniformity, constants.ParamUniformity)
	assign(&room.UGR, constants.ParamUGR)
	assign(&room.PowerDensity, constants.ParamPowerDensity)
	assign(&room.ColorTemperature, constants.ParamColorTemperature)
	assign(&room.CRI, constants.ParamCRI)
	assign(&room.LuminousEfficacy, constants.ParamLuminousEfficacy)
	assign(&room.MountingHeight, constants.ParamMountingHeight)

	room.DataCompleteness = room.Completeness()
	room.ConfidenceScore = float64(len(params)) / float64(len(patternFamilies))
	return room
}
