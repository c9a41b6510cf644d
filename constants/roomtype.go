package constants

import (
	"strings"
)

type RoomType string

const (
	Office      RoomType = "office"
	MeetingRoom RoomType = "meeting_room"
	Corridor    RoomType = "corridor"
	Storage     RoomType = "storage"
	Industrial  RoomType = "industrial"
	Retail      RoomType = "retail"
	Educational RoomType = "educational"
	Healthcare  RoomType = "healthcare"
	Residential RoomType = "residential"
	Outdoor     RoomType = "outdoor"
)

var allRoomTypes = []RoomType{
	Office,
	MeetingRoom,
	Corridor,
	Storage,
	Industrial,
	Retail,
	Educational,
	Healthcare,
	Residential,
	Outdoor,
}

// roomKeywords maps lowercase name fragments to room types. Order within a
// type does not matter; the first type whose keyword appears wins.
var roomKeywords = []struct {
	Type     RoomType
	Keywords []string
}{
	{Office, []string{"office", "workplace", "work place", "desk", "workstation"}},
	{MeetingRoom, []string{"meeting", "conference", "boardroom", "seminar"}},
	{Corridor, []string{"corridor", "passage", "circulation", "hallway", "aisle"}},
	{Storage, []string{"storage", "warehouse", "archive", "stock", "depot"}},
	{Industrial, []string{"industrial", "factory", "manufacturing", "production", "workshop"}},
	{Retail, []string{"retail", "shop", "store", "commercial", "showroom"}},
	{Educational, []string{"classroom", "school", "education", "teaching", "lecture"}},
	{Healthcare, []string{"hospital", "medical", "healthcare", "clinic", "treatment"}},
	{Residential, []string{"residential", "home", "apartment", "dwelling", "living"}},
	{Outdoor, []string{"outdoor", "exterior", "external", "street", "parking"}},
}

func AllRoomTypes() []string {
	result := make([]string, len(allRoomTypes))
	for i, rt := range allRoomTypes {
		result[i] = string(rt)
	}
	return result
}

// ClassifyRoom maps a room name (plus any surrounding text) to a room type.
// Unrecognized names default to Office, which carries the most common
// requirement profile in workplace lighting standards.
func ClassifyRoom(name, context string) RoomType {
	haystack := strings.ToLower(name + " " + context)
	for _, entry := range roomKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(haystack, kw) {
				return entry.Type
			}
		}
	}
	return Office
}

// ParseRoomType canonicalizes a user-supplied room type string.
func ParseRoomType(input string) (RoomType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, rt := range allRoomTypes {
		if normalized == string(rt) {
			return rt, true
		}
	}
	return Office, false
}
