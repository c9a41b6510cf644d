package facts

import (
	"regexp"
	"strings"
)

// roomHeaderPatterns identify lines that open a new room section. The
// captured group is the room name.
var roomHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:room|space|area|zone)[:\s]+([^\n\r]+)`),
	regexp.MustCompile(`(?i)([^\n\r]+)\s*\([^)]*room[^)]*\)`),
	regexp.MustCompile(`(?i)([^\n\r]+)\s*\([^)]*space[^)]*\)`),
	regexp.MustCompile(`(?i)building[:\s]+([^\n\r]+)`),
	regexp.MustCompile(`(?i)floor[:\s]+([^\n\r]+)`),
}

type roomSection struct {
	Name string
	Body string
}

// findRoomSections splits text into room sections. A header line starts a
// section; everything up to the next header is its body. Text before the
// first header belongs to no room.
func findRoomSections(text string) []roomSection {
	var sections []roomSection
	var currentName string
	var currentBody []string

	flush := func() {
		if currentName != "" {
			sections = append(sections, roomSection{
				Name: currentName,
				Body: strings.Join(currentBody, "\n"),
			})
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		header := false
		for _, re := range roomHeaderPatterns {
			if m := re.FindStringSubmatch(line); m != nil {
				flush()
				currentName = strings.TrimSpace(m[1])
				currentBody = []string{line}
				header = true
				break
			}
		}
		if !header && currentName != "" {
			currentBody = append(currentBody, line)
		}
	}
	flush()
	return sections
}
