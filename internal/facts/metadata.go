package facts

import (
	"path/filepath"
	"regexp"
	"strings"
)

var projectLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)project[:\s]+([^\n\r]+)`),
	regexp.MustCompile(`(?i)building[:\s]+([^\n\r]+)`),
	regexp.MustCompile(`(?i)facility[:\s]+([^\n\r]+)`),
	regexp.MustCompile(`(?i)title[:\s]+([^\n\r]+)`),
}

// ProjectName extracts a project name from label patterns, falling back to
// the file name without extension.
func ProjectName(text, path string) string {
	for _, re := range projectLabelPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			if name != "" && len(name) < 120 {
				return name
			}
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// brandRe matches well-known lighting manufacturers.
var brandRe = regexp.MustCompile(`(?i)\b(philips|osram|ge lighting|signify|tridonic|mean well|helvar|lutron|acuity brands)\b`)

var companyLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)manufacturer[:\s]*([a-zA-Z][a-zA-Z\s&]+)`),
	regexp.MustCompile(`(?i)company[:\s]*([a-zA-Z][a-zA-Z\s&]+)`),
	regexp.MustCompile(`(?i)client[:\s]*([a-zA-Z][a-zA-Z\s&]+)`),
}

// CompanyHeuristic finds a manufacturer or company name without an LLM:
// known brand names first, then label patterns. Empty string when nothing
// matches.
func CompanyHeuristic(text string) string {
	if m := brandRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, re := range companyLabelPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			// label captures run greedy; keep the first line's worth
			if i := strings.IndexByte(name, '\n'); i >= 0 {
				name = strings.TrimSpace(name[:i])
			}
			if name != "" && len(name) < 80 {
				return name
			}
		}
	}
	return ""
}
