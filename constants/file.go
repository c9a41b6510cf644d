package constants

import "strings"

// ExportFormats holds the supported output formats for analysis results.
var ExportFormats = []string{"json", "csv", "xlsx", "txt"}

// AllowedExtensions holds the file extensions accepted for analysis input.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
