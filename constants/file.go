package constants

import "strings"

// Source formats the extractor understands. Only text-searchable PDFs are
// supported; scanned images yield an empty result, not an error.
const (
	PDF = "PDF"
)

// AllowedExtensions holds the file extensions accepted for upload.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to its source format, or ""
// when the extension is unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	default:
		return ""
	}
}
