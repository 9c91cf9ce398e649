package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Balloon-number recognition patterns, tried in priority order. The last
// pattern is deliberately loose: the number must still lead the line, but
// any run of punctuation may separate it from the text, trading precision
// for recall on drawings with unusual callout layouts.
var balloonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+)\s+(.+)`),       // "12 Overall length"
	regexp.MustCompile(`^\((\d+)\)\s*(.+)`),   // "(12) Overall length"
	regexp.MustCompile(`^(\d+)[.\-:]\s*(.+)`), // "12. Overall length"
	regexp.MustCompile(`^(\d+)\s*[^\d\w]*(.+)`),
}

// Segment recognizes a leading balloon number and the descriptive text
// after it. The first matching pattern wins; the line is rejected when no
// pattern matches, the number does not fit an int, or the remaining text
// trims to one character or less.
func Segment(line string) (itemNumber int, text string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, "", false
	}
	for _, pat := range balloonPatterns {
		m := pat.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		text = strings.TrimSpace(m[2])
		if len(text) <= 1 {
			return 0, "", false
		}
		return n, text, true
	}
	return 0, "", false
}
