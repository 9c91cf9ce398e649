package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mechworks/dimex/constants"
)

// FallbackTolerance is used when the caller configures no default.
const FallbackTolerance = "±0.10"

// Classifier turns one line of extracted drawing text into a
// DimensionRecord. It is a pure function of its input: no state across
// calls, no I/O, and no sub-parse ever returns an error — every branch
// has a defined fallback.
type Classifier struct {
	// DefaultTolerance is reported when no tolerance pattern matches.
	DefaultTolerance string
}

func NewClassifier(defaultTolerance string) *Classifier {
	if defaultTolerance == "" {
		defaultTolerance = FallbackTolerance
	}
	return &Classifier{DefaultTolerance: defaultTolerance}
}

// ClassifyLine segments the balloon number off a raw line and derives the
// remaining fields from the descriptive text. ok is false when the line
// is not a recognizable dimension callout.
func (c *Classifier) ClassifyLine(line string, page int) (DimensionRecord, bool) {
	itemNumber, text, ok := Segment(line)
	if !ok {
		return DimensionRecord{}, false
	}
	rec := c.derive(text)
	rec.ItemNumber = itemNumber
	rec.Page = page
	return rec, true
}

func (c *Classifier) derive(text string) DimensionRecord {
	param := classifyParameter(text)
	return DimensionRecord{
		Parameter:  param,
		Nominal:    parseNominal(text),
		Tolerance:  c.parseTolerance(text),
		Inspection: classifyInspection(text),
		Instrument: constants.Instrument(param),
	}
}

// Nominal-value patterns in priority order. Note the integer pattern
// fires on the numerator before the fraction patterns can match, so
// "1/2" yields nominal 1; kept that way deliberately.
var nominalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\.\d+)`),     // decimal
	regexp.MustCompile(`(\d+)`),          // integer
	regexp.MustCompile(`(\d+/\d+)`),      // simple fraction
	regexp.MustCompile(`(\d+\s\d+/\d+)`), // mixed number
}

func parseNominal(text string) *float64 {
	for _, pat := range nominalPatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, ok := toNumber(m[1])
		if !ok {
			continue
		}
		return &v
	}
	return nil
}

// toNumber converts a matched numeric token, reducing fractions and mixed
// numbers. Zero denominators and malformed tokens report no match.
func toNumber(s string) (float64, bool) {
	if strings.Contains(s, "/") {
		whole := 0.0
		frac := s
		if i := strings.IndexByte(s, ' '); i >= 0 {
			w, err := strconv.ParseFloat(s[:i], 64)
			if err != nil {
				return 0, false
			}
			whole = w
			frac = s[i+1:]
		}
		num, den, found := strings.Cut(frac, "/")
		if !found {
			return 0, false
		}
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return whole + n/d, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Tolerance patterns in priority order: symmetric before asymmetric,
// decimal before integer, so "±0.05" never degrades to a "+0" match.
var tolerancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(±\s*\d+\.\d+)`),         // ± decimal
	regexp.MustCompile(`(±\s*\d+)`),              // ± integer
	regexp.MustCompile(`(\+\d+\.\d+/-\d+\.\d+)`), // +x.x/-y.y
	regexp.MustCompile(`(\+\d+/-\d+)`),           // +x/-y
	regexp.MustCompile(`([+\-]\d+\.\d+)`),        // single-sided decimal
	regexp.MustCompile(`([+\-]\d+)`),             // single-sided integer
}

func (c *Classifier) parseTolerance(text string) string {
	for _, pat := range tolerancePatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return strings.ReplaceAll(m[1], " ", "")
		}
	}
	return c.DefaultTolerance
}

var (
	threadRe       = regexp.MustCompile(`M\d+`)
	chamferDimsRe  = regexp.MustCompile(`\d+\s*[Xx]\s*\d+°`)
	inspCriticalRe = regexp.MustCompile(`\bC\b`)
	inspSpecRe     = regexp.MustCompile(`\bS\b`)
)

type parameterRule struct {
	match func(text, upper string) bool
	param constants.ParameterType
}

// Parameter classification rules, first match wins. Order matters:
// a diameter glyph beats a stray degree symbol, and the multiplier+degree
// chamfer form beats the bare-degree angle form.
var parameterRules = []parameterRule{
	{func(text, upper string) bool {
		return strings.Contains(text, "Ø") || strings.Contains(text, "DIA") ||
			strings.Contains(text, "DIAM") || strings.Contains(upper, "DIAMETER")
	}, constants.Diameter},
	{func(text, upper string) bool {
		return strings.HasPrefix(text, "R") || strings.Contains(upper, "RADIUS") ||
			strings.Contains(text, " R ")
	}, constants.Radius},
	{func(text, upper string) bool {
		return threadRe.MatchString(text) || strings.Contains(upper, "THREAD")
	}, constants.Thread},
	{func(text, upper string) bool {
		if strings.Contains(text, "°") &&
			(strings.Contains(upper, "X") || strings.Contains(upper, "CHAM")) {
			return true
		}
		return chamferDimsRe.MatchString(text)
	}, constants.Chamfer},
	{func(text, upper string) bool {
		return strings.Contains(text, "°") || strings.Contains(upper, "ANGLE") ||
			strings.Contains(upper, "DEG")
	}, constants.Angle},
	{func(text, upper string) bool {
		return strings.Contains(text, "Ra") || strings.Contains(text, "Rz") ||
			strings.Contains(text, "Rt") || strings.Contains(upper, "SURFACE")
	}, constants.SurfaceRoughness},
	{func(text, upper string) bool {
		return strings.Contains(text, "⌖") || strings.Contains(text, "↗") ||
			strings.Contains(upper, "CONC") || strings.Contains(upper, "RUNOUT")
	}, constants.ConcentricityRunout},
}

func classifyParameter(text string) constants.ParameterType {
	upper := strings.ToUpper(text)
	for _, rule := range parameterRules {
		if rule.match(text, upper) {
			return rule.param
		}
	}
	return constants.Length
}

func classifyInspection(text string) constants.InspectionType {
	upper := strings.ToUpper(text)
	switch {
	case inspCriticalRe.MatchString(upper) || strings.Contains(upper, "CRITICAL"):
		return constants.InspectionCritical
	case inspSpecRe.MatchString(upper) || strings.Contains(upper, "SPEC"):
		return constants.InspectionSpec
	case strings.Contains(upper, "KEY") || strings.Contains(upper, "MAJOR"):
		return constants.InspectionKey
	default:
		return constants.InspectionNone
	}
}
