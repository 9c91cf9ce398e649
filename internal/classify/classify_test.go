package classify

import (
	"reflect"
	"testing"

	"github.com/mechworks/dimex/constants"
)

func f64(v float64) *float64 { return &v }

func TestClassifyLineRoundTrip(t *testing.T) {
	c := NewClassifier("±0.10")

	tests := []struct {
		name string
		line string
		want DimensionRecord
	}{
		{
			name: "plain length with critical flag",
			line: "1 25.4 ±0.1 C",
			want: DimensionRecord{
				ItemNumber: 1,
				Parameter:  constants.Length,
				Nominal:    f64(25.4),
				Tolerance:  "±0.1",
				Inspection: constants.InspectionCritical,
				Instrument: "DVC",
				Page:       1,
			},
		},
		{
			name: "diameter with spec flag",
			line: "2 Ø12.0 ±0.05 S",
			want: DimensionRecord{
				ItemNumber: 2,
				Parameter:  constants.Diameter,
				Nominal:    f64(12.0),
				Tolerance:  "±0.05",
				Inspection: constants.InspectionSpec,
				Instrument: "DVC",
				Page:       1,
			},
		},
		{
			name: "radius",
			line: "3 R5.0 ±0.1",
			want: DimensionRecord{
				ItemNumber: 3,
				Parameter:  constants.Radius,
				Nominal:    f64(5.0),
				Tolerance:  "±0.1",
				Inspection: constants.InspectionNone,
				Instrument: "VMS/IMM",
				Page:       1,
			},
		},
		{
			name: "thread size",
			line: "4 M6 THREAD",
			want: DimensionRecord{
				ItemNumber: 4,
				Parameter:  constants.Thread,
				Nominal:    f64(6),
				Tolerance:  "±0.10",
				Inspection: constants.InspectionNone,
				Instrument: "Thread Gauge",
				Page:       1,
			},
		},
		{
			name: "chamfer beats angle",
			line: "5 2 x 45°",
			want: DimensionRecord{
				ItemNumber: 5,
				Parameter:  constants.Chamfer,
				Nominal:    f64(2),
				Tolerance:  "±0.10",
				Inspection: constants.InspectionNone,
				Instrument: "VMS/IMM",
				Page:       1,
			},
		},
		{
			name: "bare angle",
			line: "6 45° ±1",
			want: DimensionRecord{
				ItemNumber: 6,
				Parameter:  constants.Angle,
				Nominal:    f64(45),
				Tolerance:  "±1",
				Inspection: constants.InspectionNone,
				Instrument: "VMS/IMM",
				Page:       1,
			},
		},
		{
			name: "surface roughness",
			line: "7 finish Ra 1.6",
			want: DimensionRecord{
				ItemNumber: 7,
				Parameter:  constants.SurfaceRoughness,
				Nominal:    f64(1.6),
				Tolerance:  "±0.10",
				Inspection: constants.InspectionNone,
				Instrument: "Surface Tester",
				Page:       1,
			},
		},
		{
			// A leading "R" wins before the runout keyword is reached;
			// the radius rule sits higher in the priority order.
			name: "leading R outranks runout keyword",
			line: "8 RUNOUT 0.02 MAJOR",
			want: DimensionRecord{
				ItemNumber: 8,
				Parameter:  constants.Radius,
				Nominal:    f64(0.02),
				Tolerance:  "±0.10",
				Inspection: constants.InspectionKey,
				Instrument: "VMS/IMM",
				Page:       1,
			},
		},
		{
			name: "concentricity glyph",
			line: "9 ⌖ 0.05 conc",
			want: DimensionRecord{
				ItemNumber: 9,
				Parameter:  constants.ConcentricityRunout,
				Nominal:    f64(0.05),
				Tolerance:  "±0.10",
				Inspection: constants.InspectionNone,
				Instrument: "CMM",
				Page:       1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.ClassifyLine(tt.line, 1)
			if !ok {
				t.Fatalf("ClassifyLine(%q) rejected", tt.line)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ClassifyLine(%q)\n got %+v\nwant %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifyLineNoBalloon(t *testing.T) {
	c := NewClassifier("±0.10")
	if rec, ok := c.ClassifyLine("Overall length", 1); ok {
		t.Fatalf("expected reject, got %+v", rec)
	}
}

// Re-running the classifier on the same line must yield an identical
// record: it is a pure function with no memory across calls.
func TestClassifyLineIdempotent(t *testing.T) {
	c := NewClassifier("±0.10")
	const line = "2 Ø12.0 ±0.05 S"
	first, ok := c.ClassifyLine(line, 3)
	if !ok {
		t.Fatalf("ClassifyLine rejected %q", line)
	}
	for i := 0; i < 5; i++ {
		again, ok := c.ClassifyLine(line, 3)
		if !ok || !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: got %+v, want %+v", i, again, first)
		}
	}
}

func TestDiameterBeatsAngle(t *testing.T) {
	c := NewClassifier("±0.10")
	rec, ok := c.ClassifyLine("10 Ø8.0 at 30°", 1)
	if !ok {
		t.Fatalf("rejected")
	}
	if rec.Parameter != constants.Diameter || rec.Instrument != "DVC" {
		t.Fatalf("got %s/%s, want Diameter/DVC", rec.Parameter, rec.Instrument)
	}
}

// TestNominalPatternPriority documents that the integer pattern outranks
// the fraction patterns, so a bare fraction parses as its numerator.
func TestNominalPatternPriority(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"25.4 wide", 25.4},
		{"40 long", 40},
		{"1/2 slot", 1},   // integer pattern wins over fraction
		{"3 1/2 bore", 3}, // and over mixed numbers
	}
	for _, tt := range tests {
		got := parseNominal(tt.text)
		if got == nil || *got != tt.want {
			t.Fatalf("parseNominal(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestNominalAbsent(t *testing.T) {
	if got := parseNominal("as cast"); got != nil {
		t.Fatalf("parseNominal = %v, want nil", *got)
	}
}

func TestFractionConversion(t *testing.T) {
	tests := []struct {
		token string
		want  float64
		ok    bool
	}{
		{"3/4", 0.75, true},
		{"1 1/2", 1.5, true},
		{"5/0", 0, false}, // zero denominator is a non-match, not an error
		{"12.5", 12.5, true},
	}
	for _, tt := range tests {
		got, ok := toNumber(tt.token)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Fatalf("toNumber(%q) = (%v, %v), want (%v, %v)", tt.token, got, ok, tt.want, tt.ok)
		}
	}
}

func TestToleranceParsing(t *testing.T) {
	c := NewClassifier("±0.10")
	tests := []struct {
		text string
		want string
	}{
		{"25.4 ±0.05 C", "±0.05"},
		{"25.4 ± 0.05", "±0.05"}, // internal whitespace stripped
		{"25.4 ±1", "±1"},
		{"25.4 +0.1/-0.2", "+0.1/-0.2"},
		{"25.4 +1/-2", "+1/-2"},
		{"25.4 +0.3", "+0.3"},
		{"25.4 -2", "-2"},
		{"25.4", "±0.10"}, // configured default
	}
	for _, tt := range tests {
		if got := c.parseTolerance(tt.text); got != tt.want {
			t.Fatalf("parseTolerance(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDefaultToleranceConfigurable(t *testing.T) {
	c := NewClassifier("±0.25")
	rec, ok := c.ClassifyLine("1 40 long", 1)
	if !ok || rec.Tolerance != "±0.25" {
		t.Fatalf("tolerance = %q, want ±0.25", rec.Tolerance)
	}
	if NewClassifier("").DefaultTolerance != FallbackTolerance {
		t.Fatalf("empty default not replaced with fallback")
	}
}

func TestInspectionStandaloneTokens(t *testing.T) {
	tests := []struct {
		text string
		want constants.InspectionType
	}{
		{"25.4 C", constants.InspectionCritical},
		{"critical width", constants.InspectionCritical},
		{"25.4 S", constants.InspectionSpec},
		{"per spec", constants.InspectionSpec},
		{"key slot", constants.InspectionKey},
		{"major bore", constants.InspectionKey},
		{"cap height", constants.InspectionNone}, // C inside a word is not a flag
	}
	for _, tt := range tests {
		if got := classifyInspection(tt.text); got != tt.want {
			t.Fatalf("classifyInspection(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
