package constants

import (
	"strings"
)

// ParameterType classifies what a dimensional callout measures.
type ParameterType string

const (
	Length              ParameterType = "Length"
	Diameter            ParameterType = "Diameter"
	Radius              ParameterType = "Radius"
	Thread              ParameterType = "Thread"
	Chamfer             ParameterType = "Chamfer"
	Angle               ParameterType = "Angle"
	SurfaceRoughness    ParameterType = "Surface Roughness"
	ConcentricityRunout ParameterType = "Concentricity/Runout"
)

var allParameters = []ParameterType{
	Length,
	Diameter,
	Radius,
	Thread,
	Chamfer,
	Angle,
	SurfaceRoughness,
	ConcentricityRunout,
}

// instruments maps each parameter type to the measuring instrument
// recommended for it. Adding a category means adding one row here and one
// constant above.
var instruments = map[ParameterType]string{
	Length:              "DVC",
	Diameter:            "DVC",
	Radius:              "VMS/IMM",
	Thread:              "Thread Gauge",
	Chamfer:             "VMS/IMM",
	Angle:               "VMS/IMM",
	SurfaceRoughness:    "Surface Tester",
	ConcentricityRunout: "CMM",
}

// Instrument returns the recommended measuring instrument for a parameter
// type. Unknown types get the Length default.
func Instrument(p ParameterType) string {
	if inst, ok := instruments[p]; ok {
		return inst
	}
	return instruments[Length]
}

func AsStringSlice() []string {
	result := make([]string, len(allParameters))
	for i, p := range allParameters {
		result[i] = string(p)
	}
	return result
}

// CanonicalizeParameter resolves a free-form parameter name to its
// ParameterType, case-insensitively. Unrecognized input maps to Length.
func CanonicalizeParameter(input string) (ParameterType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return Length, false
	}
	for _, p := range allParameters {
		if normalized == strings.ToLower(string(p)) {
			return p, true
		}
	}
	return Length, false
}
