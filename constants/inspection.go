package constants

// InspectionType flags how strictly a dimension must be verified.
type InspectionType string

const (
	InspectionNone     InspectionType = ""
	InspectionCritical InspectionType = "C"
	InspectionSpec     InspectionType = "S"
	InspectionKey      InspectionType = "K"
)

var allInspectionTypes = []InspectionType{
	InspectionNone,
	InspectionCritical,
	InspectionSpec,
	InspectionKey,
}

func InspectionTypesAsStringSlice() []string {
	result := make([]string, len(allInspectionTypes))
	for i, t := range allInspectionTypes {
		result[i] = string(t)
	}
	return result
}

// ValidInspectionType reports whether s is one of the known flags,
// including the empty "no flag" value.
func ValidInspectionType(s string) bool {
	for _, t := range allInspectionTypes {
		if s == string(t) {
			return true
		}
	}
	return false
}
