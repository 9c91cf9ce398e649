package profile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mechworks/dimex/constants"
	"github.com/mechworks/dimex/internal/classify"
	"github.com/mechworks/dimex/internal/common"
)

// Profile is the per-request extraction configuration the original tool
// kept in its sidebar: output knobs plus row filters. Every field is
// optional; nil/empty means "use the server default".
type Profile struct {
	DefaultTolerance string   `json:"default_tolerance,omitempty"`
	IncludePageRef   *bool    `json:"include_page_ref,omitempty"`
	ShowPreview      *bool    `json:"show_preview,omitempty"`
	Parameters       []string `json:"parameters,omitempty"`
	InspectionTypes  []string `json:"inspection_types,omitempty"`
}

// Parse validates raw JSON against the profile schema, decodes it, and
// canonicalizes the filter selections. The schema guards shape; values
// are checked against the constants tables here, so parameter names match
// case-insensitively and come back in their canonical spelling.
func Parse(data []byte) (*Profile, error) {
	if err := ValidateJSONAgainstSchema(BuildProfileJSONSchema(), data); err != nil {
		return nil, common.NewAppError("PROFILE_INVALID", "extraction profile rejected", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, common.NewAppError("PROFILE_INVALID", "extraction profile rejected", err)
	}
	for i, name := range p.Parameters {
		param, ok := constants.CanonicalizeParameter(name)
		if !ok {
			return nil, common.NewAppError("PROFILE_INVALID",
				fmt.Sprintf("parameter %q is not one of %q", name, constants.AsStringSlice()), nil)
		}
		p.Parameters[i] = string(param)
	}
	for i, name := range p.InspectionTypes {
		canon := strings.ToUpper(strings.TrimSpace(name))
		if !constants.ValidInspectionType(canon) {
			return nil, common.NewAppError("PROFILE_INVALID",
				fmt.Sprintf("inspection type %q is not one of %q", name, constants.InspectionTypesAsStringSlice()), nil)
		}
		p.InspectionTypes[i] = canon
	}
	return &p, nil
}

// Tolerance returns the profile's default tolerance, or fallback when the
// profile does not set one. Safe on a nil profile.
func (p *Profile) Tolerance(fallback string) string {
	if p == nil || p.DefaultTolerance == "" {
		return fallback
	}
	return p.DefaultTolerance
}

func (p *Profile) PageRef(fallback bool) bool {
	if p == nil || p.IncludePageRef == nil {
		return fallback
	}
	return *p.IncludePageRef
}

func (p *Profile) Preview(fallback bool) bool {
	if p == nil || p.ShowPreview == nil {
		return fallback
	}
	return *p.ShowPreview
}

// Filter keeps the records matching the profile's parameter and
// inspection-type selections. An empty selection keeps everything, like
// the original's multiselects defaulting to all values.
func (p *Profile) Filter(records []classify.DimensionRecord) []classify.DimensionRecord {
	if p == nil || (len(p.Parameters) == 0 && len(p.InspectionTypes) == 0) {
		return records
	}
	params := toSet(p.Parameters)
	inspections := toSet(p.InspectionTypes)
	out := make([]classify.DimensionRecord, 0, len(records))
	for _, rec := range records {
		if len(params) > 0 {
			if _, ok := params[string(rec.Parameter)]; !ok {
				continue
			}
		}
		if len(inspections) > 0 {
			if _, ok := inspections[string(rec.Inspection)]; !ok {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// BuildProfileJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. The selection values are deliberately plain strings here:
// Parse resolves them against the constants tables, where matching can be
// case-insensitive.
func BuildProfileJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"default_tolerance": map[string]any{"type": "string", "minLength": 1},
			"include_page_ref":  map[string]any{"type": "boolean"},
			"show_preview":      map[string]any{"type": "boolean"},
			"parameters": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"inspection_types": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}
}
