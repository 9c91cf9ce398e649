package classify

import (
	"github.com/mechworks/dimex/constants"
)

// DimensionRecord is one classified dimensional callout. Records are
// created once from a single line of drawing text and never mutated.
type DimensionRecord struct {
	// ItemNumber is the balloon/callout number. Unique per source line but
	// not deduplicated across a document.
	ItemNumber int `json:"item_number"`

	Parameter constants.ParameterType `json:"parameter"`

	// Nominal is nil when the source text carried no numeric token.
	Nominal *float64 `json:"nominal,omitempty"`

	// Tolerance is never empty; it falls back to the configured default.
	Tolerance string `json:"tolerance"`

	Inspection constants.InspectionType `json:"inspection_type"`
	Instrument string                   `json:"instrument"`

	// Page is the 1-based page the line was extracted from.
	Page int `json:"page"`
}
