package extract

// Text-recovery strategies in the order they are tried: cheapest first.
// Some drawings expose their callouts only through one particular layout
// recovery mode, so the caller commits to the first strategy that
// produces any parsed record for the whole document.
const (
	StrategyPlain  = "plain"  // linear page text, split on newlines
	StrategyRows   = "rows"   // span text regrouped into rows
	StrategyBlocks = "blocks" // coarse Y-band blocks
)

// Strategies lists the recovery modes in priority order.
var Strategies = []string{StrategyPlain, StrategyRows, StrategyBlocks}

// Line is one candidate callout line and the 1-based page it came from.
type Line struct {
	Text string
	Page int
}

// LineExtractor recovers candidate text lines from a document, one page
// and one strategy at a time. Implementations only read the source; a
// page that yields nothing is not an error.
type LineExtractor interface {
	NumPages() int
	Lines(strategy string, page int) ([]Line, error)
}
