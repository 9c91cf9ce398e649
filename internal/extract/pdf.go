package extract

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/mechworks/dimex/internal/common"
)

// blockYTolerance groups content fragments whose baselines sit within
// this many points into one coarse block line.
const blockYTolerance = 5.0

// PDF recovers candidate lines from a text-searchable PDF. Scanned-image
// documents simply yield no lines; there is no OCR fallback.
type PDF struct {
	reader *pdf.Reader
	logger *slog.Logger
}

func NewPDF(r io.ReaderAt, size int64, logger *slog.Logger) (p *PDF, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	// The parser panics on some malformed cross-reference tables; a bad
	// upload must surface as an input error, not take the process down.
	defer func() {
		if rec := recover(); rec != nil {
			p = nil
			err = common.NewAppError("PDF_PARSE", fmt.Sprintf("malformed document: %v", rec), common.ErrUnreadable)
		}
	}()
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, common.NewAppError("PDF_PARSE", fmt.Sprintf("open document: %v", err), common.ErrUnreadable)
	}
	return &PDF{reader: reader, logger: logger}, nil
}

func NewPDFFromBytes(data []byte, logger *slog.Logger) (*PDF, error) {
	return NewPDF(bytes.NewReader(data), int64(len(data)), logger)
}

func (p *PDF) NumPages() int {
	return p.reader.NumPage()
}

// Lines runs one recovery strategy over one page. Recovery failures on a
// page degrade to zero lines with a debug log; only an unknown strategy
// is an error.
func (p *PDF) Lines(strategy string, pageNum int) (lines []Line, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Debug("page recovery panicked", "strategy", strategy, "page", pageNum, "cause", rec)
			lines, err = nil, nil
		}
	}()

	page := p.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	switch strategy {
	case StrategyPlain:
		return p.plainLines(page, pageNum), nil
	case StrategyRows:
		return p.rowLines(page, pageNum), nil
	case StrategyBlocks:
		return p.blockLines(page, pageNum), nil
	default:
		return nil, common.NewAppError("EXTRACT_STRATEGY", fmt.Sprintf("unknown strategy %q", strategy), common.ErrInternal)
	}
}

func (p *PDF) plainLines(page pdf.Page, pageNum int) []Line {
	text, err := page.GetPlainText(nil)
	if err != nil {
		p.logger.Debug("plain text recovery failed", "page", pageNum, "error", err)
		return nil
	}
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(raw); s != "" {
			lines = append(lines, Line{Text: s, Page: pageNum})
		}
	}
	return lines
}

func (p *PDF) rowLines(page pdf.Page, pageNum int) []Line {
	rows, err := page.GetTextByRow()
	if err != nil {
		p.logger.Debug("row recovery failed", "page", pageNum, "error", err)
		return nil
	}
	var lines []Line
	for _, row := range rows {
		var b strings.Builder
		for _, frag := range row.Content {
			b.WriteString(frag.S)
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			lines = append(lines, Line{Text: s, Page: pageNum})
		}
	}
	return lines
}

func (p *PDF) blockLines(page pdf.Page, pageNum int) []Line {
	content := page.Content()
	var lines []Line
	for _, band := range groupIntoBands(content.Text, blockYTolerance) {
		if s := strings.TrimSpace(joinFragments(band)); s != "" {
			lines = append(lines, Line{Text: s, Page: pageNum})
		}
	}
	return lines
}

// groupIntoBands buckets text fragments into horizontal bands: fragments
// whose Y coordinates lie within tolerance of the band's first member
// belong together. Bands come back top-of-page first (PDF Y grows
// upward), fragments within a band left to right.
func groupIntoBands(frags []pdf.Text, tolerance float64) [][]pdf.Text {
	kept := make([]pdf.Text, 0, len(frags))
	for _, f := range frags {
		if strings.TrimSpace(f.S) != "" {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Y > kept[j].Y })

	var bands [][]pdf.Text
	current := []pdf.Text{kept[0]}
	anchor := kept[0].Y
	for _, f := range kept[1:] {
		if anchor-f.Y <= tolerance {
			current = append(current, f)
			continue
		}
		bands = append(bands, current)
		current = []pdf.Text{f}
		anchor = f.Y
	}
	bands = append(bands, current)

	for _, band := range bands {
		sort.SliceStable(band, func(i, j int) bool { return band[i].X < band[j].X })
	}
	return bands
}

func joinFragments(band []pdf.Text) string {
	var b strings.Builder
	for _, f := range band {
		b.WriteString(f.S)
	}
	return b.String()
}
