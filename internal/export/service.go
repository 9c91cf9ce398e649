package export

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mechworks/dimex/constants"
	"github.com/mechworks/dimex/internal/classify"
)

const (
	dimensionSheet = "Dimensions"
	summarySheet   = "Summary"
	headerFill     = "D7E4BC"
)

// Service is a tiny façade over excelize that turns classified records
// into XLSX bytes.
type Service struct {
	maxColWidth float64
	logger      *slog.Logger
}

func NewService(maxColWidth float64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if maxColWidth <= 0 {
		maxColWidth = 20
	}
	return &Service{maxColWidth: maxColWidth, logger: logger}
}

// Workbook builds the two-sheet export: the (possibly filtered) record
// rows and a per-parameter-type count summary. Summary counts cover the
// full record set, not the filtered view, so filtering rows never skews
// the distribution.
func (s *Service) Workbook(all, filtered []classify.DimensionRecord, includePageRef bool) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), dimensionSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Sr. No.", "Parameter", "Nominal Value", "Tolerance", "Type (C/S)", "Instrument"}
	if includePageRef {
		headers = append(headers, "Page")
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(dimensionSheet, cell, h)
	}

	for rowIdx, rec := range filtered {
		row := rowIdx + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(dimensionSheet, cell, v)
			if n := len(fmt.Sprintf("%v", v)); n > widths[col-1] {
				widths[col-1] = n
			}
		}

		write(1, rec.ItemNumber)
		write(2, string(rec.Parameter))
		if rec.Nominal != nil {
			write(3, *rec.Nominal)
		}
		write(4, rec.Tolerance)
		write(5, string(rec.Inspection))
		write(6, rec.Instrument)
		if includePageRef {
			write(7, fmt.Sprintf("Page %d", rec.Page))
		}
	}

	if err := s.styleHeader(f, dimensionSheet, len(headers)); err != nil {
		return nil, err
	}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(dimensionSheet, col, col, min(float64(w)+2, s.maxColWidth))
	}

	if err := s.writeSummary(f, all); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(filtered),
		"total_records", len(all),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) styleHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(cols, 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	return nil
}

// writeSummary adds the per-parameter-type count sheet, highest count
// first, ties broken by name.
func (s *Service) writeSummary(f *excelize.File, records []classify.DimensionRecord) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	type paramCount struct {
		name  constants.ParameterType
		count int
	}
	counts := make(map[constants.ParameterType]int)
	for _, rec := range records {
		counts[rec.Parameter]++
	}
	ordered := make([]paramCount, 0, len(counts))
	for name, count := range counts {
		ordered = append(ordered, paramCount{name, count})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].name < ordered[j].name
	})

	_ = f.SetCellValue(summarySheet, "A1", "Parameter Type")
	_ = f.SetCellValue(summarySheet, "B1", "Count")
	for i, pc := range ordered {
		_ = f.SetCellValue(summarySheet, "A"+strconv.Itoa(i+2), string(pc.name))
		_ = f.SetCellValue(summarySheet, "B"+strconv.Itoa(i+2), pc.count)
	}
	if err := s.styleHeader(f, summarySheet, 2); err != nil {
		return err
	}
	_ = f.SetColWidth(summarySheet, "A", "A", s.maxColWidth)
	return nil
}
