package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mechworks/dimex/internal/classify"
	"github.com/mechworks/dimex/internal/extract"
)

// Result is the outcome of one extraction pass over one document.
type Result struct {
	JobID    uuid.UUID                  `json:"job_id"`
	Records  []classify.DimensionRecord `json:"records"`
	Method   string                     `json:"method"`
	Pages    int                        `json:"pages"`
	Duration time.Duration              `json:"-"`
	Warnings []string                   `json:"warnings,omitempty"`
}

// Runner feeds extracted candidate lines through the classifier.
type Runner struct {
	Log *slog.Logger
}

func NewRunner(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{Log: log}
}

// Process opens a PDF held in memory and runs a full extraction pass with
// a classifier configured for the given default tolerance.
func (r *Runner) Process(ctx context.Context, data []byte, defaultTolerance string) (Result, error) {
	ex, err := extract.NewPDFFromBytes(data, r.Log)
	if err != nil {
		return Result{}, err
	}
	return r.Run(ctx, ex, classify.NewClassifier(defaultTolerance))
}

// Run tries each recovery strategy over the whole document and commits to
// the first one that contributes at least one parsed record. Strategies
// are never mixed within a document: a drawing whose callouts surface
// only under one layout mode gets that mode consistently. Zero records
// from every strategy is a valid "no data" result, not an error.
func (r *Runner) Run(ctx context.Context, ex extract.LineExtractor, cls *classify.Classifier) (Result, error) {
	start := time.Now()
	res := Result{JobID: uuid.New(), Pages: ex.NumPages()}

	for _, strategy := range extract.Strategies {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		records, warnings := r.runStrategy(ctx, ex, cls, strategy)
		res.Warnings = append(res.Warnings, warnings...)
		if len(records) > 0 {
			res.Records = records
			res.Method = strategy
			break
		}
	}

	// Stable on item number: duplicate balloon numbers stay in extraction
	// order and are never merged.
	sort.SliceStable(res.Records, func(i, j int) bool {
		return res.Records[i].ItemNumber < res.Records[j].ItemNumber
	})

	res.Duration = time.Since(start)
	r.Log.Info("extraction pass done",
		"job_id", res.JobID.String(),
		"method", res.Method,
		"pages", res.Pages,
		"records", len(res.Records),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (r *Runner) runStrategy(ctx context.Context, ex extract.LineExtractor, cls *classify.Classifier, strategy string) ([]classify.DimensionRecord, []string) {
	var records []classify.DimensionRecord
	var warnings []string
	for page := 1; page <= ex.NumPages(); page++ {
		if ctx.Err() != nil {
			return records, warnings
		}
		lines, err := ex.Lines(strategy, page)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: page %d: %v", strategy, page, err))
			continue
		}
		for _, line := range lines {
			// Lines that fail segmentation are skipped, never fatal.
			if rec, ok := cls.ClassifyLine(line.Text, line.Page); ok {
				records = append(records, rec)
			}
		}
	}
	return records, warnings
}
