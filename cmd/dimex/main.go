package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mechworks/dimex/constants"
	"github.com/mechworks/dimex/internal/classify"
	"github.com/mechworks/dimex/internal/common"
	"github.com/mechworks/dimex/internal/export"
	"github.com/mechworks/dimex/internal/pipeline"
	"github.com/mechworks/dimex/internal/profile"
)

func main() {
	profilePath := flag.String("profile", "", "path to an extraction profile JSON file")
	outPath := flag.String("o", "", "output XLSX path (default extracted_dimensions_<name>.xlsx)")
	timeout := flag.Duration("timeout", 2*time.Minute, "processing timeout")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dimex [-profile p.json] [-o out.xlsx] <drawing.pdf>")
		os.Exit(2)
	}
	input := flag.Arg(0)
	if _, ok := constants.AllowedExtensions[constants.NormalizeExt(filepath.Ext(input))]; !ok {
		fmt.Fprintf(os.Stderr, "dimex: %s: only PDF drawings are accepted\n", input)
		os.Exit(2)
	}

	cfg := common.LoadConfig()

	var prof *profile.Profile
	if *profilePath != "" {
		var err error
		prof, err = loadProfile(*profilePath)
		if err != nil {
			logger.Error("load profile", "path", *profilePath, "error", err)
			os.Exit(2)
		}
	}

	data, err := os.ReadFile(input)
	if err != nil {
		logger.Error("read drawing", "path", input, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	runner := pipeline.NewRunner(logger)
	res, err := runner.Process(ctx, data, prof.Tolerance(cfg.Extract.DefaultTolerance))
	if err != nil {
		logger.Error("extraction failed", "path", input, "error", err)
		os.Exit(1)
	}

	if len(res.Records) == 0 {
		fmt.Println("No dimensional data found. Check that:")
		fmt.Println("- the PDF contains technical drawings with numbered dimensions")
		fmt.Println("- the dimensions follow standard callout formats")
		fmt.Println("- the PDF is text-searchable (not a scanned image)")
		return
	}

	filtered := prof.Filter(res.Records)
	includePageRef := prof.PageRef(cfg.Extract.IncludePageRef)

	workbook, err := export.NewService(cfg.Export.MaxColumnWidth, logger).Workbook(res.Records, filtered, includePageRef)
	if err != nil {
		logger.Error("build workbook", "error", err)
		os.Exit(1)
	}

	out := *outPath
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		out = "extracted_dimensions_" + base + ".xlsx"
	}
	if err := os.WriteFile(out, workbook, 0o644); err != nil {
		logger.Error("write workbook", "path", out, "error", err)
		os.Exit(1)
	}

	logger.Info("extraction OK",
		"job_id", res.JobID.String(),
		"method", res.Method,
		"pages", res.Pages,
		"records", len(res.Records),
		"rows_exported", len(filtered),
		"output", out,
		"duration_ms", res.Duration.Milliseconds(),
	)

	if prof.Preview(cfg.Extract.ShowPreview) {
		printSample(filtered, includePageRef)
	}
}

func loadProfile(path string) (*profile.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "read profile")
	}
	p, err := profile.Parse(raw)
	if err != nil {
		return nil, common.WrapError(err, "parse profile")
	}
	return p, nil
}

// printSample shows the first few rows for quick verification, like the
// original UI's sample-entries panel.
func printSample(records []classify.DimensionRecord, includePageRef bool) {
	const sampleSize = 5
	if len(records) > sampleSize {
		records = records[:sampleSize]
	}
	for _, rec := range records {
		nominal := "-"
		if rec.Nominal != nil {
			nominal = fmt.Sprintf("%g", *rec.Nominal)
		}
		line := fmt.Sprintf("%3d  %-20s %-10s %-12s %-2s %-13s",
			rec.ItemNumber, rec.Parameter, nominal, rec.Tolerance, rec.Inspection, rec.Instrument)
		if includePageRef {
			line += fmt.Sprintf("  Page %d", rec.Page)
		}
		fmt.Println(line)
	}
}
