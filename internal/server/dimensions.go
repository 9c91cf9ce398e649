package server

import (
	"errors"
	"net/http"

	"github.com/mechworks/dimex/constants"
	"github.com/mechworks/dimex/internal/classify"
	"github.com/mechworks/dimex/internal/common"
	"github.com/mechworks/dimex/internal/pipeline"
)

// noDataHints mirror the guidance the original UI showed when a document
// produced nothing.
var noDataHints = []string{
	"the PDF contains technical drawings with numbered dimensions",
	"the dimensions follow standard callout formats",
	"the PDF is text-searchable (not a scanned image)",
}

type extractStats struct {
	Total            int `json:"total"`
	Critical         int `json:"critical"`
	UniqueParameters int `json:"unique_parameters"`
	PagesProcessed   int `json:"pages_processed"`
}

type dimensionsResponse struct {
	Found           bool                       `json:"found"`
	JobID           string                     `json:"job_id"`
	Method          string                     `json:"method"`
	Pages           int                        `json:"pages"`
	Stats           extractStats               `json:"stats"`
	ParameterCounts map[string]int             `json:"parameter_counts,omitempty"`
	Records         []classify.DimensionRecord `json:"records"`
	Warnings        []string                   `json:"warnings,omitempty"`
}

type noDataResponse struct {
	Found   bool     `json:"found"`
	JobID   string   `json:"job_id"`
	Message string   `json:"message"`
	Hints   []string `json:"hints"`
}

func (s *Service) handleDimensions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	res, err := s.process(w, r, up)
	if err != nil {
		return
	}
	if len(res.Records) == 0 {
		s.writeJSON(w, http.StatusOK, noDataResponse{
			Found:   false,
			JobID:   res.JobID.String(),
			Message: "no dimensional data found in the PDF",
			Hints:   noDataHints,
		})
		return
	}

	resp := dimensionsResponse{
		Found:   true,
		JobID:   res.JobID.String(),
		Method:  res.Method,
		Pages:   res.Pages,
		Stats:   statsFor(res.Records),
		Records: up.profile.Filter(res.Records),
	}
	if up.profile.Preview(s.cfg.Extract.ShowPreview) {
		resp.ParameterCounts = parameterCounts(res.Records)
	}
	resp.Warnings = res.Warnings
	s.writeJSON(w, http.StatusOK, resp)
}

// process runs the extraction pass and maps failures to HTTP responses.
// A non-nil error means the response has already been written.
func (s *Service) process(w http.ResponseWriter, r *http.Request, up upload) (pipeline.Result, error) {
	tolerance := up.profile.Tolerance(s.cfg.Extract.DefaultTolerance)
	res, err := s.processor.Process(r.Context(), up.data, tolerance)
	if err != nil {
		if errors.Is(err, common.ErrUnreadable) {
			s.writeError(w, http.StatusBadRequest, "error processing PDF: "+err.Error())
		} else {
			s.logger.Error("extraction failed", "file", up.filename, "error", err)
			s.writeError(w, http.StatusInternalServerError, "error processing PDF")
		}
		return pipeline.Result{}, err
	}
	return res, nil
}

// Stats are computed over the full record set, before profile filters,
// matching the original's metrics panel.
func statsFor(records []classify.DimensionRecord) extractStats {
	st := extractStats{Total: len(records)}
	params := map[constants.ParameterType]struct{}{}
	pages := map[int]struct{}{}
	for _, rec := range records {
		if rec.Inspection == constants.InspectionCritical {
			st.Critical++
		}
		params[rec.Parameter] = struct{}{}
		pages[rec.Page] = struct{}{}
	}
	st.UniqueParameters = len(params)
	st.PagesProcessed = len(pages)
	return st
}

func parameterCounts(records []classify.DimensionRecord) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[string(rec.Parameter)]++
	}
	return counts
}
