package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Service) handleExport(w http.ResponseWriter, r *http.Request) {
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

	includePageRef := up.profile.PageRef(s.cfg.Extract.IncludePageRef)
	workbook, err := s.exporter.Workbook(res.Records, up.profile.Filter(res.Records), includePageRef)
	if err != nil {
		s.logger.Error("workbook failed", "job_id", res.JobID.String(), "error", err)
		s.writeError(w, http.StatusInternalServerError, "could not build workbook")
		return
	}

	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(up.filename)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(workbook); err != nil {
		s.logger.Error("write workbook", "error", err)
	}
}

// exportFilename names the download after the upload, like the original's
// "extracted_dimensions_<name>.xlsx".
func exportFilename(uploadName string) string {
	base := strings.TrimSuffix(filepath.Base(uploadName), filepath.Ext(uploadName))
	if base == "" || base == "." {
		base = "drawing"
	}
	return "extracted_dimensions_" + base + ".xlsx"
}
