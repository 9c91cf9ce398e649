package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/mechworks/dimex/constants"
	"github.com/mechworks/dimex/internal/classify"
	"github.com/mechworks/dimex/internal/common"
	"github.com/mechworks/dimex/internal/pipeline"
	"github.com/mechworks/dimex/internal/profile"
)

// DocumentProcessor runs one extraction pass over an uploaded document.
type DocumentProcessor interface {
	Process(ctx context.Context, data []byte, defaultTolerance string) (pipeline.Result, error)
}

// Exporter renders classified records as an XLSX workbook.
type Exporter interface {
	Workbook(all, filtered []classify.DimensionRecord, includePageRef bool) ([]byte, error)
}

// Service is the HTTP surface: one upload in, one table or workbook out.
// Nothing survives a request; there is no shared state across requests.
type Service struct {
	cfg       *common.Config
	processor DocumentProcessor
	exporter  Exporter
	logger    *slog.Logger
}

func NewService(cfg *common.Config, processor DocumentProcessor, exporter Exporter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, processor: processor, exporter: exporter, logger: logger}
}

func (s *Service) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/dimensions", s.handleDimensions)
	mux.HandleFunc("/v1/dimensions/export", s.handleExport)
	return mux
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// upload is one parsed multipart request: the drawing bytes plus the
// optional extraction profile.
type upload struct {
	data     []byte
	filename string
	profile  *profile.Profile
}

// readUpload parses the multipart body. It writes the error response
// itself and reports ok=false when the request is unusable.
func (s *Service) readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "a PDF upload in form field 'file' is required")
		return upload{}, false
	}
	defer func() { _ = file.Close() }()

	if constants.MapExtToFormat(filepath.Ext(header.Filename)) != constants.PDF {
		s.writeError(w, http.StatusBadRequest, "unsupported file type: only PDF drawings are accepted")
		return upload{}, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "could not read upload: "+err.Error())
		return upload{}, false
	}
	if len(data) == 0 {
		s.writeError(w, http.StatusBadRequest, "uploaded file is empty")
		return upload{}, false
	}

	up := upload{data: data, filename: header.Filename}
	if raw := r.FormValue("profile"); raw != "" {
		p, err := profile.Parse([]byte(raw))
		if err != nil {
			s.logger.Warn("profile rejected", "error", err)
			s.writeError(w, http.StatusBadRequest, "invalid extraction profile: "+err.Error())
			return upload{}, false
		}
		up.profile = p
	}
	return up, true
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
