package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/luxaudit/luxaudit/constants"
	"github.com/luxaudit/luxaudit/internal/common"
	"github.com/luxaudit/luxaudit/internal/standards"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.HealthCheck(r.Context(), 0); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a multipart PDF upload and runs the pipeline
// synchronously. Form fields: file (required), mode, standard.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeError(w, http.StatusUnsupportedMediaType, "only PDF uploads are supported")
		return
	}

	v := common.NewValidator().
		Field("file", header.Filename, common.Required, common.MaxLength(255)).
		Field("mode", r.FormValue("mode"), common.OneOf("fast", "standard", "enhanced"))
	if err := v.Err(); err != nil {
		writeAppError(w, err)
		return
	}

	mode, _ := constants.ParseAnalysisMode(r.FormValue("mode"))
	standard, ok := standards.ParseStandard(r.FormValue("standard"))
	if !ok {
		writeAppError(w, fmt.Errorf("%w: %q", common.ErrUnknownStandard, r.FormValue("standard")))
		return
	}

	tmp, err := os.CreateTemp("", "la-upload-*.pdf")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to stage upload")
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, http.StatusInternalServerError, "failed to stage upload")
		return
	}
	tmp.Close()

	ctx := r.Context()
	runID, err := s.store.StartRun(ctx, header.Filename, mode, string(standard))
	if err != nil {
		writeAppError(w, err)
		return
	}
	ctx = common.WithRunID(ctx, runID)

	report, err := s.analyzer.Analyze(ctx, tmp.Name(), mode, standard)
	if err != nil {
		_ = s.store.FailRun(ctx, runID, err.Error())
		writeAppError(w, err)
		return
	}
	report.SourceFile = header.Filename

	if err := s.store.FinishRun(ctx, runID, report); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run_id": runID,
		"report": report,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := common.NewValidator().Field("id", id, common.Required, common.UUIDField).Err(); err != nil {
		writeAppError(w, err)
		return
	}
	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
