package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/sleep-dashboard/internal/analysis"
	"github.com/blaisecz/sleep-dashboard/internal/domain"
	"github.com/blaisecz/sleep-dashboard/internal/service"
	"github.com/blaisecz/sleep-dashboard/pkg/problem"
)

const (
	UploadPath        = "/v1/analysis/upload"
	CurrentReportPath = "/v1/reports/current"

	// uploadFormField is the multipart field carrying the data file.
	uploadFormField = "file"
	// multipartOverhead allows for boundaries and part headers around the file.
	multipartOverhead = 1 << 20
)

type AnalysisHandler struct {
	service  service.AnalysisService
	maxBytes int64
}

// NewAnalysisHandler creates an AnalysisHandler accepting files up to maxBytes.
func NewAnalysisHandler(svc service.AnalysisService, maxBytes int64) *AnalysisHandler {
	if maxBytes <= 0 {
		maxBytes = service.DefaultUploadMaxBytes
	}
	return &AnalysisHandler{service: svc, maxBytes: maxBytes}
}

// Upload handles POST /v1/analysis/upload
// @Summary Analyse a sleep data file
// @Description Upload a raw EEG/wearable export (.csv or .txt). The file is sent to the analysis API and the resulting report becomes the current report. Nothing is stored when the analysis fails.
// @Tags analysis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Sleep data file (.csv or .txt)"
// @Success 201 {object} domain.SleepReport "Analysis report"
// @Failure 400 {object} problem.Problem "Missing or unsupported file"
// @Failure 413 {object} problem.Problem "File too large"
// @Failure 502 {object} problem.Problem "Analysis API failed"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /analysis/upload [post]
func (h *AnalysisHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			problem.PayloadTooLarge("File exceeds the upload limit").Write(w)
		case errors.Is(err, http.ErrMissingFile):
			problem.BadRequest("Multipart field 'file' is required").Write(w)
		default:
			problem.BadRequest("Invalid multipart body").Write(w)
		}
		return
	}
	defer file.Close()

	report, err := h.service.Upload(r.Context(), header.Filename, file)
	if err != nil {
		var apiErr *analysis.APIError
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			problem.BadRequest(err.Error()).Write(w)
		case errors.Is(err, domain.ErrFileTooLarge):
			problem.PayloadTooLarge(err.Error()).Write(w)
		case errors.As(err, &apiErr):
			problem.BadGateway("Sleep analysis failed: " + apiErr.Message).Write(w)
		case errors.Is(err, domain.ErrAnalysisFailed):
			problem.BadGateway("Sleep analysis failed").Write(w)
		default:
			problem.InternalError("Failed to analyse file").Write(w)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", CurrentReportPath)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(report)
}

// GetCurrent handles GET /v1/reports/current
// @Summary Get the current report
// @Description Return the report of the most recent successful upload.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.SleepReport "Current report"
// @Failure 404 {object} problem.Problem "No report yet; see the Link header for the upload endpoint"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /reports/current [get]
func (h *AnalysisHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Current(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoReport) {
			problem.NoReport("No sleep report yet. Upload a data file first.", UploadPath).Write(w)
			return
		}
		problem.InternalError("Failed to load report").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// DeleteCurrent handles DELETE /v1/reports/current
// @Summary Discard the current report
// @Tags reports
// @Success 204 "Report discarded"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /reports/current [delete]
func (h *AnalysisHandler) DeleteCurrent(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		problem.InternalError("Failed to discard report").Write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
