package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gayish/internal/model"
	"gayish/internal/service"
	"gayish/internal/transport/rest/middleware"
)

// AnalyzeHandler handles screenshot analysis endpoints
type AnalyzeHandler struct {
	analysisSvc *service.AnalysisService
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analysisSvc *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysisSvc: analysisSvc}
}

// Analyze handles POST /v1/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	deviceID := middleware.GetDeviceID(r.Context())
	if deviceID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Image == "" {
		writeError(w, http.StatusBadRequest, "missing image data")
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(stripDataURI(req.Image))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid base64 image data")
		return
	}

	outcome, err := h.analysisSvc.AnalyzeImage(r.Context(), deviceID, imageData, req.MimeType)
	if err != nil {
		status, message := statusForError(err)
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// History handles GET /v1/analyses
func (h *AnalyzeHandler) History(w http.ResponseWriter, r *http.Request) {
	deviceID := middleware.GetDeviceID(r.Context())
	if deviceID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.analysisSvc.History(r.Context(), deviceID, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// statusForError maps a pipeline failure to an HTTP status plus the fixed
// user-presentable message for its kind.
func statusForError(err error) (int, string) {
	var analysisErr *service.AnalysisError
	if !errors.As(err, &analysisErr) {
		return http.StatusInternalServerError, err.Error()
	}

	switch analysisErr.Kind {
	case service.KindImageEncoding:
		return http.StatusBadRequest, analysisErr.UserMessage()
	case service.KindTimeout:
		return http.StatusGatewayTimeout, analysisErr.UserMessage()
	case service.KindRateLimited:
		return http.StatusTooManyRequests, analysisErr.UserMessage()
	default:
		// Upstream trouble of any flavor is a bad gateway from the
		// client's point of view
		return http.StatusBadGateway, analysisErr.UserMessage()
	}
}

// stripDataURI removes a "data:image/...;base64," prefix if the client
// sent one.
func stripDataURI(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if idx := strings.Index(s, ","); idx >= 0 {
		return s[idx+1:]
	}
	return s
}
