package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/healthfinder/internal/auth"
	"github.com/sakif/healthfinder/internal/emergency"
	"github.com/sakif/healthfinder/internal/service"
)

// AnalysisHandler serves the symptom-analysis flow and the history reads
// that go with it.
type AnalysisHandler struct {
	analysis *service.AnalysisService
	history  *service.HistoryService
	logger   *slog.Logger
}

func NewAnalysisHandler(analysis *service.AnalysisService, history *service.HistoryService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysis: analysis,
		history:  history,
		logger:   logger,
	}
}

type analyzeRequest struct {
	Symptoms string `json:"symptoms"`
	Location string `json:"location"`
	Language string `json:"language"`
}

// HandleAnalyze runs one full symptom check for the logged-in user.
//
// HTTP: POST /api/analyze
// Auth: required
func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: "invalid JSON body",
		})
		return
	}

	result, err := h.analysis.Analyze(r.Context(), id.Username, req.Symptoms, req.Location, req.Language)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleHistory returns the caller's own history, newest first.
//
// HTTP: GET /api/history?limit=10
// Auth: required
func (h *AnalysisHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "bad_request",
				Message: "limit must be an integer",
			})
			return
		}
		limit = parsed
	}

	entries, err := h.history.List(r.Context(), id.Username, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// HandleEmergencyContacts returns the static emergency directory for a
// location. Public — someone in trouble shouldn't need to log in first.
//
// HTTP: GET /api/emergency-contacts?location=Delhi
func (h *AnalysisHandler) HandleEmergencyContacts(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contacts":  emergency.ContactsFor(location),
		"helplines": emergency.Helplines,
	})
}
