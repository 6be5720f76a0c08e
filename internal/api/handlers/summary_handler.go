package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/zatekoja/facilityqualityinsights/pkg/errors"
)

// SummaryGenerator produces the dashboard display string for a facility name.
type SummaryGenerator interface {
	DashboardSummary(ctx context.Context, facilityName string) (string, error)
}

// SummaryHandler handles the dashboard summary function endpoint
type SummaryHandler struct {
	summaries SummaryGenerator
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaries SummaryGenerator) *SummaryHandler {
	return &SummaryHandler{
		summaries: summaries,
	}
}

// DashboardSummary handles POST /api/functions/dashboard-summary.
//
// The dashboard host invokes the function by its registered route and expects
// a plain-text display string back, whatever the outcome. Only schema errors
// (misdeployed datasets) surface as HTTP failures.
func (h *SummaryHandler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	name, ok := facilityNameFromBody(body)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "request body must be a facility name")
		return
	}

	text, err := h.summaries.DashboardSummary(r.Context(), name)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeSchema {
			respondWithError(w, http.StatusInternalServerError, appErr.Message)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithText(w, http.StatusOK, text)
}

// facilityNameFromBody accepts the shapes dashboard hosts send: an object
// with facility_name, a JSON array whose first element is the name, or a
// bare JSON string.
func facilityNameFromBody(body []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", true
	}

	var payload struct {
		FacilityName string `json:"facility_name"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.FacilityName != "" {
		return payload.FacilityName, true
	}

	var list []string
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) == 0 {
			return "", true
		}
		return list[0], true
	}

	var single string
	if err := json.Unmarshal(body, &single); err == nil {
		return single, true
	}

	// Allow the object shape with an empty name through; everything else is
	// malformed.
	if err := json.Unmarshal(body, &payload); err == nil {
		return payload.FacilityName, true
	}
	return "", false
}

func respondWithText(w http.ResponseWriter, statusCode int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(text)); err != nil {
		return
	}
}
