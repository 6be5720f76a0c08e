package handlers

import (
	"encoding/json"
	"net/http"
)

// FacilityResolver resolves free-text facility names against the loaded
// datasets.
type FacilityResolver interface {
	Resolve(input string) (string, string)
	Suggest(input string) []string
}

// FacilityHandler handles facility resolution HTTP requests
type FacilityHandler struct {
	resolver FacilityResolver
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(resolver FacilityResolver) *FacilityHandler {
	return &FacilityHandler{
		resolver: resolver,
	}
}

// ResolveFacility handles GET /api/facilities/resolve
func (h *FacilityHandler) ResolveFacility(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	resolved, note := h.resolver.Resolve(name)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"resolved": resolved,
		"note":     note,
	})
}

// SuggestFacilities handles GET /api/facilities/suggest
func (h *FacilityHandler) SuggestFacilities(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	suggestions := h.resolver.Suggest(name)
	if suggestions == nil {
		suggestions = []string{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// respondWithJSON writes a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		return
	}
}

// respondWithError writes an error response
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{"error": message})
}
