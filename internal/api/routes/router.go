package routes

import (
	"net/http"

	"github.com/zatekoja/facilityqualityinsights/internal/api/handlers"
	"github.com/zatekoja/facilityqualityinsights/internal/api/middleware"
	"github.com/zatekoja/facilityqualityinsights/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	summaryHandler  *handlers.SummaryHandler
	facilityHandler *handlers.FacilityHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	summaryHandler *handlers.SummaryHandler,
	facilityHandler *handlers.FacilityHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		summaryHandler:  summaryHandler,
		facilityHandler: facilityHandler,

		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// The dashboard host invokes the summary function by this fixed route,
	// registered once at startup.
	r.mux.HandleFunc("POST /api/functions/dashboard-summary", r.summaryHandler.DashboardSummary)

	// Facility resolution endpoints
	r.mux.HandleFunc("GET /api/facilities/resolve", r.facilityHandler.ResolveFacility)
	r.mux.HandleFunc("GET /api/facilities/suggest", r.facilityHandler.SuggestFacilities)

	// Apply middleware
	var handler http.Handler = r.mux
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
