package handler

import (
	"net/http"

	"github.com/workpulse/workpulse/internal/domain"
	"github.com/workpulse/workpulse/internal/service"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Auth        *service.AuthService
	Tracking    *service.TrackingService
	Analytics   *service.AnalyticsService
	Screenshots *service.ScreenshotService
	Telemetry   *service.TelemetryService
	Env         string
	Production  bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, s Services) {
	authHandler := NewAuthHandler(s.Auth, s.Production)
	trackingHandler := NewTrackingHandler(s.Tracking, s.Production)
	analyticsHandler := NewAnalyticsHandler(s.Analytics, s.Production)
	screenshotHandler := NewScreenshotHandler(s.Screenshots, s.Production)
	telemetryHandler := NewTelemetryHandler(s.Telemetry, s.Production)
	healthHandler := NewHealthHandler(s.Env)

	employee := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(s.Auth, RequireRole(h, domain.RoleEmployee, domain.RoleAdmin))
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(s.Auth, RequireRole(h, domain.RoleAdmin))
	}

	mux.HandleFunc("GET /health", healthHandler.HandleHealth)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.HandleLogin)

	mux.Handle("POST /api/v1/time-tracking/start", employee(trackingHandler.HandleStart))
	mux.Handle("POST /api/v1/time-tracking/stop", employee(trackingHandler.HandleStop))
	mux.Handle("GET /api/v1/time-tracking/active", employee(trackingHandler.HandleActive))
	mux.Handle("GET /api/v1/time-tracking/sessions", employee(trackingHandler.HandleSessions))
	mux.Handle("POST /api/v1/time-tracking/sync", employee(trackingHandler.HandleSync))
	mux.Handle("GET /api/v1/time-tracking/stats", employee(trackingHandler.HandleStats))

	mux.Handle("POST /api/v1/telemetry/window", employee(telemetryHandler.HandleIngestWindow))
	mux.Handle("POST /api/v1/telemetry/screenshot", employee(telemetryHandler.HandleIngestScreenshot))

	mux.Handle("GET /api/v1/analytics/project-time", admin(analyticsHandler.HandleProjectTime))
	mux.Handle("GET /api/v1/analytics/window", admin(analyticsHandler.HandleWindows))
	mux.Handle("GET /api/v1/analytics/screenshot-paginate", admin(screenshotHandler.HandlePaginated))

	// JSON 404 for everything else.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, typeNotFound, "Route "+r.URL.Path+" not found")
	})
}
