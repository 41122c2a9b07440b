package httpserver

import "net/http"

// Routes defines HTTP endpoints.
type Routes struct {
	TelemetryIngest http.Handler
	LinkCreate      http.Handler
	LinkGet         http.Handler
	LinkList        http.Handler
	Performance     http.Handler
	Health          http.Handler
	Metrics         http.Handler
}

// NewRouter sets up HTTP routing.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.TelemetryIngest != nil {
		mux.Handle("POST /v1/telemetry", routes.TelemetryIngest)
	}
	if routes.LinkCreate != nil {
		mux.Handle("POST /v1/links", routes.LinkCreate)
	}
	if routes.LinkList != nil {
		mux.Handle("GET /v1/links", routes.LinkList)
	}
	if routes.LinkGet != nil {
		mux.Handle("GET /v1/links/{vehicleId}", routes.LinkGet)
	}
	if routes.Performance != nil {
		mux.Handle("GET /v1/analytics/performance/{vehicleId}", routes.Performance)
	}
	if routes.Health != nil {
		mux.Handle("GET /health", routes.Health)
	}
	if routes.Metrics != nil {
		mux.Handle("GET /metrics", routes.Metrics)
	}
	return mux
}
