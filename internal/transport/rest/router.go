package rest

import (
	"log/slog"
	"net/http"

	"github.com/hawlguard/zakat-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Records   *RecordsHandler
	Threshold *ThresholdHandler
	Admin     *AdminHandler
	Health    *HealthHandler
}

// NewRouter builds the HTTP routing table. Health probes stay outside the
// identity requirement; everything under /api/v1 and /admin requires the
// gateway-asserted user id.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	base := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)
	authed := middleware.Chain(middleware.Identity)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/v1/records", h.Records.Create)
	api.HandleFunc("GET /api/v1/records", h.Records.List)
	api.HandleFunc("GET /api/v1/records/{id}", h.Records.Get)
	api.HandleFunc("PATCH /api/v1/records/{id}", h.Records.Edit)
	api.HandleFunc("DELETE /api/v1/records/{id}", h.Records.Delete)
	api.HandleFunc("POST /api/v1/records/{id}/finalize", h.Records.Finalize)
	api.HandleFunc("POST /api/v1/records/{id}/unlock", h.Records.Unlock)
	api.HandleFunc("GET /api/v1/records/{id}/audit", h.Records.AuditTrail)
	api.HandleFunc("GET /api/v1/threshold", h.Threshold.Get)
	api.HandleFunc("POST /admin/detection/run", h.Admin.RunDetection)

	mux.Handle("/api/v1/", authed(api))
	mux.Handle("/admin/", authed(api))

	return base(mux)
}
