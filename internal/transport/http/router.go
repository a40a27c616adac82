package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docledger/internal/platform/middleware"
)

// Registrar is implemented by module handlers that mount routes.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the public API. All /api routes require an authenticated
// caller; ownership and gateway-identity checks live in the services.
func NewRouter(logger *slog.Logger, validator middleware.CallerValidator, handlers ...Registrar) http.Handler {
	root := chi.NewRouter()

	root.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	root.Method(http.MethodGet, "/metrics", promhttp.Handler())

	api := chi.NewRouter()
	api.Use(middleware.Recovery(logger))
	api.Use(middleware.RequestID)
	api.Use(middleware.ClientMetadata)
	api.Use(middleware.Logger(logger))
	api.Use(middleware.Timeout(30 * time.Second))
	api.Use(middleware.ContentTypeJSON)
	api.Use(middleware.RequireCaller(validator, logger))
	for _, h := range handlers {
		h.Register(api)
	}

	root.Mount("/api/v1", api)
	return root
}
