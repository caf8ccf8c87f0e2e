package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"eduvid/internal/http/handlers"
	"eduvid/internal/infra"
	"eduvid/internal/middleware"
)

// NewRouter builds the chi router with the service's middleware chain and
// routes.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.UserID,
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/ai", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
			r.Post("/generate-script", app.GenerateScript)
			r.Post("/create-video", app.CreateArtifact)
			r.Post("/generate-batch", app.GenerateBatch)
			r.Post("/upload", app.UploadVideo)
			r.Post("/generated/{artifact_id}/upload", app.AttachVideo)
		})
		r.Get("/upload/stats", app.UploadStats)
		r.Get("/generation-status/{artifact_id}", app.GenerationStatus)
		r.Get("/service-status", app.ServiceStatus)
		r.Get("/stats", app.GenerationStats)
		r.Get("/generated", app.ListGenerated)
		r.Get("/generated/{artifact_id}/export", app.ExportArtifact)
	})

	return r
}
