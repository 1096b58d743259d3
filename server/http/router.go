package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"nursery-catalog/internal/catalog/handler"
	"nursery-catalog/internal/config"
	"nursery-catalog/internal/middleware"
)

func NewRouter(cfg config.Config, svc *handler.Service, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check и метрики
	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/tags/normalize", svc.NormalizeTags)
	r.Post("/images/match", svc.MatchImages)
	r.Get("/catalog/{category}", svc.Catalog)
	r.Get("/titles", svc.Titles)

	return r
}
