package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/MacMatch/internal/catalog"
	"github.com/MikeSquared-Agency/MacMatch/internal/collector"
	"github.com/MikeSquared-Agency/MacMatch/internal/config"
	"github.com/MikeSquared-Agency/MacMatch/internal/hermes"
	"github.com/MikeSquared-Agency/MacMatch/internal/recommend"
	"github.com/MikeSquared-Agency/MacMatch/internal/store"
)

// NewRouter builds the API. h and c may be nil: events are then not
// published and users without a stored profile get 404.
func NewRouter(s store.ProfileStore, h hermes.Client, c collector.Client, src catalog.Source, comp *recommend.Composer, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(MetricsMiddleware)
	r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute))

	rec := NewRecommendHandler(s, c, src, comp, h, logger)
	profiles := NewProfilesHandler(s, h, logger)
	explain := NewExplainHandler(s, c, src, comp, logger)
	admin := NewAdminHandler(s, h, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(UserIDMiddleware)

		r.Get("/recommend/matches", rec.Matches)
		r.Get("/recommend/tco", rec.TCO)
		r.Get("/recommend/tiers", rec.Tiers)
		r.Get("/recommend/enhanced", rec.Enhanced)
		r.Post("/import/recommend", rec.Import)

		r.Put("/profiles/me", profiles.Put)
		r.Get("/profiles/me", profiles.Get)
		r.Get("/profiles/me/export.csv", profiles.ExportCSV)

		r.Get("/scoring/explain", explain.Explain)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/admin/profiles", admin.ListProfiles)
			r.Delete("/admin/profiles/{user_id}", admin.DeleteProfile)
		})
	})

	return r
}
