package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/MacMatch/internal/catalog"
	"github.com/MikeSquared-Agency/MacMatch/internal/collector"
	"github.com/MikeSquared-Agency/MacMatch/internal/recommend"
	"github.com/MikeSquared-Agency/MacMatch/internal/store"
)

type ExplainHandler struct {
	profiles *profileResolver
	catalog  catalog.Source
	composer *recommend.Composer
	logger   *slog.Logger
}

func NewExplainHandler(s store.ProfileStore, col collector.Client, src catalog.Source, c *recommend.Composer, logger *slog.Logger) *ExplainHandler {
	return &ExplainHandler{profiles: newProfileResolver(s, col, logger), catalog: src, composer: c, logger: logger}
}

// Explain returns the scoring breakdown of every catalog entry for the
// caller's machine, plus the Pareto frontier.
// GET /api/v1/scoring/explain
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	params, err := parseRecommendParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	profile, err := h.profiles.resolve(r.Context(), userID(r))
	if err != nil {
		writeComposeError(w, err)
		return
	}
	ds, err := loadDataset(h.catalog, h.logger)
	if err != nil {
		writeComposeError(w, err)
		return
	}

	out, err := h.composer.Explain(ds, params.request(profile))
	if err != nil {
		writeComposeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
