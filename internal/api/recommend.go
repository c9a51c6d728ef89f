package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/MacMatch/internal/catalog"
	"github.com/MikeSquared-Agency/MacMatch/internal/collector"
	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
	"github.com/MikeSquared-Agency/MacMatch/internal/hermes"
	"github.com/MikeSquared-Agency/MacMatch/internal/recommend"
	"github.com/MikeSquared-Agency/MacMatch/internal/store"
	"github.com/MikeSquared-Agency/MacMatch/internal/tco"
)

type RecommendHandler struct {
	profiles *profileResolver
	store    store.ProfileStore
	catalog  catalog.Source
	composer *recommend.Composer
	hermes   hermes.Client
	logger   *slog.Logger
}

func NewRecommendHandler(s store.ProfileStore, col collector.Client, src catalog.Source, c *recommend.Composer, h hermes.Client, logger *slog.Logger) *RecommendHandler {
	return &RecommendHandler{
		profiles: newProfileResolver(s, col, logger),
		store:    s,
		catalog:  src,
		composer: c,
		hermes:   h,
		logger:   logger,
	}
}

// prepare resolves the caller's profile, the query parameters and the dataset.
func (h *RecommendHandler) prepare(w http.ResponseWriter, r *http.Request) (catalog.Dataset, recommend.Request, bool) {
	params, err := parseRecommendParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return catalog.Dataset{}, recommend.Request{}, false
	}
	profile, err := h.profiles.resolve(r.Context(), userID(r))
	if err != nil {
		writeComposeError(w, err)
		return catalog.Dataset{}, recommend.Request{}, false
	}
	h.logger.Debug("profile resolved", "user", userID(r), "source", profile.Source)
	ds, err := loadDataset(h.catalog, h.logger)
	if err != nil {
		writeComposeError(w, err)
		return catalog.Dataset{}, recommend.Request{}, false
	}
	return ds, params.request(profile), true
}

// Matches returns up to three ranked Macs with per-axis notes.
// GET /api/v1/recommend/matches
func (h *RecommendHandler) Matches(w http.ResponseWriter, r *http.Request) {
	ds, req, ok := h.prepare(w, r)
	if !ok {
		return
	}
	matches := h.composer.Matches(ds, req)
	if len(matches) == 0 {
		h.unmatched(r, len(ds.Macs))
		writeComposeError(w, recommend.ErrNoMatches)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// TCO returns the flat cost comparison for the top match.
// GET /api/v1/recommend/tco
func (h *RecommendHandler) TCO(w http.ResponseWriter, r *http.Request) {
	ds, req, ok := h.prepare(w, r)
	if !ok {
		return
	}
	cmp, err := h.composer.CompareTCO(ds, req)
	if err != nil {
		h.composeFailed(w, r, err, len(ds.Macs))
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

// Tiers returns the Good/Better/Best options.
// GET /api/v1/recommend/tiers
func (h *RecommendHandler) Tiers(w http.ResponseWriter, r *http.Request) {
	ds, req, ok := h.prepare(w, r)
	if !ok {
		return
	}
	tiers, err := h.composer.Tiers(ds, req)
	if err != nil {
		h.composeFailed(w, r, err, len(ds.Macs))
		return
	}
	writeJSON(w, http.StatusOK, tiers)
}

// Enhanced returns the full recommendation.
// GET /api/v1/recommend/enhanced
func (h *RecommendHandler) Enhanced(w http.ResponseWriter, r *http.Request) {
	ds, req, ok := h.prepare(w, r)
	if !ok {
		return
	}
	h.recommend(w, r, ds, req)
}

// Import stores a machine-data CSV as the caller's profile and returns the
// recommendation for it.
// POST /api/v1/import/recommend
func (h *RecommendHandler) Import(w http.ResponseWriter, r *http.Request) {
	params, err := parseRecommendParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	machine, apps, err := hardware.ReadMachineCSV(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	email, name, provider := identityFromHeaders(r)
	p := &store.Profile{
		UserID:       userID(r),
		Email:        email,
		Name:         name,
		Provider:     provider,
		ImportedAt:   time.Now().UTC(),
		Machine:      machine,
		Applications: apps,
	}
	if err := storeProfile(r.Context(), h.store, h.hermes, h.logger, p, sourceCSV); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ds, err := loadDataset(h.catalog, h.logger)
	if err != nil {
		writeComposeError(w, err)
		return
	}
	resolved := &resolvedProfile{Machine: p.Machine, Applications: p.Applications, Source: sourceCSV}
	h.recommend(w, r, ds, params.request(resolved))
}

func (h *RecommendHandler) recommend(w http.ResponseWriter, r *http.Request, ds catalog.Dataset, req recommend.Request) {
	rec, err := h.composer.Recommend(ds, req)
	if err != nil {
		h.composeFailed(w, r, err, len(ds.Macs))
		return
	}

	recommendationsTotal.WithLabelValues(string(rec.Persona)).Inc()
	recommendationSimilarity.Observe(rec.Similarity)
	hermes.Emit(h.hermes, h.logger, hermes.SubjectRecommendationComputed(rec.ID), hermes.RecommendationComputedEvent{
		RecommendationID: rec.ID,
		UserID:           userID(r),
		Persona:          string(rec.Persona),
		Model:            rec.RecommendedMac.Model,
		Signature:        rec.RecommendedMac.Signature(),
		Similarity:       rec.Similarity,
		SavingsAED:       tco.Savings(rec.WindowsTCO, rec.MacTCO),
		Years:            rec.Years,
		Timestamp:        time.Now().UTC(),
	})
	h.logger.Info("recommendation served", "user", userID(r), "id", rec.ID, "summary", rec.Describe())
	writeJSON(w, http.StatusOK, rec)
}

func (h *RecommendHandler) composeFailed(w http.ResponseWriter, r *http.Request, err error, catalogSize int) {
	if errors.Is(err, recommend.ErrNoMatches) {
		h.unmatched(r, catalogSize)
	} else {
		h.logger.Error("recommendation failed", "user", userID(r), "error", err)
	}
	writeComposeError(w, err)
}

func (h *RecommendHandler) unmatched(r *http.Request, catalogSize int) {
	unmatchedTotal.Inc()
	id := uuid.NewString()
	h.logger.Warn("no matching mac", "user", userID(r), "catalog_size", catalogSize)
	hermes.Emit(h.hermes, h.logger, hermes.SubjectRecommendationUnmatched(id), hermes.RecommendationUnmatchedEvent{
		RecommendationID: id,
		UserID:           userID(r),
		Reason:           recommend.ErrNoMatches.Error(),
		CatalogSize:      catalogSize,
		Timestamp:        time.Now().UTC(),
	})
}

func loadDataset(src catalog.Source, logger *slog.Logger) (catalog.Dataset, error) {
	ds, err := src.Load()
	if err != nil {
		logger.Error("catalog load failed", "error", err)
		return catalog.Dataset{}, errCatalogUnavailable
	}
	return ds, nil
}
