package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/MacMatch/internal/hermes"
	"github.com/MikeSquared-Agency/MacMatch/internal/store"
)

type AdminHandler struct {
	store  store.ProfileStore
	hermes hermes.Client
	logger *slog.Logger
}

func NewAdminHandler(s store.ProfileStore, h hermes.Client, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{store: s, hermes: h, logger: logger}
}

func (h *AdminHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseIntParam(r, "offset")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profiles, err := h.store.ListProfiles(r.Context(), store.ProfileFilter{
		Provider: r.URL.Query().Get("provider"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profiles == nil {
		profiles = []*store.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *AdminHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "user_id")
	if err := h.store.DeleteProfile(r.Context(), target); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("profile deleted", "user", target, "by", userID(r))
	hermes.Emit(h.hermes, h.logger, hermes.SubjectProfileDeleted(target), hermes.ProfileDeletedEvent{
		UserID:    target,
		DeletedBy: userID(r),
		Timestamp: time.Now().UTC(),
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "user_id": target})
}
