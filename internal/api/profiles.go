package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/MacMatch/internal/collector"
	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
	"github.com/MikeSquared-Agency/MacMatch/internal/hermes"
	"github.com/MikeSquared-Agency/MacMatch/internal/store"
)

const maxUploadBytes = 1 << 20

// Profile sources reported on import events and metrics.
const (
	sourceStore     = "store"
	sourceJSON      = "json"
	sourceCSV       = "csv"
	sourceCollector = "collector"
)

// resolvedProfile is the machine and application list a recommendation is
// computed for, and where it came from.
type resolvedProfile struct {
	Machine      hardware.MachineProfile
	Applications []string
	Source       string
}

// profileResolver finds the caller's machine: the stored profile first, then
// the live collector when one is configured.
type profileResolver struct {
	store     store.ProfileStore
	collector collector.Client
	logger    *slog.Logger
}

func newProfileResolver(s store.ProfileStore, c collector.Client, logger *slog.Logger) *profileResolver {
	return &profileResolver{store: s, collector: c, logger: logger}
}

func (p *profileResolver) resolve(ctx context.Context, userID string) (*resolvedProfile, error) {
	stored, err := p.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return &resolvedProfile{Machine: stored.Machine, Applications: stored.Applications, Source: sourceStore}, nil
	}
	if p.collector == nil {
		return nil, errProfileNotFound
	}

	machine, err := p.collector.MachineInfo(ctx)
	if err != nil {
		collectorFallbacks.WithLabelValues("error").Inc()
		p.logger.Warn("collector fallback failed", "user", userID, "error", err)
		return nil, errProfileNotFound
	}
	var names []string
	apps, err := p.collector.InstalledApplications(ctx)
	if err != nil {
		p.logger.Warn("collector applications unavailable", "user", userID, "error", err)
	} else {
		names = collector.ApplicationNames(apps)
	}
	collectorFallbacks.WithLabelValues("ok").Inc()
	return &resolvedProfile{Machine: *machine, Applications: names, Source: sourceCollector}, nil
}

type ProfilesHandler struct {
	store  store.ProfileStore
	hermes hermes.Client
	logger *slog.Logger
}

func NewProfilesHandler(s store.ProfileStore, h hermes.Client, logger *slog.Logger) *ProfilesHandler {
	return &ProfilesHandler{store: s, hermes: h, logger: logger}
}

// profileUpload is the PUT /profiles/me body.
type profileUpload struct {
	Email        string                  `json:"email"`
	Name         string                  `json:"name"`
	Provider     string                  `json:"provider"`
	Machine      hardware.MachineProfile `json:"machine"`
	Applications []string                `json:"applications"`
}

// Put replaces the caller's stored profile.
// PUT /api/v1/profiles/me
func (h *ProfilesHandler) Put(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validateProfileJSON(body); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid profile", "details": errs})
		return
	}
	var up profileUpload
	if err := json.Unmarshal(body, &up); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p := &store.Profile{
		UserID:       userID(r),
		Email:        up.Email,
		Name:         up.Name,
		Provider:     up.Provider,
		ImportedAt:   time.Now().UTC(),
		Machine:      up.Machine,
		Applications: up.Applications,
	}
	if err := storeProfile(r.Context(), h.store, h.hermes, h.logger, p, sourceJSON); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Get returns the caller's stored profile.
// GET /api/v1/profiles/me
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProfile(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, errProfileNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ExportCSV writes the stored profile in the machine-data CSV layout.
// GET /api/v1/profiles/me/export.csv
func (h *ProfilesHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProfile(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, errProfileNotFound.Error())
		return
	}

	var buf bytes.Buffer
	if err := hardware.WriteMachineCSV(&buf, p.Machine, p.Applications); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="machine-data.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// storeProfile replaces the profile and announces the import.
func storeProfile(ctx context.Context, s store.ProfileStore, h hermes.Client, logger *slog.Logger, p *store.Profile, source string) error {
	if err := s.ReplaceProfile(ctx, p); err != nil {
		return err
	}
	profilesImported.WithLabelValues(source).Inc()
	logger.Info("profile stored", "user", p.UserID, "source", source, "applications", len(p.Applications))
	hermes.Emit(h, logger, hermes.SubjectProfileImported(p.UserID), hermes.ProfileImportedEvent{
		UserID:       p.UserID,
		Source:       source,
		ComputerName: p.Machine.ComputerName,
		Processor:    p.Machine.Processor,
		Applications: len(p.Applications),
		ImportedAt:   p.ImportedAt,
	})
	return nil
}

// identityFromHeaders reads the optional identity headers set by the
// authenticating proxy.
func identityFromHeaders(r *http.Request) (email, name, provider string) {
	return strings.TrimSpace(r.Header.Get("X-User-Email")),
		strings.TrimSpace(r.Header.Get("X-User-Name")),
		strings.TrimSpace(r.Header.Get("X-Auth-Provider"))
}
