package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/MacMatch/internal/carbon"
	"github.com/MikeSquared-Agency/MacMatch/internal/catalog"
	"github.com/MikeSquared-Agency/MacMatch/internal/collector"
	"github.com/MikeSquared-Agency/MacMatch/internal/config"
	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
	"github.com/MikeSquared-Agency/MacMatch/internal/hermes"
	"github.com/MikeSquared-Agency/MacMatch/internal/recommend"
	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
	"github.com/MikeSquared-Agency/MacMatch/internal/store"
	"github.com/MikeSquared-Agency/MacMatch/internal/tco"
)

// MockStore implements store.ProfileStore for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetProfile(ctx context.Context, userID string) (*store.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Profile), args.Error(1)
}

func (m *MockStore) ReplaceProfile(ctx context.Context, p *store.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStore) ListProfiles(ctx context.Context, filter store.ProfileFilter) ([]*store.Profile, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Profile), args.Error(1)
}

func (m *MockStore) DeleteProfile(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Close() error { return nil }

// MockHermes implements hermes.Client for testing
type MockHermes struct {
	mock.Mock
}

func (m *MockHermes) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func (m *MockHermes) Close() {}

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) MachineInfo(ctx context.Context) (*hardware.MachineProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hardware.MachineProfile), args.Error(1)
}

func (m *mockCollector) InstalledApplications(ctx context.Context) ([]collector.InstalledApp, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collector.InstalledApp), args.Error(1)
}

type failingSource struct{}

func (failingSource) Load() (catalog.Dataset, error) {
	return catalog.Dataset{}, errors.New("disk on fire")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func i7Machine() hardware.MachineProfile {
	return hardware.MachineProfile{
		ComputerName:  "DESKTOP-42",
		Processor:     "Intel(R) Core(TM) i7-1165G7 @ 2.80GHz",
		PhysicalCores: 4,
		LogicalCores:  8,
		TotalMemory:   "16 GB",
		Disks:         []hardware.DiskInfo{{Name: "C:", FileSystem: "NTFS", Size: "512 GB", Free: "200 GB"}},
	}
}

func storedProfile(userID string, apps ...string) *store.Profile {
	return &store.Profile{UserID: userID, Machine: i7Machine(), Applications: apps}
}

func testMacs() []hardware.MacSpec {
	return []hardware.MacSpec{
		{Model: "MacBook Air 13", Chip: "M1", CoresCPU: 8, CoresGPU: 7, RAMGB: 8, StorageGB: 256, WeightKg: 1.29, BatteryWh: 49.9, MSRP: 3199},
		{Model: "MacBook Air 13", Chip: "M2", CoresCPU: 8, CoresGPU: 8, RAMGB: 16, StorageGB: 512, WeightKg: 1.24, BatteryWh: 52.6, MSRP: 5199, Ports: "2x Thunderbolt / USB 4, MagSafe 3"},
		{Model: "MacBook Air 15", Chip: "M3", CoresCPU: 8, CoresGPU: 10, RAMGB: 16, StorageGB: 512, WeightKg: 1.51, BatteryWh: 66.5, MSRP: 6299},
		{Model: "MacBook Pro 14", Chip: "M3 Pro", CoresCPU: 11, CoresGPU: 14, RAMGB: 18, StorageGB: 512, WeightKg: 1.61, BatteryWh: 72.4, MSRP: 8499, Ports: "3x Thunderbolt 4, HDMI, SDXC, MagSafe 3"},
		{Model: "MacBook Pro 16", Chip: "M3 Max", CoresCPU: 16, CoresGPU: 40, RAMGB: 48, StorageGB: 1024, WeightKg: 2.16, BatteryWh: 100, MSRP: 15999},
	}
}

func testSource(macs []hardware.MacSpec) catalog.Source {
	return catalog.StaticSource{Data: catalog.Dataset{Macs: macs, Assumptions: tco.DefaultAssumptions()}}
}

func testComposer() *recommend.Composer {
	scorer := scoring.NewScorer(scoring.DefaultEfficiency(), discardLogger())
	ranker := scoring.NewRanker(scorer, discardLogger())
	return recommend.NewComposer(ranker, recommend.NewTemplates(), carbon.DefaultFactors(), discardLogger())
}

type routerOpts struct {
	hermes    hermes.Client
	collector collector.Client
	source    catalog.Source
}

func setupTestRouter(ms *MockStore, opts routerOpts) http.Handler {
	if opts.source == nil {
		opts.source = testSource(testMacs())
	}
	cfg := config.ServerConfig{AdminToken: "test-token", RateLimitPerMinute: 1000}
	return NewRouter(ms, opts.hermes, opts.collector, opts.source, testComposer(), cfg, discardLogger())
}

func do(router http.Handler, method, path, user string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func TestRouter_RequiresUserID(t *testing.T) {
	router := setupTestRouter(new(MockStore), routerOpts{})

	w := do(router, "GET", "/api/v1/recommend/matches", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "X-User-ID header required")
}

func TestGetProfile_NotFound(t *testing.T) {
	ms := new(MockStore)
	ms.On("GetProfile", mock.Anything, "u1").Return(nil, nil)
	router := setupTestRouter(ms, routerOpts{})

	w := do(router, "GET", "/api/v1/profiles/me", "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "profile not found", decodeMap(t, w)["error"])
}

func TestGetProfile_StoreError(t *testing.T) {
	ms := new(MockStore)
	ms.On("GetProfile", mock.Anything, "u1").Return(nil, errors.New("connection refused"))
	router := setupTestRouter(ms, routerOpts{})

	w := do(router, "GET", "/api/v1/profiles/me", "u1", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPutProfile(t *testing.T) {
	ms := new(MockStore)
	mh := new(MockHermes)
	ms.On("ReplaceProfile", mock.Anything, mock.MatchedBy(func(p *store.Profile) bool {
		return p.UserID == "u1" && p.Machine.Processor == "Intel i7" && len(p.Applications) == 2 && !p.ImportedAt.IsZero()
	})).Return(nil)
	mh.On("Publish", "macmatch.profile.u1.imported", mock.MatchedBy(func(e hermes.ProfileImportedEvent) bool {
		return e.Source == "json" && e.Applications == 2
	})).Return(nil)
	router := setupTestRouter(ms, routerOpts{hermes: mh})

	body := `{"email":"u1@example.com","machine":{"processor":"Intel i7","total_memory_gb":"16 GB","physical_cores":4},"applications":["Slack","Docker Desktop"]}`
	w := do(router, "PUT", "/api/v1/profiles/me", "u1", strings.NewReader(body))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decodeMap(t, w)
	assert.Equal(t, "u1", out["user_id"])
	assert.Equal(t, "u1@example.com", out["email"])
	ms.AssertExpectations(t)
	mh.AssertExpectations(t)
}

func TestPutProfile_EmailUserIDStaysOneSubjectToken(t *testing.T) {
	ms := new(MockStore)
	mh := new(MockHermes)
	ms.On("ReplaceProfile", mock.Anything, mock.Anything).Return(nil)
	mh.On("Publish", "macmatch.profile.jane%2Edoe@example%2Ecom.imported", mock.MatchedBy(func(e hermes.ProfileImportedEvent) bool {
		return e.UserID == "jane.doe@example.com"
	})).Return(nil)
	router := setupTestRouter(ms, routerOpts{hermes: mh})

	body := `{"machine":{"processor":"Intel i7","total_memory_gb":"16 GB"}}`
	w := do(router, "PUT", "/api/v1/profiles/me", "jane.doe@example.com", strings.NewReader(body))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	mh.AssertExpectations(t)
}

func TestPutProfile_SchemaViolation(t *testing.T) {
	ms := new(MockStore)
	router := setupTestRouter(ms, routerOpts{})

	cases := map[string]string{
		"missing machine":   `{"email":"x"}`,
		"missing processor": `{"machine":{"total_memory_gb":"16 GB"}}`,
		"negative cores":    `{"machine":{"processor":"i7","total_memory_gb":"16","physical_cores":-1}}`,
		"unknown field":     `{"machine":{"processor":"i7","total_memory_gb":"16"},"role":"admin"}`,
		"not json":          `processor=i7`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(router, "PUT", "/api/v1/profiles/me", "u1", strings.NewReader(body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			out := decodeMap(t, w)
			assert.Equal(t, "invalid profile", out["error"])
			assert.NotEmpty(t, out["details"])
		})
	}
	ms.AssertNotCalled(t, "ReplaceProfile", mock.Anything, mock.Anything)
}

func TestExportCSV(t *testing.T) {
	ms := new(MockStore)
	ms.On("GetProfile", mock.Anything, "u1").Return(storedProfile("u1", "Slack", "Zoom"), nil)
	router := setupTestRouter(ms, routerOpts{})

	w := do(router, "GET", "/api/v1/profiles/me/export.csv", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	machine, apps, err := hardware.ReadMachineCSV(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "DESKTOP-42", machine.ComputerName)
	assert.Equal(t, []string{"Slack", "Zoom"}, apps)
}

func TestEnhanced(t *testing.T) {
	ms := new(MockStore)
	mh := new(MockHermes)
	ms.On("GetProfile", mock.Anything, "u1").Return(storedProfile("u1"), nil)
	mh.On("Publish", mock.MatchedBy(func(s string) bool {
		return strings.HasPrefix(s, "macmatch.recommendation.") && strings.HasSuffix(s, ".computed")
	}), mock.MatchedBy(func(e hermes.RecommendationComputedEvent) bool {
		return e.UserID == "u1" && e.Persona == "General" && e.Years == 3
	})).Return(nil)
	router := setupTestRouter(ms, routerOpts{hermes: mh})

	w := do(router, "GET", "/api/v1/recommend/enhanced", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := decodeMap(t, w)
	assert.NotEmpty(t, out["id"])
	assert.Equal(t, "General", out["persona"])
	assert.EqualValues(t, 3, out["years"])
	assert.Len(t, out["tiers"], 3)
	assert.Contains(t, out, "performance_radar")
	mh.AssertExpectations(t)
}

func TestEnhanced_QueryOverrides(t *testing.T) {
	ms := new(MockStore)
	ms.On("GetProfile", mock.Anything, "u1").Return(storedProfile("u1", "Microsoft Outlook"), nil)
	router := setupTestRouter(ms, routerOpts{})

	w := do(router, "GET", "/api/v1/recommend/enhanced?apps=Docker%20Desktop,Microsoft%20Teams&years=5&windowsPrice=4500", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decodeMap(t, w)
	assert.Equal(t, "Developer", out["persona"])
	assert.EqualValues(t, 5, out["years"])
	assert.EqualValues(t, 4500, out["windows_price"])
	assert.Len(t, out["app_compatibility"], 2)

	w = do(router, "GET", "/api/v1/recommend/enhanced?persona=designer&years=4", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out = decodeMap(t, w)
	assert.Equal(t, "Designer", out["persona"])
	assert.EqualValues(t, 3, out["years"], "unsupported horizon falls back to 3")

	w = do(router, "GET", "/api/v1/recommend/enhanced?persona=astronaut", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OfficeWorker", decodeMap(t, w)["persona"], "unknown persona falls back to detection")
}

func TestRecommend_InvalidWindowsPrice(t *testing.T) {
	router := setupTestRouter(new(MockStore), routerOpts{})

	for _, q := range []string{"windowsPrice=-5", "windowsPrice=cheap"} {
		w := do(router, "GET", "/api/v1/recommend/tco?"+q, "u1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestTCO(t *testing.T) {
	ms := new(MockStore)
	ms.On("GetProfile", mock.Anything, "u1").Return(storedProfile("u1"), nil)
	router := setupTestRouter(ms, routerOpts{})

	w := do(router, "GET", "/api/v1/recommend/tco?windowsPrice=6000", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cmp recommend.Comparison
	require.NoError(t, json.NewDecoder(w.Body).Decode(&cmp))
	assert.Equal(t, "MacBook Air 13", cmp.SuggestedModel)
	assert.Equal(t, "M2", cmp.Chip)
	assert.InDelta(t, 8190.48, cmp.Windows.Total, 0.01)
	assert.InDelta(t, 4099.84, cmp.SavingsAED, 0.01)
	assert.Equal(t, 50.0, cmp.SavingsPct)
	assert.Equal(t, 6000.0, cmp.WindowsPrice)
	assert.Len(t, cmp.MacAdvantages, 6)
}

func TestTiersAndMatches(t *testing.T) {
	ms := new(MockStore)
	ms.On("GetProfile", mock.Anything, "u1").Return(storedProfile("u1"), nil)
	router := setupTestRouter(ms, routerOpts{})

	w := do(router, "GET", "/api/v1/recommend/tiers", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tiers []recommend.TierOption
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tiers))
	require.Len(t, tiers, 3)
	assert.Equal(t, scoring.TierGood, tiers[0].Tier)
	assert.Equal(t, scoring.TierBest, tiers[2].Tier)
	for _, tier := range tiers {
		assert.LessOrEqual(t, tier.SavingsPct, tco.MaxSavingsPct)
		assert.GreaterOrEqual(t, tier.Savings, 0.0)
	}

	w = do(router, "GET", "/api/v1/recommend/matches", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var matches []map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&matches))
	require.Len(t, matches, 3)
	assert.NotEmpty(t, matches[0]["cpu_note"])
	assert.NotEmpty(t, matches[0]["price_note"])
}

func TestRecommend_NoProfile(t *testing.T) {
	ms := new(MockStore)
	ms.On("GetProfile", mock.Anything, "u1").Return(nil, nil)
	router := setupTestRouter(ms, routerOpts{})

	w := do(router, "GET", "/api/v1/recommend/enhanced", "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "profile not found", decodeMap(t, w)["error"])
}

func TestRecommend_CollectorFallback(t *testing.T) {
	ms := new(MockStore)
	mc := new(mockCollector)
	machine := i7Machine()
	ms.On("GetProfile", mock.Anything, "u1").Return(nil, nil)
	mc.On("MachineInfo", mock.Anything).Return(&machine, nil)
	mc.On("InstalledApplications", mock.Anything).Return([]collector.InstalledApp{{Name: "Docker Desktop"}, {Name: "Git"}}, nil)
	router := setupTestRouter(ms, routerOpts{collector: mc})

	w := do(router, "GET", "/api/v1/recommend/enhanced", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Developer", decodeMap(t, w)["persona"])
	mc.AssertExpectations(t)
	ms.AssertNotCalled(t, "ReplaceProfile", mock.Anything, mock.Anything)
}

func TestRecommend_CollectorDown(t *testing.T) {
	ms := new(MockStore)
	mc := new(mockCollector)
	ms.On("GetProfile", mock.Anything, "u1").Return(nil, nil)
	mc.On("MachineInfo", mock.Anything).Return(nil, errors.New("dial tcp: refused"))
	router := setupTestRouter(ms, routerOpts{collector: mc})

	w := do(router, "GET", "/api/v1/recommend/tiers", "u1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	mc.AssertNotCalled(t, "InstalledApplications", mock.Anything)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	ms := new(MockStore)
	mh := new(MockHermes)
	ms.On("GetProfile", mock.Anything, "u1").Return(storedProfile("u1"), nil)
	mh.On("Publish", mock.MatchedBy(func(s string) bool { return strings.HasSuffix(s, ".unmatched") }),
		mock.MatchedBy(func(e hermes.RecommendationUnmatchedEvent) bool { return e.CatalogSize == 0 && e.UserID == "u1" })).Return(nil)
	router := setupTestRouter(ms, routerOpts{hermes: mh, source: testSource(nil)})

	for _, path := range []string{"/api/v1/recommend/enhanced", "/api/v1/recommend/tco", "/api/v1/recommend/tiers", "/api/v1/recommend/matches"} {
		w := do(router, "GET", path, "u1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "could not compute recommendation", decodeMap(t, w)["error"], path)
	}
	mh.AssertNumberOfCalls(t, "Publish", 4)
}

func TestRecommend_CatalogUnavailable(t *testing.T) {
	ms := new(MockStore)
	ms.On("GetProfile", mock.Anything, "u1").Return(storedProfile("u1"), nil)
	router := setupTestRouter(ms, routerOpts{source: failingSource{}})

	w := do(router, "GET", "/api/v1/recommend/enhanced", "u1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "catalog unavailable", decodeMap(t, w)["error"])
}

func TestRecommend_PublishFailureDoesNotFailRequest(t *testing.T) {
	ms := new(MockStore)
	mh := new(MockHermes)
	ms.On("GetProfile", mock.Anything, "u1").Return(storedProfile("u1"), nil)
	mh.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats: connection closed"))
	router := setupTestRouter(ms, routerOpts{hermes: mh})

	w := do(router, "GET", "/api/v1/recommend/enhanced", "u1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

const importCSV = `ComputerName,Manufacturer,Model,OSName,OSVersion,BuildNumber,Processor,PhysicalCores,LogicalCores,TotalMemoryGB,Disks,Applications
DESK-7,Dell Inc.,Latitude 7420,Windows 11 Pro,10.0.22631,22631,Intel(R) Core(TM) i7-1185G7,4,8,15.75,C: NTFS 476.34GB 120.5GB,Docker Desktop;Git;Slack
`

func TestImportRecommend(t *testing.T) {
	ms := new(MockStore)
	mh := new(MockHermes)
	ms.On("ReplaceProfile", mock.Anything, mock.MatchedBy(func(p *store.Profile) bool {
		return p.UserID == "u1" && p.Email == "u1@example.com" && p.Provider == "google" &&
			p.Machine.ComputerName == "DESK-7" && len(p.Applications) == 3
	})).Return(nil)
	mh.On("Publish", "macmatch.profile.u1.imported", mock.MatchedBy(func(e hermes.ProfileImportedEvent) bool {
		return e.Source == "csv"
	})).Return(nil)
	mh.On("Publish", mock.MatchedBy(func(s string) bool { return strings.HasSuffix(s, ".computed") }), mock.Anything).Return(nil)
	router := setupTestRouter(ms, routerOpts{hermes: mh})

	req := httptest.NewRequest("POST", "/api/v1/import/recommend", strings.NewReader(importCSV))
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("X-User-Email", "u1@example.com")
	req.Header.Set("X-Auth-Provider", "google")
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Developer", decodeMap(t, w)["persona"])
	ms.AssertExpectations(t)
	mh.AssertExpectations(t)
}

func TestImportRecommend_BadCSV(t *testing.T) {
	ms := new(MockStore)
	router := setupTestRouter(ms, routerOpts{})

	w := do(router, "POST", "/api/v1/import/recommend", "u1", bytes.NewBufferString(""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, hardware.ErrEmptyImport.Error(), decodeMap(t, w)["error"])
	ms.AssertNotCalled(t, "ReplaceProfile", mock.Anything, mock.Anything)
}

func TestExplain(t *testing.T) {
	ms := new(MockStore)
	ms.On("GetProfile", mock.Anything, "u1").Return(storedProfile("u1"), nil)
	router := setupTestRouter(ms, routerOpts{})

	w := do(router, "GET", "/api/v1/scoring/explain?persona=Developer", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out recommend.Explain
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Len(t, out.Entries, len(testMacs()))
	require.NotNil(t, out.Persona)
	assert.Equal(t, scoring.PersonaDeveloper, *out.Persona)
	assert.NotEmpty(t, out.Frontier)
	for _, e := range out.Entries {
		assert.GreaterOrEqual(t, e.Similarity, 0.0)
		assert.LessOrEqual(t, e.Similarity, 1.0)
		assert.NotEmpty(t, e.Breakdown.Axes)
	}
}

func TestAdmin_RequiresToken(t *testing.T) {
	router := setupTestRouter(new(MockStore), routerOpts{})

	w := do(router, "GET", "/api/v1/admin/profiles", "ops", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func adminRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-User-ID", "ops")
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}

func TestAdmin_ListProfiles(t *testing.T) {
	ms := new(MockStore)
	ms.On("ListProfiles", mock.Anything, store.ProfileFilter{Provider: "google", Limit: 10, Offset: 5}).
		Return([]*store.Profile{storedProfile("a"), storedProfile("b")}, nil)
	ms.On("ListProfiles", mock.Anything, store.ProfileFilter{}).Return(nil, nil)
	router := setupTestRouter(ms, routerOpts{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("GET", "/api/v1/admin/profiles?provider=google&limit=10&offset=5"))
	require.Equal(t, http.StatusOK, w.Code)
	var out []store.Profile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Len(t, out, 2)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("GET", "/api/v1/admin/profiles"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("GET", "/api/v1/admin/profiles?limit=-1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_DeleteProfile(t *testing.T) {
	ms := new(MockStore)
	mh := new(MockHermes)
	ms.On("DeleteProfile", mock.Anything, "u9").Return(nil)
	mh.On("Publish", "macmatch.profile.u9.deleted", mock.MatchedBy(func(e hermes.ProfileDeletedEvent) bool {
		return e.DeletedBy == "ops"
	})).Return(nil)
	router := setupTestRouter(ms, routerOpts{hermes: mh})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest("DELETE", "/api/v1/admin/profiles/u9"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deleted", decodeMap(t, w)["status"])
	ms.AssertExpectations(t)
	mh.AssertExpectations(t)
}

func TestMetricsRouter(t *testing.T) {
	ms := new(MockStore)
	ms.On("Ping", mock.Anything).Return(nil).Once()
	ms.On("Ping", mock.Anything).Return(errors.New("pool closed")).Once()
	router := NewMetricsRouter(ms)

	w := do(router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeMap(t, w)["status"])

	w = do(router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(router, "GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
