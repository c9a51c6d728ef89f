package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const machineJSON = `{
	"computerName": "DESKTOP-42",
	"manufacturer": "Dell Inc.",
	"model": "Latitude 7420",
	"osName": "Microsoft Windows 11 Pro",
	"osVersion": "10.0.22631",
	"buildNumber": "22631",
	"processor": "11th Gen Intel(R) Core(TM) i7-1185G7 @ 3.00GHz",
	"logicalCores": 8,
	"physicalCores": 4,
	"totalMemoryGB": "15.7 GB",
	"disks": [{"name": "C:\\", "fileSystem": "NTFS", "sizeGB": "476.3 GB", "freeGB": "120.1 GB"}]
}`

func newAgent(t *testing.T, token string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/machineinfo", func(w http.ResponseWriter, r *http.Request) {
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, machineJSON)
	})
	mux.HandleFunc("/api/apps", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name": "Slack", "version": "4.36"}, {"name": "Docker Desktop"}]`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestMachineInfo(t *testing.T) {
	srv := newAgent(t, "secret")
	c := NewHTTPClient(srv.URL+"/", "secret")

	p, err := c.MachineInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "DESKTOP-42", p.ComputerName)
	assert.Equal(t, 4, p.PhysicalCores)
	assert.Equal(t, "15.7 GB", p.TotalMemory)
	assert.Equal(t, 16, p.MemoryGB())
	require.Len(t, p.Disks, 1)
	assert.Equal(t, "476.3 GB", p.Disks[0].Size)
	assert.Equal(t, 476, p.StorageGB(256))
}

func TestMachineInfo_Unauthorized(t *testing.T) {
	srv := newAgent(t, "secret")
	c := NewHTTPClient(srv.URL, "wrong")

	_, err := c.MachineInfo(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestInstalledApplications(t *testing.T) {
	srv := newAgent(t, "")
	c := NewHTTPClient(srv.URL, "")

	apps, err := c.InstalledApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "4.36", apps[0].Version)
	assert.Equal(t, []string{"Slack", "Docker Desktop"}, ApplicationNames(apps))
}

func TestInstalledApplications_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"not": "a list"}`)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, "").InstalledApplications(context.Background())
	assert.ErrorContains(t, err, "decode applications")
}

func TestApplicationNames_Caps(t *testing.T) {
	apps := make([]InstalledApp, 0, 30)
	apps = append(apps, InstalledApp{Name: "  "})
	for i := 0; i < 29; i++ {
		apps = append(apps, InstalledApp{Name: fmt.Sprintf("App %02d", i)})
	}

	names := ApplicationNames(apps)
	require.Len(t, names, MaxApplications)
	assert.Equal(t, "App 00", names[0])
	assert.Equal(t, "App 19", names[MaxApplications-1])
}
