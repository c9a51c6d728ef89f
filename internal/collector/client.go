// Package collector talks to the inventory agent running on the Windows
// machine. The agent reports hardware and installed applications over HTTP.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
)

// MaxApplications caps the application names used for persona detection.
const MaxApplications = 20

type Client interface {
	MachineInfo(ctx context.Context) (*hardware.MachineProfile, error)
	InstalledApplications(ctx context.Context) ([]InstalledApp, error)
}

// InstalledApp is one uninstall-registry entry reported by the agent.
type InstalledApp struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	Publisher       string `json:"publisher"`
	InstallDate     string `json:"installDate"`
	UninstallString string `json:"uninstallString"`
	Architecture    string `json:"architecture"`
	Scope           string `json:"scope"`
}

type machineInfo struct {
	ComputerName  string     `json:"computerName"`
	Manufacturer  string     `json:"manufacturer"`
	Model         string     `json:"model"`
	OSName        string     `json:"osName"`
	OSVersion     string     `json:"osVersion"`
	BuildNumber   string     `json:"buildNumber"`
	Processor     string     `json:"processor"`
	LogicalCores  int        `json:"logicalCores"`
	PhysicalCores int        `json:"physicalCores"`
	TotalMemoryGB string     `json:"totalMemoryGB"`
	Disks         []diskInfo `json:"disks"`
}

type diskInfo struct {
	Name       string `json:"name"`
	FileSystem string `json:"fileSystem"`
	SizeGB     string `json:"sizeGB"`
	FreeGB     string `json:"freeGB"`
}

func (m machineInfo) profile() *hardware.MachineProfile {
	p := &hardware.MachineProfile{
		ComputerName:  m.ComputerName,
		Manufacturer:  m.Manufacturer,
		Model:         m.Model,
		OSName:        m.OSName,
		OSVersion:     m.OSVersion,
		BuildNumber:   m.BuildNumber,
		Processor:     m.Processor,
		PhysicalCores: m.PhysicalCores,
		LogicalCores:  m.LogicalCores,
		TotalMemory:   m.TotalMemoryGB,
	}
	for _, d := range m.Disks {
		p.Disks = append(p.Disks, hardware.DiskInfo{
			Name:       d.Name,
			FileSystem: d.FileSystem,
			Size:       d.SizeGB,
			Free:       d.FreeGB,
		})
	}
	return p
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("collector %s %s: %d %s", method, path, resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *HTTPClient) MachineInfo(ctx context.Context) (*hardware.MachineProfile, error) {
	data, err := c.doReq(ctx, http.MethodGet, "/api/machineinfo")
	if err != nil {
		return nil, err
	}
	var mi machineInfo
	if err := json.Unmarshal(data, &mi); err != nil {
		return nil, fmt.Errorf("decode machine info: %w", err)
	}
	return mi.profile(), nil
}

func (c *HTTPClient) InstalledApplications(ctx context.Context) ([]InstalledApp, error) {
	data, err := c.doReq(ctx, http.MethodGet, "/api/apps")
	if err != nil {
		return nil, err
	}
	var apps []InstalledApp
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return apps, nil
}

// ApplicationNames returns the first MaxApplications non-blank names.
func ApplicationNames(apps []InstalledApp) []string {
	names := make([]string, 0, min(len(apps), MaxApplications))
	for _, a := range apps {
		if len(names) == MaxApplications {
			break
		}
		if n := strings.TrimSpace(a.Name); n != "" {
			names = append(names, n)
		}
	}
	return names
}
