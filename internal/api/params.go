package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/MacMatch/internal/recommend"
	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
)

// recommendParams are the query parameters shared by the recommend endpoints.
// An unknown persona is treated as absent and a bad years value falls back to
// the default horizon downstream.
type recommendParams struct {
	Persona      *scoring.Persona
	Years        int
	WindowsPrice float64
	Apps         []string
}

func parseRecommendParams(r *http.Request) (recommendParams, error) {
	q := r.URL.Query()
	var p recommendParams

	if v := q.Get("persona"); v != "" {
		if persona, ok := scoring.ParsePersona(v); ok {
			p.Persona = &persona
		}
	}
	if v := q.Get("years"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Years = n
		}
	}
	if v := q.Get("windowsPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			return p, fmt.Errorf("invalid windowsPrice %q", v)
		}
		p.WindowsPrice = price
	}
	if v := q.Get("apps"); v != "" {
		p.Apps = splitApps(v)
	}
	return p, nil
}

// request builds the composer request, preferring the explicit app list over
// the stored one.
func (p recommendParams) request(profile *resolvedProfile) recommend.Request {
	apps := profile.Applications
	if p.Apps != nil {
		apps = p.Apps
	}
	return recommend.Request{
		Profile:      profile.Machine,
		Persona:      p.Persona,
		Apps:         apps,
		Years:        p.Years,
		WindowsPrice: p.WindowsPrice,
	}
}

func splitApps(v string) []string {
	parts := strings.Split(v, ",")
	apps := make([]string, 0, len(parts))
	for _, a := range parts {
		if a = strings.TrimSpace(a); a != "" {
			apps = append(apps, a)
		}
	}
	return apps
}

func parseIntParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return n, nil
}
