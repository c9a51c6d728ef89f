// seed_profiles.go - standalone script to load collector CSV exports into the MacMatch profile store.
//
// Each <user>.csv in the directory is stored as the profile of user <user>.
//
// Usage:
//
//	go run scripts/seed_profiles.go -dir ./exports -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
)

type profileUpload struct {
	Provider     string                  `json:"provider,omitempty"`
	Machine      hardware.MachineProfile `json:"machine"`
	Applications []string                `json:"applications"`
}

type seed struct {
	userID string
	body   profileUpload
}

func main() {
	dir := flag.String("dir", "exports", "directory of collector CSV exports")
	apiURL := flag.String("api", "http://localhost:8700", "MacMatch API base URL")
	provider := flag.String("provider", "seed", "provider recorded on each profile")
	dryRun := flag.Bool("dry-run", false, "print profiles without posting")
	flag.Parse()

	paths, err := filepath.Glob(filepath.Join(*dir, "*.csv"))
	if err != nil {
		log.Fatalf("glob %s: %v", *dir, err)
	}
	sort.Strings(paths)

	var seeds []seed
	for _, path := range paths {
		s, err := readSeed(path, *provider)
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			continue
		}
		seeds = append(seeds, s)
	}

	log.Printf("parsed %d profiles from %s", len(seeds), *dir)

	if *dryRun {
		for i, s := range seeds {
			m := s.body.Machine
			fmt.Printf("[%d] %s: %s, %d GB RAM, %d apps\n", i+1, s.userID, m.Processor, m.MemoryGB(), len(s.body.Applications))
		}
		return
	}

	client := &http.Client{}
	stored, skipped := 0, 0
	for _, s := range seeds {
		body, _ := json.Marshal(s.body)
		req, err := http.NewRequest(http.MethodPut, *apiURL+"/api/v1/profiles/me", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", s.userID, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", s.userID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", s.userID, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			stored++
		} else {
			log.Printf("skip %q: status %d", s.userID, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d stored, %d skipped", stored, skipped)
}

func readSeed(path, provider string) (seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return seed{}, err
	}
	defer f.Close()

	machine, apps, err := hardware.ReadMachineCSV(f)
	if err != nil {
		return seed{}, err
	}
	// The profile schema wants arrays, not null.
	if machine.Disks == nil {
		machine.Disks = []hardware.DiskInfo{}
	}
	if apps == nil {
		apps = []string{}
	}

	return seed{
		userID: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		body:   profileUpload{Provider: provider, Machine: machine, Applications: apps},
	}, nil
}
