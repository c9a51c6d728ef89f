// Package catalog loads the Mac catalog and cost assumptions once and hands
// them out as an immutable Dataset.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
	"github.com/MikeSquared-Agency/MacMatch/internal/tco"
)

// Dataset is the read-only input shared by every computation.
type Dataset struct {
	Macs        []hardware.MacSpec
	Assumptions tco.Assumptions
}

// Source yields the dataset.
type Source interface {
	Load() (Dataset, error)
}

// StaticSource serves a fixed dataset.
type StaticSource struct {
	Data Dataset
}

// Load returns the fixed dataset.
func (s StaticSource) Load() (Dataset, error) {
	return s.Data, nil
}

// FileSource reads the catalog CSV and assumptions file on first use and
// caches the result for the life of the process. A missing catalog file
// yields an empty catalog; a missing assumptions file yields the defaults.
type FileSource struct {
	macsPath        string
	assumptionsPath string
	logger          *slog.Logger

	once sync.Once
	data Dataset
	err  error
}

// NewFileSource creates a FileSource. Nothing is read until Load is called.
func NewFileSource(macsPath, assumptionsPath string, logger *slog.Logger) *FileSource {
	return &FileSource{
		macsPath:        macsPath,
		assumptionsPath: assumptionsPath,
		logger:          logger,
	}
}

// Load returns the cached dataset, reading it on the first call.
func (s *FileSource) Load() (Dataset, error) {
	s.once.Do(s.load)
	return s.data, s.err
}

func (s *FileSource) load() {
	macs, err := LoadMacs(s.macsPath)
	if err != nil {
		s.err = err
		return
	}
	a, err := LoadAssumptions(s.assumptionsPath)
	if err != nil {
		s.err = err
		return
	}
	s.data = Dataset{Macs: macs, Assumptions: a}
	s.logger.Info("catalog loaded",
		"path", s.macsPath,
		"entries", len(macs),
		"assumptions", s.assumptionsPath,
	)
}

// LoadMacs reads a catalog CSV file; a missing file is an empty catalog.
func LoadMacs(path string) ([]hardware.MacSpec, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	macs, err := ParseMacCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return macs, nil
}

// LoadAssumptions reads a YAML (or JSON) key/value assumptions file over the
// defaults; a missing file yields the defaults.
func LoadAssumptions(path string) (tco.Assumptions, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return tco.DefaultAssumptions(), nil
	}
	if err != nil {
		return tco.Assumptions{}, fmt.Errorf("reading assumptions: %w", err)
	}
	return ParseAssumptions(data)
}

// ParseAssumptions decodes assumption file contents.
func ParseAssumptions(data []byte) (tco.Assumptions, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return tco.Assumptions{}, fmt.Errorf("parsing assumptions: %w", err)
	}
	return tco.DecodeAssumptions(raw)
}
