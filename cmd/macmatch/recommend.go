package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/MacMatch/internal/catalog"
	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
	"github.com/MikeSquared-Agency/MacMatch/internal/recommend"
	"github.com/MikeSquared-Agency/MacMatch/internal/scoring"
)

const (
	viewFull    = "full"
	viewTCO     = "tco"
	viewTiers   = "tiers"
	viewMatches = "matches"
	viewExplain = "explain"
)

type recommendFlags struct {
	persona      string
	years        int
	windowsPrice float64
	apps         string
	view         string
}

func newRecommendCommand(a *app) *cobra.Command {
	var f recommendFlags

	cmd := &cobra.Command{
		Use:   "recommend <profile.csv>",
		Short: "Recommend a Mac for an exported Windows profile",
		Long: `Reads a machine profile exported by the collector as CSV and prints the
recommendation as JSON. The catalog is read from the configured paths.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.recommend(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.persona, "persona", "", "persona override (e.g. Developer, Designer)")
	cmd.Flags().IntVar(&f.years, "years", 3, "TCO horizon in years (3 or 5)")
	cmd.Flags().Float64Var(&f.windowsPrice, "windows-price", 0, "Windows purchase price in AED, estimated when 0")
	cmd.Flags().StringVar(&f.apps, "apps", "", "comma-separated application list, replaces the one in the file")
	cmd.Flags().StringVar(&f.view, "view", viewFull, "output: full, tco, tiers, matches or explain")
	return cmd
}

func (a *app) recommend(cmd *cobra.Command, path string, f recommendFlags) error {
	if f.windowsPrice < 0 {
		return fmt.Errorf("invalid --windows-price %v", f.windowsPrice)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open profile: %w", err)
	}
	defer file.Close()

	profile, apps, err := hardware.ReadMachineCSV(file)
	if err != nil {
		return fmt.Errorf("read profile %s: %w", path, err)
	}

	req := recommend.Request{
		Profile:      profile,
		Apps:         apps,
		Years:        f.years,
		WindowsPrice: f.windowsPrice,
	}
	if f.apps != "" {
		req.Apps = splitList(f.apps)
	}
	if f.persona != "" {
		if p, ok := scoring.ParsePersona(f.persona); ok {
			req.Persona = &p
		} else {
			a.logger.Warn("unknown persona, detecting from applications", "persona", f.persona)
		}
	}

	ds, err := catalog.NewFileSource(a.cfg.Catalog.MacsPath, a.cfg.Catalog.AssumptionsPath, a.logger).Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	composer, err := a.newComposer()
	if err != nil {
		return err
	}

	var out any
	switch f.view {
	case viewFull:
		out, err = composer.Recommend(ds, req)
	case viewTCO:
		out, err = composer.CompareTCO(ds, req)
	case viewTiers:
		out, err = composer.Tiers(ds, req)
	case viewMatches:
		matches := composer.Matches(ds, req)
		if len(matches) == 0 {
			err = recommend.ErrNoMatches
		}
		out = matches
	case viewExplain:
		out, err = composer.Explain(ds, req)
	default:
		return fmt.Errorf("unknown --view %q", f.view)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
