package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/MacMatch/internal/config"
)

var version = "dev"

// app is the state shared by subcommands once the root command has loaded
// configuration.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "macmatch",
		Short: "MacMatch - Windows to MacBook recommendation engine",
		Long: `MacMatch compares a Windows machine with the MacBook catalog.

It ranks equivalent Macs, prices them against the Windows machine over a
three or five year horizon and explains the result.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cfg.Logging, cmd.ErrOrStderr())
			slog.SetDefault(a.logger)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file")

	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newRecommendCommand(a))
	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}
