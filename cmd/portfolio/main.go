// Package main implements the portfolio command: the site server plus
// maintenance commands for the project table and contact inbox.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlm272/maggiemayer-portfolio/internal/config"
)

var version = "dev"

// App carries the persistent flags shared by every subcommand
type App struct {
	ConfigPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "portfolio",
		Short:        "Maggie Mayer portfolio site",
		Long:         `portfolio serves the portfolio site and inspects its project table, media and contact inbox.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", os.Getenv("PORTFOLIO_CONFIG"), "Path to a YAML config file")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newMessagesCmd(app))
	return cmd
}

func (a *App) load() (*config.Config, error) {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
