// Package cli defines the command tree. The bare command launches the
// interactive UI; subcommands cover scripted use.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/app"
	"taskdeck/internal/config"
	"taskdeck/internal/storage"
	"taskdeck/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Local task list manager",
	Long: `taskdeck keeps a local list of tasks with categories, due dates,
priorities, search, and undo/redo, persisted to a sqlite database.

Run with no arguments for the interactive UI; use the subcommands for
scripting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.ResolveConfigPath()
		firstLaunch := false
		if _, err := os.Stat(configPath); err != nil {
			firstLaunch = errors.Is(err, os.ErrNotExist)
		}
		a, cfg, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		if !a.HasVisited() {
			firstLaunch = true
		}
		a.StartAutoSave()
		return ui.Run(a, cfg, firstLaunch)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// setup loads the config, opens the gateway, and builds the app. cleanup
// flushes and closes both.
func setup() (*app.App, config.Config, func(), error) {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("load config: %w", err)
	}
	gw, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("open database: %w", err)
	}
	a := app.New(gw, app.Options{
		AutoSaveInterval: time.Duration(cfg.AutoSaveInterval) * time.Second,
		Filter:           cfg.DefaultFilter,
		Sort:             cfg.DefaultSort,
	})
	cleanup := func() {
		a.Close()
		gw.Close()
	}
	return a, cfg, cleanup, nil
}
