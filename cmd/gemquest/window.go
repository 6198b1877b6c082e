package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/platform/window"
)

var flagFullscreen bool

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Play GemQuest in a desktop window. The mouse is captured for looking
around; the window size and pixel scale come from the window section of the
tuning file.

Controls:
  W/A/S/D     - Move
  Space       - Jump
  E           - Pick up / deliver the gem
  Mouse       - Look around
  Esc         - Quit

Examples:
  gemquest window
  gemquest window --fullscreen --map boring`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start in fullscreen")
}

func runWindow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagFullscreen {
		cfg.Window.Fullscreen = true
	}

	lvl, err := maps.Resolve(cfg.Map)
	if err != nil {
		return err
	}
	for _, problem := range lvl.Grid.Lint() {
		logger.Warn("map problem", "map", lvl.ID, "problem", problem)
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	res, err := window.Run(window.Options{
		Map:    lvl,
		Config: cfg,
		Player: playerName(),
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return report(res.Finished, res.Elapsed, res.Err)
}
