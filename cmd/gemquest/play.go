package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemquest/internal/maze/game"
	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play GemQuest in the terminal. The view is drawn with half-block
characters, so a larger terminal gives a sharper picture.

Controls:
  W/A/S/D     - Move
  Space       - Jump
  E           - Pick up / deliver the gem
  Arrows      - Look around (the mouse works too)
  Esc/Q       - Quit

Logs go to ~/.gemquest/gemquest.log while the game is running.

Examples:
  gemquest play
  gemquest play --map boring
  gemquest play --map ./my-maze.yaml --player ann`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
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

	rt := runtimeConfig(cfg)
	restore, logErr := tui.LogToFile(logger, logFilePath())
	if logErr != nil {
		logger.Warn("logging to stderr", "err", logErr)
		restore = func() {}
	}

	res, runErr := tui.Run(tui.Options{
		Map:     lvl,
		Config:  cfg,
		Runtime: rt,
		Store:   store,
		Logger:  logger,
	})
	restore()

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return report(res.Finished, res.Elapsed, res.Err)
}

// report prints the outcome of a session. A failed session is an error so
// the process exits non-zero.
func report(finished bool, elapsed time.Duration, err error) error {
	if err != nil {
		return fmt.Errorf("game stopped: %w", err)
	}
	if finished {
		fmt.Println(game.FinishMessage(elapsed))
	}
	return nil
}
