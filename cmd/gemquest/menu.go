package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemquest/internal/maze/game"
	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a map and view best times interactively",
	Long: `Start GemQuest in interactive menu mode.

The menu lists the built-in maps, maps in ~/.gemquest/maps and the map
given with --map. After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Best times
  Q            - Quit

Examples:
  gemquest menu
  gemquest menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	levels, err := availableMaps(cfg)
	if err != nil {
		return err
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	restore, logErr := tui.LogToFile(logger, logFilePath())
	if logErr != nil {
		logger.Warn("logging to stderr", "err", logErr)
		restore = func() {}
	}
	defer restore()

	rt := runtimeConfig(cfg)
	var last string
	for {
		menuResult, err := tui.RunMenu(levels, store, rt)
		if err != nil {
			return err
		}
		rt = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(levels, store, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			break
		}

		lvl, ok := findMap(levels, menuResult.MapID)
		if !ok {
			break
		}

		res, err := tui.Run(tui.Options{
			Map:     lvl,
			Config:  cfg,
			Runtime: rt,
			Store:   store,
			Logger:  logger,
		})
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if res.Err != nil {
			return fmt.Errorf("game stopped: %w", res.Err)
		}
		if res.Finished {
			last = game.FinishMessage(res.Elapsed)
		}
	}

	if last != "" {
		restore()
		fmt.Println(last)
	}
	return nil
}

func findMap(levels []maps.Map, id string) (maps.Map, bool) {
	for _, m := range levels {
		if m.ID == id {
			return m, true
		}
	}
	return maps.Map{}, false
}
