// gemquest is a first-person maze game: find the magic gem and carry it to
// the GemContainer.
//
// Usage:
//
//	gemquest                 - Play in the terminal (same as "play")
//	gemquest play            - Play in the terminal
//	gemquest window          - Play in a desktop window
//	gemquest menu            - Pick a map and view best times interactively
//	gemquest serve           - Start SSH server for remote play
//	gemquest scores [map]    - Show best times
//	gemquest maps list|show|validate
//
// Global flags:
//
//	--config <path>     - Tuning file (default: search ~/.gemquest/configs, ./configs)
//	--map <id|path>     - Map id or map file (default: classic)
//	--db <path>         - Runs database (default: ~/.gemquest/runs.db)
//	--log-level <level> - debug, info, warn, error
//	--player <name>     - Name recorded with finished runs
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gemquest/internal/config"
	"github.com/vovakirdan/gemquest/internal/core"
	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagMap      string
	flagDBPath   string
	flagLogLevel string
	flagPlayer   string
)

// logger is the process-wide logger, configured in PersistentPreRunE.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "gemquest",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gemquest",
	Short: "GemQuest - find the magic gem in a 3D maze",
	Long: `GemQuest is a first-person maze game. Find the magic gem and
yeet it into the GemContainer(TM)!

Available commands:
  play     - Play in the terminal (default)
  window   - Play in a desktop window
  menu     - Interactive map picker with best times
  serve    - Start SSH server for remote play
  scores   - View best times
  maps     - List, show and validate maps

Examples:
  gemquest
  gemquest play --map boring
  gemquest window --map ./my-maze.yaml
  gemquest serve
  gemquest scores classic`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagMap, "map", "", "Map id or path to a map file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name recorded with finished runs")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(mapsCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	return nil
}

// loadConfig reads the tuning file and applies command line overrides.
func loadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagMap != "" {
		cfg.Map = flagMap
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg, nil
}

// openStore opens the runs database. Failure is not fatal: the game works
// without a leaderboard.
func openStore(cfg config.GameConfig) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", cfg.Storage.DBPath, "err", err)
		return nil
	}
	return store
}

// runtimeConfig describes the local terminal and player.
func runtimeConfig(cfg config.GameConfig) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}
	rt.TickInterval = cfg.TickInterval
	rt.Player = playerName()
	return rt
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return core.DefaultConfig().Player
}

// userMapsDir holds extra map files offered by the menu and the server.
func userMapsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gemquest", "maps")
}

// logFilePath is where the terminal host logs while it owns the screen.
func logFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gemquest.log"
	}
	return filepath.Join(home, ".gemquest", "gemquest.log")
}

// availableMaps returns the embedded maps, the user's map directory and the
// configured map when it is a file, without duplicates.
func availableMaps(cfg config.GameConfig) ([]maps.Map, error) {
	levels, err := maps.Builtin()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(levels))
	for _, m := range levels {
		seen[m.Fingerprint()] = true
	}
	add := func(m maps.Map) {
		if !seen[m.Fingerprint()] {
			seen[m.Fingerprint()] = true
			levels = append(levels, m)
		}
	}

	if dir := userMapsDir(); dir != "" {
		extra, bad, err := maps.LoadDir(dir)
		switch {
		case err == nil:
			for _, m := range extra {
				add(m)
			}
		case !errors.Is(err, os.ErrNotExist):
			logger.Warn("could not read user maps", "dir", dir, "err", err)
		}
		for _, e := range bad {
			logger.Warn("skipping map", "err", e)
		}
	}

	if cfg.Map != "" {
		m, err := maps.Resolve(cfg.Map)
		if err != nil {
			return nil, err
		}
		add(m)
	}
	return levels, nil
}
