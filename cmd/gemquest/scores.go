package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [map]",
	Short: "Show best times",
	Long: `Without an argument, show a summary of every map that has been
completed. With a map id or map file, show its best times.

Examples:
  gemquest scores
  gemquest scores classic
  gemquest scores ./my-maze.yaml --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	lvl, err := maps.Resolve(args[0])
	if err != nil {
		return err
	}
	return printBest(store, lvl)
}

func printSummary(store *storage.Store) error {
	stats, err := store.AllMapStats()
	if err != nil {
		return err
	}

	fmt.Println("Best Times")
	fmt.Println()
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'gemquest play' to set the first time!")
		return nil
	}

	fmt.Printf("  %-20s  %-5s  %-9s  %-9s  %s\n", "Map", "Runs", "Best", "Average", "Last played")
	fmt.Printf("  %-20s  %-5s  %-9s  %-9s  %s\n", "---", "----", "----", "-------", "-----------")
	for _, st := range stats {
		name := st.MapName
		if name == "" {
			name = st.MapID
		}
		fmt.Printf("  %-20s  %-5d  %8.2fs  %8.2fs  %s\n",
			name, st.Runs, st.Best.Seconds(), st.Average.Seconds(), st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printBest(store *storage.Store, lvl maps.Map) error {
	runs, err := store.BestRuns(lvl.Fingerprint(), flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Times - %s\n", lvl.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'gemquest play --map %s' to set the first time!\n", lvl.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-9s  %s\n", "Rank", "Player", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-9s  %s\n", "----", "------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-16s  %8.2fs  %s\n", i+1, r.Player, r.Duration.Seconds(), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, ok, err := store.BestTime(lvl.Fingerprint())
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("best time missing for a map with runs")
	}
	fmt.Println()
	fmt.Printf("Best: %.2fs\n", best.Seconds())
	return nil
}
