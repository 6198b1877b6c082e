package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemquest/internal/maze/maps"
	"github.com/vovakirdan/gemquest/internal/maze/world"
)

var flagShowYAML bool

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List, show and validate maps",
	Long: `Work with maze maps.

A map is a YAML file with an id, a name, a size and one row of cells per x
coordinate: S spawn, A arch, . floor, # wall, I gem, G goal.`,
}

var mapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available maps",
	Args:  cobra.NoArgs,
	RunE:  runMapsList,
}

var mapsShowCmd = &cobra.Command{
	Use:   "show <id|path>",
	Short: "Print a map",
	Args:  cobra.ExactArgs(1),
	RunE:  runMapsShow,
}

var mapsValidateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Check map files for errors and problems",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMapsValidate,
}

func init() {
	mapsShowCmd.Flags().BoolVar(&flagShowYAML, "yaml", false, "Print the map as YAML")

	mapsCmd.AddCommand(mapsListCmd)
	mapsCmd.AddCommand(mapsShowCmd)
	mapsCmd.AddCommand(mapsValidateCmd)
}

func runMapsList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	levels, err := availableMaps(cfg)
	if err != nil {
		return err
	}

	fmt.Println("Available maps:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range levels {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-16s  %s\n", maxIDLen, "ID", "Size", "Fingerprint", "Name")
	fmt.Printf("  %-*s  %-7s  %-16s  %s\n", maxIDLen, "--", "----", "-----------", "----")
	for _, m := range levels {
		size := fmt.Sprintf("%dx%d", m.Grid.Width(), m.Grid.Depth())
		fmt.Printf("  %-*s  %-7s  %-16s  %s\n", maxIDLen, m.ID, size, m.Fingerprint(), m.Name)
	}

	fmt.Println()
	fmt.Println("Run 'gemquest play --map <id>' to play a map.")
	return nil
}

func runMapsShow(_ *cobra.Command, args []string) error {
	m, err := maps.Resolve(args[0])
	if err != nil {
		return err
	}

	if flagShowYAML {
		data, err := maps.MarshalYAML(m)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	fmt.Printf("%s (%s), %dx%d\n\n", m.Name, m.ID, m.Grid.Width(), m.Grid.Depth())
	for _, row := range m.Grid.Rows() {
		fmt.Println("  " + row)
	}
	fmt.Println()
	fmt.Printf("Gems: %d  Goals: %d  Arches: %d\n",
		m.Grid.Count(world.Item), m.Grid.Count(world.Goal), m.Grid.Count(world.Arch))
	for _, problem := range m.Grid.Lint() {
		fmt.Println("warning: " + problem)
	}
	return nil
}

func runMapsValidate(_ *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		m, err := maps.LoadFile(path)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", path, err)
			continue
		}
		problems := m.Grid.Lint()
		if len(problems) == 0 {
			fmt.Printf("ok    %s (%s)\n", path, m.ID)
			continue
		}
		failed++
		for _, p := range problems {
			fmt.Printf("FAIL  %s: %s\n", path, p)
		}
	}

	if failed > 0 {
		return errors.New(fmt.Sprint(failed, " map(s) failed validation"))
	}
	return nil
}
