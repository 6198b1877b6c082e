package maps

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gemquest/internal/maze/world"
)

// YAMLMap is the on-disk structure of a map file.
type YAMLMap struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions. W counts rows (x), D counts cells per row (z).
type YAMLSize struct {
	W int `yaml:"w"`
	D int `yaml:"d"`
}

// ParseYAML decodes and validates a map file.
func ParseYAML(data []byte) (Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ym.ID == "" {
		return Map{}, fmt.Errorf("map has no id")
	}

	g, err := world.Parse(ym.Rows)
	if err != nil {
		return Map{}, fmt.Errorf("map %s: %w", ym.ID, err)
	}
	if ym.Size.W != 0 && ym.Size.D != 0 && (g.Width() != ym.Size.W || g.Depth() != ym.Size.D) {
		return Map{}, fmt.Errorf("map %s: %w: rows are %dx%d, size says %dx%d",
			ym.ID, world.ErrSizeMismatch, g.Width(), g.Depth(), ym.Size.W, ym.Size.D)
	}

	name := ym.Name
	if name == "" {
		name = ym.ID
	}
	return Map{
		ID:       ym.ID,
		Name:     name,
		Grid:     g,
		Metadata: ym.Metadata,
	}, nil
}

// MarshalYAML encodes m in the map file format.
func MarshalYAML(m Map) ([]byte, error) {
	return yaml.Marshal(YAMLMap{
		ID:       m.ID,
		Name:     m.Name,
		Size:     YAMLSize{W: m.Grid.Width(), D: m.Grid.Depth()},
		Rows:     m.Grid.Rows(),
		Metadata: m.Metadata,
	})
}
