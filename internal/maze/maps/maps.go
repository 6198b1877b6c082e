// Package maps provides the embedded maze layouts and loading of map files.
// Maps are YAML documents holding the grid as text rows; see world.Parse.
package maps

import (
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/vovakirdan/gemquest/internal/maze/world"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// DefaultID is the map played when none is selected.
const DefaultID = "classic"

// Map is a named, validated grid.
type Map struct {
	ID       string
	Name     string
	Grid     *world.Grid
	Metadata map[string]string
	FilePath string // empty for embedded maps
}

// Fingerprint identifies the layout independent of id and name, so a run
// recorded on a map is only compared with runs on the same cells.
func (m Map) Fingerprint() string {
	return Fingerprint(m.Grid)
}

// Fingerprint hashes a grid's size and cells with xxh3.
func Fingerprint(g *world.Grid) string {
	cells := g.Cells()
	buf := make([]byte, 8, 8+len(cells))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(g.Width()))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(g.Depth()))
	for _, c := range cells {
		buf = append(buf, byte(c))
	}
	return fmt.Sprintf("%016x", xxh3.Hash(buf))
}

// Builtin returns the embedded maps sorted by ID.
func Builtin() ([]Map, error) {
	entries, err := fs.ReadDir(builtinFS, "data")
	if err != nil {
		return nil, fmt.Errorf("reading embedded maps: %w", err)
	}

	var out []Map
	for _, e := range entries {
		data, err := builtinFS.ReadFile("data/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded map %s: %w", e.Name(), err)
		}
		m, err := ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("embedded map %s: %w", e.Name(), err)
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ByID returns the embedded map with the given id.
func ByID(id string) (Map, error) {
	all, err := Builtin()
	if err != nil {
		return Map{}, err
	}
	for _, m := range all {
		if m.ID == id {
			return m, nil
		}
	}
	return Map{}, fmt.Errorf("map not found: %s", id)
}

// Resolve returns the map for a --map value: a path to a .yaml/.yml file,
// or the id of an embedded map. An empty ref selects DefaultID.
func Resolve(ref string) (Map, error) {
	if ref == "" {
		ref = DefaultID
	}
	if isSupportedExtension(strings.ToLower(filepath.Ext(ref))) {
		return LoadFile(ref)
	}
	return ByID(ref)
}

// LoadFile loads a single map file.
func LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	m, err := ParseYAML(data)
	if err != nil {
		return Map{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	m.FilePath = path
	return m, nil
}

// LoadDir loads every map file directly inside dir, sorted by ID.
// Files that fail to parse are returned in the error slice and skipped.
func LoadDir(dir string) ([]Map, []error, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var out []Map
	var bad []error
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		m, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			bad = append(bad, err)
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, bad, nil
}

func isSupportedExtension(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
