// Package assets holds the embedded triangle meshes of the maze: floor,
// wall, arch, crystal (the gem), tube (the goal) and the skybox.
//
// A mesh file is plain text. Each non-comment line is one vertex as six
// floats: position x y z followed by colour r g b in [0, 1]. Every three
// consecutive vertices form a triangle.
package assets

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the number of values describing one vertex.
const FloatsPerVertex = 6

// ErrVertexData means a mesh does not hold a whole number of vertices or triangles.
var ErrVertexData = errors.New("assets: invalid vertex data")

//go:embed data/*.mesh
var meshFS embed.FS

// MeshID names one of the built-in meshes.
type MeshID int

const (
	Skybox MeshID = iota
	Floor
	Wall
	Arch
	Crystal
	Tube
)

// MeshIDs lists every built-in mesh.
var MeshIDs = []MeshID{Skybox, Floor, Wall, Arch, Crystal, Tube}

var meshNames = [...]string{
	Skybox:  "skybox",
	Floor:   "floor",
	Wall:    "wall",
	Arch:    "arch",
	Crystal: "crystal",
	Tube:    "tube",
}

func (id MeshID) String() string {
	if id < 0 || int(id) >= len(meshNames) {
		return fmt.Sprintf("MeshID(%d)", int(id))
	}
	return meshNames[id]
}

// Vertex is a coloured point.
type Vertex struct {
	Pos   mgl32.Vec3
	Color mgl32.Vec3
}

// Mesh is an unindexed triangle list.
type Mesh struct {
	Name     string
	Vertices []Vertex
}

// Triangles returns the number of triangles in m.
func (m Mesh) Triangles() int {
	return len(m.Vertices) / 3
}

// Parse decodes a mesh file. Lines starting with '#' and blank lines are skipped.
func Parse(name string, data []byte) (Mesh, error) {
	var floats []float32
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		for _, field := range strings.Fields(text) {
			f, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return Mesh{}, fmt.Errorf("%w: %s line %d: %v", ErrVertexData, name, line, err)
			}
			floats = append(floats, float32(f))
		}
	}
	if err := sc.Err(); err != nil {
		return Mesh{}, fmt.Errorf("assets: reading %s: %w", name, err)
	}
	return FromFloats(name, floats)
}

// FromFloats builds a mesh from packed x y z r g b values.
func FromFloats(name string, data []float32) (Mesh, error) {
	if len(data) == 0 || len(data)%FloatsPerVertex != 0 {
		return Mesh{}, fmt.Errorf("%w: %s has %d values, not a multiple of %d",
			ErrVertexData, name, len(data), FloatsPerVertex)
	}
	n := len(data) / FloatsPerVertex
	if n%3 != 0 {
		return Mesh{}, fmt.Errorf("%w: %s has %d vertices, not whole triangles", ErrVertexData, name, n)
	}

	m := Mesh{Name: name, Vertices: make([]Vertex, n)}
	for i := range m.Vertices {
		v := data[i*FloatsPerVertex:]
		m.Vertices[i] = Vertex{
			Pos:   mgl32.Vec3{v[0], v[1], v[2]},
			Color: mgl32.Vec3{v[3], v[4], v[5]},
		}
	}
	return m, nil
}

// Load parses one embedded mesh.
func Load(id MeshID) (Mesh, error) {
	data, err := meshFS.ReadFile("data/" + id.String() + ".mesh")
	if err != nil {
		return Mesh{}, fmt.Errorf("assets: %s: %w", id, err)
	}
	return Parse(id.String(), data)
}

// LoadAll parses every embedded mesh.
func LoadAll() (map[MeshID]Mesh, error) {
	out := make(map[MeshID]Mesh, len(MeshIDs))
	for _, id := range MeshIDs {
		m, err := Load(id)
		if err != nil {
			return nil, err
		}
		out[id] = m
	}
	return out, nil
}
