package assets_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/gemquest/internal/maze/assets"
)

func TestLoadAll(t *testing.T) {
	meshes, err := assets.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	want := map[assets.MeshID]int{
		assets.Floor:   8,
		assets.Wall:    20,
		assets.Arch:    40,
		assets.Crystal: 72,
		assets.Tube:    88,
		assets.Skybox:  60,
	}
	for id, tris := range want {
		m, ok := meshes[id]
		if !ok {
			t.Errorf("mesh %s missing", id)
			continue
		}
		if m.Triangles() != tris {
			t.Errorf("%s has %d triangles, expected %d", id, m.Triangles(), tris)
		}
		for i, v := range m.Vertices {
			for c := 0; c < 3; c++ {
				if v.Color[c] < 0 || v.Color[c] > 1 {
					t.Fatalf("%s vertex %d colour %v outside [0, 1]", id, i, v.Color)
				}
			}
		}
	}
}

func TestParse(t *testing.T) {
	data := []byte("# one triangle\n0 0 0 1 0 0\n\n1 0 0 0 1 0\n0 0 1 0 0 1\n")
	m, err := assets.Parse("tri", data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Triangles() != 1 {
		t.Fatalf("Triangles() = %d", m.Triangles())
	}
	if m.Vertices[1].Pos.X() != 1 || m.Vertices[2].Color.Z() != 1 {
		t.Errorf("vertices = %+v", m.Vertices)
	}
}

func TestParseRejectsBadVertexData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"partial vertex", "0 0 0 1 1\n"},
		{"partial triangle", "0 0 0 1 1 1\n1 0 0 1 1 1\n"},
		{"not a number", "0 0 0 1 1 x\n"},
		{"empty", "# nothing\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := assets.Parse(tc.name, []byte(tc.data)); !errors.Is(err, assets.ErrVertexData) {
				t.Errorf("Parse() error = %v, expected ErrVertexData", err)
			}
		})
	}
}

func TestMeshIDString(t *testing.T) {
	if assets.Crystal.String() != "crystal" {
		t.Errorf("Crystal.String() = %q", assets.Crystal.String())
	}
	if assets.MeshID(42).String() != "MeshID(42)" {
		t.Errorf("unknown id String() = %q", assets.MeshID(42).String())
	}
}
