package raster

import "testing"

func TestScanlineFactor(t *testing.T) {
	s := DefaultScanlines

	tests := []struct {
		fragY, timeMs float32
		want          float32
	}{
		{0, 0, 1},
		{2.5, 0, 1 - 0.15*0.5},
		{0.5, 2, 1 - 0.15*0.5},
		{5, 0, 1},
	}
	for _, tc := range tests {
		got := s.factor(tc.fragY, tc.timeMs)
		if d := got - tc.want; d > 1e-6 || d < -1e-6 {
			t.Errorf("factor(%v, %v) = %v, expected %v", tc.fragY, tc.timeMs, got, tc.want)
		}
	}

	if f := (Scanlines{}).factor(3, 0); f != 1 {
		t.Errorf("disabled scanlines factor = %v", f)
	}
}

func TestClipNear(t *testing.T) {
	r := &Renderer{}
	in := []vertex{
		{pos: [4]float32{0, 0, -2, 1}},
		{pos: [4]float32{1, 0, 1, 1}},
		{pos: [4]float32{0, 1, 1, 1}},
	}
	out := r.clipNear(in)
	if len(out) != 4 {
		t.Fatalf("clipNear() returned %d vertices, expected 4", len(out))
	}
	for _, v := range out {
		if v.pos[2]+v.pos[3] < -1e-6 {
			t.Errorf("vertex %v is behind the near plane", v.pos)
		}
	}
}
