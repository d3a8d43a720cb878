package metaball

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestConvexHullSquareWithNoise(t *testing.T) {
	pts := []r2.Vec{
		{X: 2, Y: 2}, {X: 0, Y: 2}, {X: 1, Y: 1}, {X: 0, Y: 0},
		{X: 1, Y: 0}, // collinear on the bottom edge
		{X: 2, Y: 0}, {X: 0.5, Y: 1.5}, {X: 2, Y: 2}, // duplicate corner
	}
	orig := append([]r2.Vec(nil), pts...)

	hull, err := ConvexHull(pts)
	if err != nil {
		t.Fatalf("ConvexHull() error = %v", err)
	}
	want := []r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if diff := cmp.Diff(want, hull); diff != "" {
		t.Fatalf("hull mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig, pts); diff != "" {
		t.Fatalf("input was modified (-before +after):\n%s", diff)
	}
}

func TestConvexHullIgnoresInputOrder(t *testing.T) {
	a := []r2.Vec{{X: 3, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: 4}, {X: 1, Y: 1}, {X: 2, Y: -2}}
	b := []r2.Vec{a[3], a[0], a[4], a[2], a[1]}

	ha, err := ConvexHull(a)
	if err != nil {
		t.Fatalf("ConvexHull(a) error = %v", err)
	}
	hb, err := ConvexHull(b)
	if err != nil {
		t.Fatalf("ConvexHull(b) error = %v", err)
	}
	if diff := cmp.Diff(ha, hb); diff != "" {
		t.Fatalf("hull depends on input order (-a +b):\n%s", diff)
	}
}

func TestConvexHullDegenerateInput(t *testing.T) {
	tests := map[string][]r2.Vec{
		"empty":     nil,
		"repeated":  {{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}},
		"collinear": {{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}},
		"vertical":  {{X: 1, Y: 0}, {X: 1, Y: 5}, {X: 1, Y: 3}},
	}
	for name, pts := range tests {
		if _, err := ConvexHull(pts); !errors.Is(err, ErrDegenerateHull) {
			t.Fatalf("%s: error = %v, want ErrDegenerateHull", name, err)
		}
	}
}

func TestCircleIsClosed(t *testing.T) {
	c := Circle(r2.Vec{X: 1, Y: -1}, 2, 16)
	if len(c) != 17 {
		t.Fatalf("len = %d, want 17", len(c))
	}
	if c[0] != c[16] {
		t.Fatal("circle not explicitly closed")
	}
	for _, p := range c {
		if d := r2.Norm(r2.Sub(p, r2.Vec{X: 1, Y: -1})); math.Abs(d-2) > 1e-12 {
			t.Fatalf("vertex %v at distance %v, want 2", p, d)
		}
	}
}

func TestSmoothPassesThroughVertices(t *testing.T) {
	square := []r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 0}}
	out := Smooth(square, 4)

	if len(out) != 4*4+1 {
		t.Fatalf("len = %d, want 17", len(out))
	}
	if out[0] != out[len(out)-1] {
		t.Fatal("smoothed ring not closed")
	}
	for i := range 4 {
		if out[i*4] != square[i] {
			t.Fatalf("sample %d = %v, want vertex %v", i*4, out[i*4], square[i])
		}
	}
}

func TestSmoothLeavesTinyRingsAlone(t *testing.T) {
	in := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	out := Smooth(in, 8)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("unexpected change (-in +out):\n%s", diff)
	}
}
