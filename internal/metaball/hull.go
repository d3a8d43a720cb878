package metaball

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrDegenerateHull is returned when the input spans no area.
var ErrDegenerateHull = errors.New("degenerate hull")

// ConvexHull returns the convex hull of points using Andrew's monotone chain.
// Vertices are counter-clockwise, start at the lowest x (then lowest y) point,
// exclude collinear points and are not closed. The input is left untouched.
func ConvexHull(points []r2.Vec) ([]r2.Vec, error) {
	pts := slices.Clone(points)
	slices.SortFunc(pts, comparePoints)
	pts = slices.Compact(pts)
	if len(pts) < 3 {
		return nil, ErrDegenerateHull
	}

	hull := make([]r2.Vec, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// last point repeats the first
	hull = hull[:len(hull)-1]
	if len(hull) < 3 {
		return nil, ErrDegenerateHull
	}
	return hull, nil
}

func comparePoints(a, b r2.Vec) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// cross is the z component of (a-o)×(b-o); positive for a left turn.
func cross(o, a, b r2.Vec) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// Circle returns a closed regular polygon (first vertex repeated at the end).
func Circle(center r2.Vec, radius float64, segments int) []r2.Vec {
	if segments < 3 {
		segments = 3
	}
	pts := make([]r2.Vec, 0, segments+1)
	for k := range segments {
		a := 2 * math.Pi * float64(k) / float64(segments)
		pts = append(pts, r2.Vec{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return append(pts, pts[0])
}

// Smooth resamples a closed polygon along a uniform Catmull-Rom spline that
// passes through every vertex, emitting samples points per edge. The result
// is explicitly closed. Rings with fewer than 3 distinct vertices are
// returned as a copy.
func Smooth(closed []r2.Vec, samples int) []r2.Vec {
	ring := closed
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}
	n := len(ring)
	if n < 3 || samples < 1 {
		return slices.Clone(closed)
	}

	out := make([]r2.Vec, 0, n*samples+1)
	for i := range n {
		p0 := ring[(i-1+n)%n]
		p1 := ring[i]
		p2 := ring[(i+1)%n]
		p3 := ring[(i+2)%n]
		for s := range samples {
			out = append(out, catmullRom(p0, p1, p2, p3, float64(s)/float64(samples)))
		}
	}
	return append(out, out[0])
}

func catmullRom(p0, p1, p2, p3 r2.Vec, t float64) r2.Vec {
	t2 := t * t
	t3 := t2 * t
	// 0.5 * (2p1 + (p2-p0)t + (2p0-5p1+4p2-p3)t² + (3p1-p0-3p2+p3)t³)
	axis := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b + (c-a)*t + (2*a-5*b+4*c-d)*t2 + (3*b-a-3*c+d)*t3)
	}
	return r2.Vec{
		X: axis(p0.X, p1.X, p2.X, p3.X),
		Y: axis(p0.Y, p1.Y, p2.Y, p3.Y),
	}
}
