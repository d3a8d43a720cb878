package body

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Speeds above which the blob is drawn as a stretched ellipse instead of a
// circle.
const (
	InteractiveMinSpeed = 0.1
	PreviewMinSpeed     = 0.05
)

// maxElongation caps the ellipse's axis ratio at (1+0.5)².
const maxElongation = 0.5

// Ellipse is a rotated ellipse. Angle is the direction of the major axis in
// radians, counter-clockwise from +x.
type Ellipse struct {
	Center    r2.Vec  `json:"center"`
	SemiMajor float64 `json:"a"`
	SemiMinor float64 `json:"b"`
	Angle     float64 `json:"angle"`
}

// Ellipse derives a cheap single-blob shape from the body. Above minSpeed
// the base circle is squashed along the direction of motion, otherwise it is
// a circle of the base radius.
func (b *Body) Ellipse(minSpeed float64) Ellipse {
	c := r2.Vec{X: b.x, Y: b.y}
	speed := b.Speed()
	if speed <= minSpeed {
		return Ellipse{Center: c, SemiMajor: b.baseRadius, SemiMinor: b.baseRadius}
	}
	s := 1 + math.Min(speed*2, maxElongation)
	return Ellipse{
		Center:    c,
		SemiMajor: b.baseRadius * s,
		SemiMinor: b.baseRadius / s,
		Angle:     math.Atan2(b.vy, b.vx),
	}
}

// IsZero reports whether e is the zero Ellipse (no shape).
func (e Ellipse) IsZero() bool { return e.SemiMajor == 0 && e.SemiMinor == 0 }

// IsCircle reports whether both axes are equal.
func (e Ellipse) IsCircle() bool { return e.SemiMajor == e.SemiMinor }

// Scaled returns e with both axes multiplied by f.
func (e Ellipse) Scaled(f float64) Ellipse {
	e.SemiMajor *= f
	e.SemiMinor *= f
	return e
}

// Contains reports whether (x, y) lies inside or on the ellipse.
func (e Ellipse) Contains(x, y float64) bool {
	if e.SemiMajor <= 0 || e.SemiMinor <= 0 {
		return false
	}
	dx := x - e.Center.X
	dy := y - e.Center.Y
	sin, cos := math.Sincos(e.Angle)
	u := dx*cos + dy*sin
	v := -dx*sin + dy*cos
	return u*u/(e.SemiMajor*e.SemiMajor)+v*v/(e.SemiMinor*e.SemiMinor) <= 1
}

// Bounds returns the axis-aligned box enclosing the ellipse.
func (e Ellipse) Bounds() r2.Box {
	sin, cos := math.Sincos(e.Angle)
	hw := math.Hypot(e.SemiMajor*cos, e.SemiMinor*sin)
	hh := math.Hypot(e.SemiMajor*sin, e.SemiMinor*cos)
	return r2.Box{
		Min: r2.Vec{X: e.Center.X - hw, Y: e.Center.Y - hh},
		Max: r2.Vec{X: e.Center.X + hw, Y: e.Center.Y + hh},
	}
}

// Polygon returns a closed polygon approximation with the given number of
// segments (at least 3).
func (e Ellipse) Polygon(segments int) []r2.Vec {
	if segments < 3 {
		segments = 3
	}
	sin, cos := math.Sincos(e.Angle)
	pts := make([]r2.Vec, 0, segments+1)
	for k := range segments {
		t := 2 * math.Pi * float64(k) / float64(segments)
		u := e.SemiMajor * math.Cos(t)
		v := e.SemiMinor * math.Sin(t)
		pts = append(pts, r2.Vec{
			X: e.Center.X + u*cos - v*sin,
			Y: e.Center.Y + u*sin + v*cos,
		})
	}
	return append(pts, pts[0])
}
