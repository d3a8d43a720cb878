package body

import (
	"math"
	"testing"
)

func TestSlowBodyIsACircle(t *testing.T) {
	b := New(1, 2, 1.5)
	e := b.Ellipse(InteractiveMinSpeed)
	if !e.IsCircle() || e.SemiMajor != 1.5 || e.Center.X != 1 || e.Center.Y != 2 {
		t.Fatalf("Ellipse() = %+v, want circle r=1.5 at (1,2)", e)
	}
}

func TestFastBodyStretchesAlongMotion(t *testing.T) {
	b := New(0, 0, 1.5)
	for range 3 {
		b.Update(0, 3, NominalDT)
	}
	if b.Speed() <= PreviewMinSpeed {
		t.Fatalf("speed %v too low for the test", b.Speed())
	}

	e := b.Ellipse(PreviewMinSpeed)
	s := 1 + math.Min(b.Speed()*2, 0.5)
	if math.Abs(e.SemiMajor-1.5*s) > 1e-12 || math.Abs(e.SemiMinor-1.5/s) > 1e-12 {
		t.Fatalf("axes = %v x %v, want %v x %v", e.SemiMajor, e.SemiMinor, 1.5*s, 1.5/s)
	}
	if math.Abs(e.Angle-math.Pi/2) > 1e-9 {
		t.Fatalf("Angle = %v, want pi/2 for motion along +y", e.Angle)
	}

	// major axis runs along y now
	if !e.Contains(e.Center.X, e.Center.Y+e.SemiMajor*0.99) {
		t.Fatal("point near the tip of the major axis should be inside")
	}
	if e.Contains(e.Center.X+e.SemiMinor*1.01, e.Center.Y) {
		t.Fatal("point past the minor axis should be outside")
	}
}

func TestEllipsePolygonLiesOnCurve(t *testing.T) {
	e := Ellipse{SemiMajor: 3, SemiMinor: 1, Angle: 0.7}
	e.Center.X, e.Center.Y = -1, 2

	pts := e.Polygon(24)
	if len(pts) != 25 || pts[0] != pts[24] {
		t.Fatalf("polygon not closed: %d points", len(pts))
	}
	sin, cos := math.Sincos(-e.Angle)
	for _, p := range pts {
		dx, dy := p.X-e.Center.X, p.Y-e.Center.Y
		u := dx*cos - dy*sin
		v := dx*sin + dy*cos
		if got := u*u/9 + v*v; math.Abs(got-1) > 1e-9 {
			t.Fatalf("vertex %v off the curve: %v", p, got)
		}
	}

	box := e.Bounds()
	for _, p := range pts {
		if p.X < box.Min.X-1e-9 || p.X > box.Max.X+1e-9 || p.Y < box.Min.Y-1e-9 || p.Y > box.Max.Y+1e-9 {
			t.Fatalf("vertex %v outside Bounds() %v", p, box)
		}
	}
}

func TestZeroEllipseContainsNothing(t *testing.T) {
	var e Ellipse
	if !e.IsZero() || e.Contains(0, 0) {
		t.Fatal("zero ellipse must be empty")
	}
	if s := (Ellipse{SemiMajor: 2, SemiMinor: 1}).Scaled(0.5); s.SemiMajor != 1 || s.SemiMinor != 0.5 {
		t.Fatalf("Scaled() = %+v", s)
	}
}
