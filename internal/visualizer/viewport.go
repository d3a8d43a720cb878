package visualizer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps a world rectangle onto a canvas with a uniform scale,
// centring it and keeping y pointing up. Braille dots are roughly square on
// a terminal, so one scale serves both axes.
type Viewport struct {
	World  r2.Box
	scale  float64
	offset r2.Vec
	dots   r2.Vec
}

// NewViewport fits world into a canvas of cols x rows cells.
func NewViewport(world r2.Box, cols, rows int) Viewport {
	v := Viewport{World: world, dots: r2.Vec{X: float64(cols * 2), Y: float64(rows * 4)}}
	size := r2.Sub(world.Max, world.Min)
	if size.X <= 0 || size.Y <= 0 || v.dots.X <= 0 || v.dots.Y <= 0 {
		return v
	}
	v.scale = math.Min(v.dots.X/size.X, v.dots.Y/size.Y)
	v.offset = r2.Vec{
		X: (v.dots.X - size.X*v.scale) / 2,
		Y: (v.dots.Y - size.Y*v.scale) / 2,
	}
	return v
}

// Scale returns dots per world unit. It is zero for an empty viewport.
func (v Viewport) Scale() float64 { return v.scale }

// ToDot maps a world point to fractional dot coordinates. The centre of dot
// (i, j) is at (i+0.5, j+0.5).
func (v Viewport) ToDot(p r2.Vec) (x, y float64) {
	x = v.offset.X + (p.X-v.World.Min.X)*v.scale
	y = v.offset.Y + (v.World.Max.Y-p.Y)*v.scale
	return x, y
}

// ToWorld maps fractional dot coordinates back to the world.
func (v Viewport) ToWorld(x, y float64) r2.Vec {
	if v.scale == 0 {
		return r2.Scale(0.5, r2.Add(v.World.Min, v.World.Max))
	}
	return r2.Vec{
		X: v.World.Min.X + (x-v.offset.X)/v.scale,
		Y: v.World.Max.Y - (y-v.offset.Y)/v.scale,
	}
}

// CellToWorld maps the centre of terminal cell (col, row) to the world.
func (v Viewport) CellToWorld(col, row int) r2.Vec {
	return v.ToWorld(float64(col)*2+1, float64(row)*4+2)
}

// dotCenter returns the world position of the centre of dot (i, j).
func (v Viewport) dotCenter(i, j int) r2.Vec {
	return v.ToWorld(float64(i)+0.5, float64(j)+0.5)
}
