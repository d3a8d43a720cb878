package metaball

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultResolution is the number of cells per axis used by the renderer.
const DefaultResolution = 80

// DefaultBounds is a 16:9 viewport in world units.
var DefaultBounds = r2.Box{
	Min: r2.Vec{X: -8, Y: -4.5},
	Max: r2.Vec{X: 8, Y: 4.5},
}

// ErrInvalidGrid is returned for a non-positive resolution or empty bounds.
var ErrInvalidGrid = errors.New("invalid sampling grid")

// Grid is an axis-aligned rectangle split into Resolution×Resolution cells.
type Grid struct {
	Bounds     r2.Box
	Resolution int
}

// DefaultGrid returns the renderer's default sampling domain.
func DefaultGrid() Grid {
	return Grid{Bounds: DefaultBounds, Resolution: DefaultResolution}
}

// NewGrid validates and returns a sampling grid.
func NewGrid(bounds r2.Box, resolution int) (Grid, error) {
	g := Grid{Bounds: bounds, Resolution: resolution}
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Validate rejects grids that cannot be sampled. Bad grids are programming
// errors, so every scan in this package checks before doing any work.
func (g Grid) Validate() error {
	if g.Resolution <= 0 {
		return fmt.Errorf("%w: resolution %d must be positive", ErrInvalidGrid, g.Resolution)
	}
	// Written as negations so NaN bounds are rejected too.
	if !(g.Bounds.Min.X < g.Bounds.Max.X) || !(g.Bounds.Min.Y < g.Bounds.Max.Y) {
		return fmt.Errorf("%w: bounds %v must have min < max on both axes", ErrInvalidGrid, g.Bounds)
	}
	return nil
}

// Step returns the cell size along each axis.
func (g Grid) Step() (float64, float64) {
	n := float64(g.Resolution)
	return (g.Bounds.Max.X - g.Bounds.Min.X) / n, (g.Bounds.Max.Y - g.Bounds.Min.Y) / n
}

// CellDiagonal returns the length of one cell's diagonal, the sampling
// tolerance of every boundary point.
func (g Grid) CellDiagonal() float64 {
	sx, sy := g.Step()
	return math.Hypot(sx, sy)
}
