package metaball

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

// FallbackSegments is the vertex count of the unit circle substituted when
// the hull cannot be built.
const FallbackSegments = 32

// BoundaryKind tells the caller how a Boundary was produced.
type BoundaryKind uint8

const (
	// BoundaryHull is a closed convex polygon around the boundary cloud.
	BoundaryHull BoundaryKind = iota
	// BoundaryDegenerate means fewer than 3 boundary samples were found.
	// Points holds a single placeholder at the origin and the caller is
	// expected to draw a default shape instead.
	BoundaryDegenerate
	// BoundaryFallback means the cloud had no area (collinear or repeated
	// samples). Points is a closed unit circle around the origin.
	BoundaryFallback
)

func (k BoundaryKind) String() string {
	switch k {
	case BoundaryHull:
		return "hull"
	case BoundaryDegenerate:
		return "degenerate"
	case BoundaryFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Boundary is the renderable outline of a field.
type Boundary struct {
	Kind   BoundaryKind
	Points []r2.Vec
}

// Cloud scans the grid column by column (x index outer, y index inner) and
// returns the centre of every cell whose four corners disagree on Inside.
// Cells entirely inside or outside emit nothing.
func Cloud(f *Field, g Grid) ([]r2.Vec, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	var pts []r2.Vec
	for i := range g.Resolution {
		pts = scanColumn(f, g, i, pts)
	}
	return pts, nil
}

// CloudParallel returns exactly what Cloud returns, in the same order, with
// columns spread across at most workers goroutines. The field must not be
// mutated until it returns.
func CloudParallel(ctx context.Context, f *Field, g Grid, workers int) ([]r2.Vec, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Cloud(f, g)
	}

	columns := make([][]r2.Vec, g.Resolution)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range g.Resolution {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			columns[i] = scanColumn(f, g, i, nil)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var pts []r2.Vec
	for _, col := range columns {
		pts = append(pts, col...)
	}
	return pts, nil
}

func scanColumn(f *Field, g Grid, i int, dst []r2.Vec) []r2.Vec {
	sx, sy := g.Step()
	x := g.Bounds.Min.X + float64(i)*sx
	for j := range g.Resolution {
		y := g.Bounds.Min.Y + float64(j)*sy
		if straddles(f, x, y, sx, sy) {
			dst = append(dst, r2.Vec{X: x + sx/2, Y: y + sy/2})
		}
	}
	return dst
}

// straddles compares corners in the order (x,y) (x+sx,y) (x+sx,y+sy) (x,y+sy).
func straddles(f *Field, x, y, sx, sy float64) bool {
	first := f.Inside(x, y)
	return f.Inside(x+sx, y) != first ||
		f.Inside(x+sx, y+sy) != first ||
		f.Inside(x, y+sy) != first
}

// Extract samples the field over the grid and reduces the boundary cloud to
// a closed polygon. Only an invalid grid is an error; empty or flat clouds
// come back as BoundaryDegenerate or BoundaryFallback.
func Extract(f *Field, g Grid) (Boundary, error) {
	cloud, err := Cloud(f, g)
	if err != nil {
		return Boundary{}, err
	}
	return Reduce(cloud), nil
}

// ExtractContext is Extract backed by CloudParallel.
func ExtractContext(ctx context.Context, f *Field, g Grid, workers int) (Boundary, error) {
	cloud, err := CloudParallel(ctx, f, g, workers)
	if err != nil {
		return Boundary{}, err
	}
	return Reduce(cloud), nil
}

// Reduce turns a boundary cloud into a closed outline. The convex hull rounds
// off any concavity in the true contour (a dumbbell comes back as a capsule).
func Reduce(cloud []r2.Vec) Boundary {
	if len(cloud) < 3 {
		return Boundary{Kind: BoundaryDegenerate, Points: []r2.Vec{{}}}
	}
	hull, err := ConvexHull(cloud)
	if err != nil {
		return Boundary{Kind: BoundaryFallback, Points: Circle(r2.Vec{}, 1, FallbackSegments)}
	}
	return Boundary{Kind: BoundaryHull, Points: append(hull, hull[0])}
}
