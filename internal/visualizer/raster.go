package visualizer

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivier-w/goo/internal/body"
)

// FillPolygon lights every dot whose centre lies inside poly (even-odd
// rule). poly may be open or explicitly closed.
func FillPolygon(c *Canvas, v Viewport, poly []r2.Vec) {
	if len(poly) < 3 || v.Scale() == 0 {
		return
	}
	w, h := c.Dots()
	xs := make([]float64, 0, 8)
	for j := range h {
		y := v.dotCenter(0, j).Y
		xs = xs[:0]
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			if (a.Y <= y && y < b.Y) || (b.Y <= y && y < a.Y) {
				xs = append(xs, a.X+(y-a.Y)*(b.X-a.X)/(b.Y-a.Y))
			}
		}
		slices.Sort(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			x0, _ := v.ToDot(r2.Vec{X: xs[k], Y: y})
			x1, _ := v.ToDot(r2.Vec{X: xs[k+1], Y: y})
			lo := max(int(math.Ceil(x0-0.5)), 0)
			hi := min(int(math.Floor(x1-0.5)), w-1)
			for i := lo; i <= hi; i++ {
				c.Set(i, j)
			}
		}
	}
}

// FillEllipse lights every dot whose centre lies inside e.
func FillEllipse(c *Canvas, v Viewport, e body.Ellipse) {
	if e.IsZero() || v.Scale() == 0 {
		return
	}
	box := e.Bounds()
	x0, y0 := v.ToDot(r2.Vec{X: box.Min.X, Y: box.Max.Y})
	x1, y1 := v.ToDot(r2.Vec{X: box.Max.X, Y: box.Min.Y})
	w, h := c.Dots()
	for j := max(int(math.Floor(y0)), 0); j <= min(int(math.Ceil(y1)), h-1); j++ {
		for i := max(int(math.Floor(x0)), 0); i <= min(int(math.Ceil(x1)), w-1); i++ {
			p := v.dotCenter(i, j)
			if e.Contains(p.X, p.Y) {
				c.Set(i, j)
			}
		}
	}
}

// Plot lights the dot under each world point.
func Plot(c *Canvas, v Viewport, pts ...r2.Vec) {
	if v.Scale() == 0 {
		return
	}
	for _, p := range pts {
		x, y := v.ToDot(p)
		c.Set(int(math.Floor(x)), int(math.Floor(y)))
	}
}
