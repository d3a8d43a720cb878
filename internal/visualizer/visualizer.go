package visualizer

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivier-w/goo/internal/metaball"
	"github.com/olivier-w/goo/internal/scene"
)

// Visualizer renders scene frames as Braille art.
type Visualizer interface {
	Name() string
	Update(frame scene.Frame, width, height int)
	View() string
	// Viewport is the mapping used by the last Update, for turning mouse
	// cells back into world coordinates.
	Viewport() Viewport
}

// Modes returns all available visualizers for a scene spanning world and
// updated fps times a second.
func Modes(world r2.Box, fps int) []Visualizer {
	return []Visualizer{
		NewHull(world),
		NewEllipse(world),
		NewCloud(world),
		NewDensity(world, fps),
	}
}

// surface is the canvas and viewport shared by every mode.
type surface struct {
	world    r2.Box
	canvas   *Canvas
	viewport Viewport
	output   string
}

func newSurface(world r2.Box) surface {
	return surface{world: world, canvas: NewCanvas(0, 0)}
}

// begin sizes and clears the canvas. It reports false when there is no room
// to draw.
func (s *surface) begin(width, height int) bool {
	if width < 1 || height < 1 {
		s.canvas.Resize(0, 0)
		s.viewport = Viewport{World: s.world}
		s.output = ""
		return false
	}
	s.canvas.Resize(width, height)
	s.viewport = NewViewport(s.world, width, height)
	return true
}

func (s *surface) finish() { s.output = s.canvas.String() }

func (s *surface) View() string { return s.output }

func (s *surface) Viewport() Viewport { return s.viewport }

// Canvas exposes the raster of the last Update.
func (s *surface) Canvas() *Canvas { return s.canvas }

// curveSamples is the number of spline points drawn per hull edge.
const curveSamples = 4

// fillBoundary draws a boundary the way a renderer should treat each kind: a
// degenerate boundary with live sources is a blob smaller than a grid cell
// and gets the unit placeholder circle.
func fillBoundary(c *Canvas, v Viewport, frame scene.Frame) {
	b := frame.Boundary
	switch b.Kind {
	case metaball.BoundaryDegenerate:
		if len(frame.Sources) == 0 {
			return
		}
		FillPolygon(c, v, metaball.Circle(r2.Vec{}, 1, metaball.FallbackSegments))
	case metaball.BoundaryHull:
		FillPolygon(c, v, metaball.Smooth(b.Points, curveSamples))
	default:
		FillPolygon(c, v, b.Points)
	}
}

// Hull fills the convex outline of the field.
type Hull struct{ surface }

func NewHull(world r2.Box) *Hull { return &Hull{newSurface(world)} }

func (h *Hull) Name() string { return "hull" }

func (h *Hull) Update(frame scene.Frame, width, height int) {
	if !h.begin(width, height) {
		return
	}
	fillBoundary(h.canvas, h.viewport, frame)
	h.finish()
}

// Ellipse draws the single-blob ellipse of the body when there is one and
// falls back to the hull while the scene is made of several sources.
type Ellipse struct{ surface }

func NewEllipse(world r2.Box) *Ellipse { return &Ellipse{newSurface(world)} }

func (e *Ellipse) Name() string { return "ellipse" }

func (e *Ellipse) Update(frame scene.Frame, width, height int) {
	if !e.begin(width, height) {
		return
	}
	if frame.Ellipse.IsZero() {
		fillBoundary(e.canvas, e.viewport, frame)
	} else {
		FillEllipse(e.canvas, e.viewport, frame.Ellipse)
	}
	e.finish()
}

// Cloud plots the raw boundary samples.
type Cloud struct{ surface }

func NewCloud(world r2.Box) *Cloud { return &Cloud{newSurface(world)} }

func (c *Cloud) Name() string { return "cloud" }

func (c *Cloud) Update(frame scene.Frame, width, height int) {
	if !c.begin(width, height) {
		return
	}
	Plot(c.canvas, c.viewport, frame.Cloud...)
	c.finish()
}
