package visualizer

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivier-w/goo/internal/metaball"
	"github.com/olivier-w/goo/internal/scene"
)

var densityRamp = []byte(" .:-=+*#%@")

// Glow spring, critically damped.
const (
	glowFrequency = 9.0
	glowDamping   = 1.0
)

// densityFalloff is the field level, as a fraction of the threshold, at
// which the ramp starts.
const densityFalloff = 0.15

// Density shades every cell by the field value at its centre. The last ramp
// character is the inside of the blob. Levels chase the field through a
// spring so the glow trails a moving body.
type Density struct {
	world  r2.Box
	field  *metaball.Field
	levels springField
	view   Viewport
	output string
}

// NewDensity returns a density view for frames arriving fps times a second.
// A non-positive fps means scene.FPS.
func NewDensity(world r2.Box, fps int) *Density {
	if fps <= 0 {
		fps = scene.FPS
	}
	return &Density{
		world:  world,
		field:  metaball.NewField(1),
		levels: newSpringField(fps, glowFrequency, glowDamping),
	}
}

func (d *Density) Name() string { return "density" }

func (d *Density) Update(frame scene.Frame, width, height int) {
	if width < 1 || height < 1 {
		d.view = Viewport{World: d.world}
		d.output = ""
		return
	}
	d.view = NewViewport(d.world, width, height)
	d.levels.resize(width * height)

	threshold := frame.Threshold
	if !(threshold > 0) {
		threshold = 1
	}
	if d.field.Threshold() != threshold {
		d.field = metaball.NewField(threshold)
	}
	d.field.ReplaceAll(frame.Sources)

	rampLen := len(densityRamp)
	rows := make([]string, height)
	for row := range height {
		var line strings.Builder
		for col := range width {
			p := d.view.CellToWorld(col, row)
			target := d.field.Value(p.X, p.Y) / threshold
			level := d.levels.step(row*width+col, min(target, 1))

			var ch byte
			switch {
			case d.field.Inside(p.X, p.Y):
				ch = densityRamp[rampLen-1]
			case level <= densityFalloff:
				ch = ' '
			default:
				idx := int((level - densityFalloff) / (1 - densityFalloff) * float64(rampLen-2))
				ch = densityRamp[min(max(idx, 0), rampLen-2)]
			}
			line.WriteByte(ch)
		}
		rows[row] = line.String()
	}

	d.output = strings.Join(rows, "\n")
}

func (d *Density) View() string { return d.output }

func (d *Density) Viewport() Viewport { return d.view }
