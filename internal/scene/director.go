// Package scene drives the metaball field and the spring body through the
// hero loop, one tick at a time.
package scene

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivier-w/goo/internal/body"
	"github.com/olivier-w/goo/internal/metaball"
)

// Sizes of the shapes played by the hero loop, in world units.
const (
	anchorRadius   = 0.4
	fragmentRadius = 0.3
	collapseScale  = 0.6
	contractScale  = 0.8
	wobbleKick     = 1.1
	breathAmount   = 0.05
	breathRate     = 3.0
)

// Offsets within a phase, in seconds.
const (
	revealWindow    = 2.0
	softenEnd       = 0.7
	collapseEnd     = 1.4
	contractEnd     = 0.3
	scatterEnd      = 0.8
	crystallizeEnd  = 1.3
	fadeInterval    = 0.05
	popRiseFraction = 0.6
)

// Wobble spring parameters: an underdamped spring settling in about a
// second at 60 FPS.
const (
	wobbleFrequency = 8.0
	wobbleDamping   = 0.35
)

// Options configures a Director.
type Options struct {
	Threshold     float64
	Grid          metaball.Grid
	Tuning        body.Tuning
	BaseRadius    float64
	FPS           int
	Workers       int
	Anchors       int
	AnchorSpacing float64
	Script        Script
	// Path overrides the choreography. Nil selects DefaultPath or
	// PreviewTargets depending on Script.
	Path   []Waypoint
	Logger *zap.Logger
}

// DefaultOptions returns the options the hero loop was authored with.
func DefaultOptions() Options {
	return Options{
		Threshold:     1,
		Grid:          metaball.DefaultGrid(),
		Tuning:        body.DefaultTuning(),
		BaseRadius:    1.5,
		FPS:           FPS,
		Workers:       1,
		Anchors:       11,
		AnchorSpacing: 0.9,
		Script:        ScriptHero,
	}
}

func (o Options) validate() error {
	if !(o.Threshold > 0) {
		return fmt.Errorf("threshold must be positive, got %v", o.Threshold)
	}
	if err := o.Grid.Validate(); err != nil {
		return err
	}
	if !(o.BaseRadius > 0) {
		return fmt.Errorf("base radius must be positive, got %v", o.BaseRadius)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", o.FPS)
	}
	if o.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", o.Workers)
	}
	if o.Anchors < 1 {
		return fmt.Errorf("anchors must be >= 1, got %d", o.Anchors)
	}
	if !(o.AnchorSpacing > 0) {
		return fmt.Errorf("anchor spacing must be positive, got %v", o.AnchorSpacing)
	}
	if o.Script != ScriptHero && o.Script != ScriptPreview {
		return errors.New("unknown script")
	}
	return nil
}

// Frame is everything a renderer or exporter needs about one tick.
type Frame struct {
	Tick     int
	Elapsed  time.Duration
	Phase    Phase
	Progress float64
	Body     body.State
	Sources  []metaball.Source
	Cloud    []r2.Vec
	Boundary metaball.Boundary
	// Ellipse is the single-blob shape of the body. It is zero while the
	// scene is made of several sources.
	Ellipse body.Ellipse
	Scale   float64
	// Threshold is the field level that bounds the blob.
	Threshold float64
}

// Director owns the field and body of one scene. It is driven from a single
// goroutine.
type Director struct {
	opts    Options
	logger  *zap.Logger
	field   *metaball.Field
	body    *body.Body
	spring  harmonica.Spring
	anchors []r2.Vec
	path    []Waypoint

	loopTicks int
	tick      int
	loopTick  int
	phase     Phase
	started   bool

	scale       float64
	scaleVel    float64
	scaleTarget float64
	merged      bool
	exiting     bool
	exitFrom    r2.Vec

	following bool
	follow    r2.Vec

	sources []metaball.Source
}

// NewDirector validates opts and returns a director positioned at tick 0.
func NewDirector(opts Options) (*Director, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("scene options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	path := opts.Path
	if path == nil {
		if opts.Script == ScriptPreview {
			path = PreviewTargets()
		} else {
			path = DefaultPath()
		}
	}

	loop := Duration
	if opts.Script == ScriptPreview {
		loop = pathDuration(path)
	}
	loopTicks := int(math.Round(loop.Seconds() * float64(opts.FPS)))
	if loopTicks < 1 {
		loopTicks = 1
	}

	d := &Director{
		opts:      opts,
		logger:    logger.Named("director"),
		field:     metaball.NewField(opts.Threshold),
		spring:    harmonica.NewSpring(harmonica.FPS(opts.FPS), wobbleFrequency, wobbleDamping),
		anchors:   layoutAnchors(opts.Anchors, opts.AnchorSpacing),
		path:      path,
		loopTicks: loopTicks,
	}
	d.rewind()
	return d, nil
}

// layoutAnchors centres n points on the x axis.
func layoutAnchors(n int, spacing float64) []r2.Vec {
	anchors := make([]r2.Vec, n)
	mid := float64(n-1) / 2
	for i := range anchors {
		anchors[i] = r2.Vec{X: (float64(i) - mid) * spacing}
	}
	return anchors
}

// rewind puts the loop back at its first tick without touching the global
// tick counter or the follow target.
func (d *Director) rewind() {
	d.body = body.NewWithTuning(0, 0, d.opts.BaseRadius, d.opts.Tuning)
	d.loopTick = 0
	d.scale = 1
	d.scaleVel = 0
	d.scaleTarget = 1
	d.merged = false
	d.exiting = false
	d.exitFrom = r2.Vec{}
	d.started = false
	d.field.Clear()
}

// Reset restarts the scene from tick 0.
func (d *Director) Reset() {
	d.tick = 0
	d.rewind()
	d.logger.Debug("scene reset")
}

// SetFollow makes the body chase (x, y) instead of the choreography while it
// is free to move.
func (d *Director) SetFollow(x, y float64) {
	d.following = true
	d.follow = r2.Vec{X: x, Y: y}
}

// ClearFollow returns control to the choreography.
func (d *Director) ClearFollow() {
	d.following = false
}

// Follow returns the follow target and whether it is active.
func (d *Director) Follow() (r2.Vec, bool) { return d.follow, d.following }

// Grid returns the sampling grid.
func (d *Director) Grid() metaball.Grid { return d.opts.Grid }

// Script returns the script being played.
func (d *Director) Script() Script { return d.opts.Script }

// LoopTicks returns the number of ticks in one loop.
func (d *Director) LoopTicks() int { return d.loopTicks }

// LoopDuration returns the length of one loop.
func (d *Director) LoopDuration() time.Duration {
	return d.tickDuration(d.loopTicks)
}

func (d *Director) tickDuration(n int) time.Duration {
	return time.Duration(n) * time.Second / time.Duration(d.opts.FPS)
}

// Step advances the scene by one tick and extracts the boundary of the
// resulting field. The loop wraps after LoopTicks ticks.
func (d *Director) Step(ctx context.Context) (Frame, error) {
	elapsed := d.tickDuration(d.loopTick)
	phase := PhaseInteractive
	if d.opts.Script == ScriptHero {
		phase = PhaseAt(elapsed)
	}
	if !d.started || phase != d.phase {
		d.logger.Debug("phase changed",
			zap.Stringer("phase", phase),
			zap.Int("tick", d.tick),
			zap.Duration("elapsed", elapsed))
		d.phase = phase
		d.started = true
	}

	d.scale, d.scaleVel = d.spring.Update(d.scale, d.scaleVel, d.scaleTarget)

	var ellipse body.Ellipse
	d.sources = d.sources[:0]
	if d.opts.Script == ScriptPreview {
		ellipse = d.chase(elapsed, body.PreviewMinSpeed)
	} else {
		ellipse = d.hero(phase, elapsed)
	}
	d.field.ReplaceAll(d.sources)

	cloud, err := metaball.CloudParallel(ctx, d.field, d.opts.Grid, d.opts.Workers)
	if err != nil {
		return Frame{}, fmt.Errorf("scanning tick %d: %w", d.tick, err)
	}

	frame := Frame{
		Tick:      d.tick,
		Elapsed:   elapsed,
		Phase:     phase,
		Progress:  float64(d.loopTick) / float64(d.loopTicks),
		Body:      d.body.State(),
		Sources:   d.field.Sources(),
		Cloud:     cloud,
		Boundary:  metaball.Reduce(cloud),
		Ellipse:   ellipse,
		Scale:     d.scale,
		Threshold: d.opts.Threshold,
	}

	d.tick++
	d.loopTick++
	if d.loopTick >= d.loopTicks {
		d.logger.Debug("loop restarted", zap.Int("tick", d.tick))
		d.rewind()
	}
	return frame, nil
}

func (d *Director) hero(phase Phase, elapsed time.Duration) body.Ellipse {
	u := (elapsed - phase.Start()).Seconds()
	switch phase {
	case PhaseEntry:
		d.entry(u)
		return body.Ellipse{}
	case PhaseMelt:
		return d.melt(u)
	case PhaseInteractive:
		e := d.chase(elapsed-phase.Start(), body.InteractiveMinSpeed)
		if e.IsCircle() {
			breath := 1 + breathAmount*math.Sin(elapsed.Seconds()*breathRate)
			e.SemiMajor = d.opts.BaseRadius * breath * d.scale
			e.SemiMinor = e.SemiMajor
		}
		return e
	default:
		return d.exit(u)
	}
}

// entry reveals the anchors one at a time, each popping past full size
// before settling.
func (d *Director) entry(u float64) {
	n := len(d.anchors)
	delay := revealWindow / float64(n)
	for i, a := range d.anchors {
		local := (u - float64(i)*delay) / delay
		if local < 0 {
			break
		}
		d.sources = append(d.sources, metaball.Source{X: a.X, Y: a.Y, Radius: anchorRadius * pop(local)})
	}
}

// pop is the reveal scale of an anchor, local reveal windows after it
// appeared.
func pop(local float64) float64 {
	switch {
	case local >= 1:
		return 1
	case local < popRiseFraction:
		return lerp(0.8, 1.25, rushFrom(local/popRiseFraction))
	default:
		return lerp(1.25, 1, rushInto((local-popRiseFraction)/(1-popRiseFraction)))
	}
}

// melt collapses the anchors onto the origin and replaces them with a
// single wobbling source.
func (d *Director) melt(u float64) body.Ellipse {
	switch {
	case u < softenEnd:
		for _, a := range d.anchors {
			d.sources = append(d.sources, metaball.Source{X: a.X, Y: a.Y, Radius: anchorRadius})
		}
		return body.Ellipse{}
	case u < collapseEnd:
		s := smooth((u - softenEnd) / (collapseEnd - softenEnd))
		r := anchorRadius * lerp(1, collapseScale, s)
		for _, a := range d.anchors {
			d.sources = append(d.sources, metaball.Source{X: lerp(a.X, 0, s), Y: lerp(a.Y, 0, s), Radius: r})
		}
		return body.Ellipse{}
	}

	if !d.merged {
		d.merged = true
		d.scale = wobbleKick
		d.scaleVel = 0
		d.scaleTarget = 1
		d.logger.Debug("anchors merged", zap.Int("tick", d.tick))
	}
	x, y := d.body.Position()
	r := d.opts.BaseRadius * d.scale
	d.sources = append(d.sources, metaball.Source{X: x, Y: y, Radius: r})
	return body.Ellipse{Center: r2.Vec{X: x, Y: y}, SemiMajor: r, SemiMinor: r}
}

// chase moves the body one tick toward the follow target or the waypoint
// active at t into the path and emits one source at the body.
func (d *Director) chase(t time.Duration, minSpeed float64) body.Ellipse {
	target := d.follow
	if !d.following {
		if w, ok := waypointAt(d.path, t); ok {
			target = r2.Vec{X: w.X, Y: w.Y}
		}
	}
	d.body.Update(target.X, target.Y, 1/float64(d.opts.FPS))

	x, y := d.body.Position()
	d.sources = append(d.sources, metaball.Source{X: x, Y: y, Radius: d.body.Radius() * d.scale})
	return d.body.Ellipse(minSpeed).Scaled(d.scale)
}

// exit contracts the blob into the origin, scatters fragments back out to
// the anchors and fades them in reverse order.
func (d *Director) exit(u float64) body.Ellipse {
	if !d.exiting {
		d.exiting = true
		x, y := d.body.Position()
		d.exitFrom = r2.Vec{X: x, Y: y}
		d.scaleTarget = contractScale
	}

	switch {
	case u < contractEnd:
		s := rushInto(u / contractEnd)
		c := r2.Vec{X: lerp(d.exitFrom.X, 0, s), Y: lerp(d.exitFrom.Y, 0, s)}
		r := d.opts.BaseRadius * d.scale
		d.sources = append(d.sources, metaball.Source{X: c.X, Y: c.Y, Radius: r})
		return body.Ellipse{Center: c, SemiMajor: r, SemiMinor: r}
	case u < scatterEnd:
		s := rushFrom((u - contractEnd) / (scatterEnd - contractEnd))
		for _, a := range d.anchors {
			d.sources = append(d.sources, metaball.Source{X: a.X * s, Y: a.Y * s, Radius: fragmentRadius})
		}
	case u < crystallizeEnd:
		s := smooth((u - scatterEnd) / (crystallizeEnd - scatterEnd))
		r := lerp(fragmentRadius, anchorRadius, s)
		for _, a := range d.anchors {
			d.sources = append(d.sources, metaball.Source{X: a.X, Y: a.Y, Radius: r})
		}
	default:
		faded := int((u - crystallizeEnd) / fadeInterval)
		visible := max(len(d.anchors)-faded, 0)
		for _, a := range d.anchors[:visible] {
			d.sources = append(d.sources, metaball.Source{X: a.X, Y: a.Y, Radius: anchorRadius})
		}
	}
	return body.Ellipse{}
}
