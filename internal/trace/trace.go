// Package trace dumps scene frames as JSON lines for external tools.
package trace

import (
	"context"
	"fmt"
	"io"

	json "github.com/json-iterator/go"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivier-w/goo/internal/body"
	"github.com/olivier-w/goo/internal/metaball"
	"github.com/olivier-w/goo/internal/scene"
)

// Record is the JSON form of one frame.
type Record struct {
	Tick      int               `json:"tick"`
	Time      float64           `json:"t"`
	Phase     string            `json:"phase"`
	Progress  float64           `json:"progress"`
	Body      body.State        `json:"body"`
	Sources   []metaball.Source `json:"sources"`
	CloudSize int               `json:"cloud_size"`
	Boundary  BoundaryRecord    `json:"boundary"`
	Ellipse   *EllipseRecord    `json:"ellipse,omitempty"`
	Scale     float64           `json:"scale"`
}

// BoundaryRecord is a boundary polygon as [x, y] pairs.
type BoundaryRecord struct {
	Kind   string       `json:"kind"`
	Points [][2]float64 `json:"points"`
}

// EllipseRecord is the single-blob ellipse of a frame.
type EllipseRecord struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	A     float64 `json:"a"`
	B     float64 `json:"b"`
	Angle float64 `json:"angle"`
}

// NewRecord converts a frame.
func NewRecord(f scene.Frame) Record {
	r := Record{
		Tick:      f.Tick,
		Time:      f.Elapsed.Seconds(),
		Phase:     f.Phase.String(),
		Progress:  f.Progress,
		Body:      f.Body,
		Sources:   f.Sources,
		CloudSize: len(f.Cloud),
		Boundary: BoundaryRecord{
			Kind:   f.Boundary.Kind.String(),
			Points: pairs(f.Boundary.Points),
		},
		Scale: f.Scale,
	}
	if r.Sources == nil {
		r.Sources = []metaball.Source{}
	}
	if e := f.Ellipse; !e.IsZero() {
		r.Ellipse = &EllipseRecord{X: e.Center.X, Y: e.Center.Y, A: e.SemiMajor, B: e.SemiMinor, Angle: e.Angle}
	}
	return r
}

func pairs(pts []r2.Vec) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

// Writer emits one JSON object per line.
type Writer struct {
	enc   *json.Encoder
	count int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.ConfigCompatibleWithStandardLibrary.NewEncoder(w)}
}

// Write encodes one frame.
func (w *Writer) Write(f scene.Frame) error {
	if err := w.enc.Encode(NewRecord(f)); err != nil {
		return fmt.Errorf("encoding tick %d: %w", f.Tick, err)
	}
	w.count++
	return nil
}

// Count returns the number of frames written.
func (w *Writer) Count() int { return w.count }

// Stepper produces successive frames.
type Stepper interface {
	Step(ctx context.Context) (scene.Frame, error)
}

// Run steps s ticks times, writing every frame. It stops early on the first
// error or when ctx is done.
func Run(ctx context.Context, s Stepper, ticks int, w *Writer) error {
	for range ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := s.Step(ctx)
		if err != nil {
			return err
		}
		if err := w.Write(f); err != nil {
			return err
		}
	}
	return nil
}
