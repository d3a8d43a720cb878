// Package body implements the blob's discrete-time spring body: a damped
// spring chasing a moving target whose speed stretches the blob.
package body

import (
	"fmt"
	"math"
	"strings"
)

// NominalDT is the tick length the tuning constants were chosen for.
const NominalDT = 1.0 / 60

const (
	// stretchSpeed is the speed at which the stretch factor reaches 1.
	stretchSpeed = 0.5
	// stretchGain scales the stretch factor into extra radius.
	stretchGain = 0.3
)

// StepMode selects how Update treats its dt argument.
type StepMode uint8

const (
	// StepLegacy ignores dt: every call is one fixed-rate step.
	StepLegacy StepMode = iota
	// StepScaled scales spring, damping and displacement by dt/NominalDT.
	// At dt == NominalDT it matches StepLegacy.
	StepScaled
)

func (m StepMode) String() string {
	switch m {
	case StepScaled:
		return "scaled"
	default:
		return "legacy"
	}
}

// ParseStepMode maps a config string onto a StepMode.
func ParseStepMode(s string) (StepMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return StepLegacy, nil
	case "scaled":
		return StepScaled, nil
	default:
		return StepLegacy, fmt.Errorf("unknown step mode %q (want legacy or scaled)", s)
	}
}

// Tuning holds the constants of the spring.
type Tuning struct {
	Stiffness  float64
	Damping    float64
	MaxStretch float64
	Step       StepMode
}

// DefaultTuning returns the constants the animation was authored with.
func DefaultTuning() Tuning {
	return Tuning{
		Stiffness:  0.08,
		Damping:    0.85,
		MaxStretch: 1.5,
		Step:       StepLegacy,
	}
}

// Body is a blob centre attached by a damped spring to a target. It has one
// owner and is not safe for concurrent use.
type Body struct {
	x, y       float64
	vx, vy     float64
	baseRadius float64
	radius     float64
	tuning     Tuning
}

// New creates a resting body with the default tuning.
func New(x, y, baseRadius float64) *Body {
	return NewWithTuning(x, y, baseRadius, DefaultTuning())
}

// NewWithTuning creates a resting body with custom spring constants.
func NewWithTuning(x, y, baseRadius float64, tuning Tuning) *Body {
	return &Body{
		x:          x,
		y:          y,
		baseRadius: baseRadius,
		radius:     baseRadius,
		tuning:     tuning,
	}
}

// Update advances the body one tick toward (targetX, targetY).
//
// In StepLegacy mode dt is ignored. In StepScaled mode a non-positive dt
// leaves the body untouched.
func (b *Body) Update(targetX, targetY, dt float64) {
	k := 1.0
	if b.tuning.Step == StepScaled {
		if dt <= 0 {
			return
		}
		k = dt / NominalDT
	}

	dx := targetX - b.x
	dy := targetY - b.y

	b.vx += dx * b.tuning.Stiffness * k
	b.vy += dy * b.tuning.Stiffness * k

	damping := b.tuning.Damping
	if k != 1 {
		damping = math.Pow(damping, k)
	}
	b.vx *= damping
	b.vy *= damping

	b.x += b.vx * k
	b.y += b.vy * k

	b.radius = b.baseRadius * (1 + b.Stretch()*stretchGain)
}

// Position returns the blob centre.
func (b *Body) Position() (float64, float64) { return b.x, b.y }

// Velocity returns the per-tick velocity.
func (b *Body) Velocity() (float64, float64) { return b.vx, b.vy }

// Speed returns the velocity magnitude.
func (b *Body) Speed() float64 { return math.Sqrt(b.vx*b.vx + b.vy*b.vy) }

// Stretch returns the elongation factor, clamp(speed/0.5, 0, MaxStretch-1).
func (b *Body) Stretch() float64 {
	s := b.Speed() / stretchSpeed
	return math.Max(0, math.Min(s, b.tuning.MaxStretch-1))
}

// Radius returns the current, stretch-inflated radius.
func (b *Body) Radius() float64 { return b.radius }

// BaseRadius returns the radius at rest.
func (b *Body) BaseRadius() float64 { return b.baseRadius }

// Tuning returns the spring constants.
func (b *Body) Tuning() Tuning { return b.tuning }

// State is a value snapshot of a Body.
type State struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"vx"`
	VY         float64 `json:"vy"`
	Speed      float64 `json:"speed"`
	Stretch    float64 `json:"stretch"`
	BaseRadius float64 `json:"base_radius"`
	Radius     float64 `json:"radius"`
}

// State returns a snapshot of the body.
func (b *Body) State() State {
	return State{
		X:          b.x,
		Y:          b.y,
		VX:         b.vx,
		VY:         b.vy,
		Speed:      b.Speed(),
		Stretch:    b.Stretch(),
		BaseRadius: b.baseRadius,
		Radius:     b.radius,
	}
}
