package scene

import (
	"fmt"
	"strings"
	"time"
)

// FPS is the nominal tick rate of the loop.
const FPS = 60

// Duration is the length of one hero loop.
const Duration = 15 * time.Second

// Phase is a section of the hero loop.
type Phase uint8

const (
	PhaseEntry Phase = iota
	PhaseMelt
	PhaseInteractive
	PhaseExit
)

var phaseStarts = [...]time.Duration{
	PhaseEntry:       0,
	PhaseMelt:        3 * time.Second,
	PhaseInteractive: 6 * time.Second,
	PhaseExit:        12 * time.Second,
}

// PhaseAt returns the phase active at t into the loop.
func PhaseAt(t time.Duration) Phase {
	switch {
	case t < phaseStarts[PhaseMelt]:
		return PhaseEntry
	case t < phaseStarts[PhaseInteractive]:
		return PhaseMelt
	case t < phaseStarts[PhaseExit]:
		return PhaseInteractive
	default:
		return PhaseExit
	}
}

// Start returns the offset of the phase within the loop.
func (p Phase) Start() time.Duration {
	if int(p) < len(phaseStarts) {
		return phaseStarts[p]
	}
	return Duration
}

func (p Phase) String() string {
	switch p {
	case PhaseEntry:
		return "entry"
	case PhaseMelt:
		return "melt"
	case PhaseInteractive:
		return "interactive"
	case PhaseExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Script selects what the director plays.
type Script uint8

const (
	// ScriptHero is the full 15 second loop.
	ScriptHero Script = iota
	// ScriptPreview only chases PreviewTargets with the body.
	ScriptPreview
)

func (s Script) String() string {
	if s == ScriptPreview {
		return "preview"
	}
	return "hero"
}

// ParseScript maps a config string onto a Script.
func ParseScript(s string) (Script, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hero":
		return ScriptHero, nil
	case "preview":
		return ScriptPreview, nil
	default:
		return ScriptHero, fmt.Errorf("unknown script %q (want hero or preview)", s)
	}
}

// Waypoint is a cursor target held for Duration.
type Waypoint struct {
	X, Y     float64
	Duration time.Duration
}

// DefaultPath is the cursor choreography of the interactive phase.
func DefaultPath() []Waypoint {
	return []Waypoint{
		{X: 0, Y: 0, Duration: 300 * time.Millisecond},
		{X: 3, Y: 0.5, Duration: 800 * time.Millisecond},
		{X: 4, Y: 0, Duration: 400 * time.Millisecond},
		{X: -3, Y: -0.3, Duration: time.Second},
		{X: -1, Y: 0.2, Duration: 400 * time.Millisecond},
		{X: 0, Y: 0, Duration: 600 * time.Millisecond},
		{X: 0, Y: 0, Duration: 500 * time.Millisecond},
	}
}

// PreviewTargets are chased for one second each by ScriptPreview.
func PreviewTargets() []Waypoint {
	return []Waypoint{
		{X: 3, Y: 0, Duration: time.Second},
		{X: -2, Y: 1, Duration: time.Second},
		{X: 0, Y: -1, Duration: time.Second},
		{X: 0, Y: 0, Duration: time.Second},
	}
}

// pathDuration is the sum of the waypoint durations.
func pathDuration(path []Waypoint) time.Duration {
	var total time.Duration
	for _, w := range path {
		total += w.Duration
	}
	return total
}

// waypointAt returns the waypoint active at t into the path. Past the end
// the last waypoint holds.
func waypointAt(path []Waypoint, t time.Duration) (Waypoint, bool) {
	if len(path) == 0 {
		return Waypoint{}, false
	}
	var acc time.Duration
	for _, w := range path {
		acc += w.Duration
		if t < acc {
			return w, true
		}
	}
	return path[len(path)-1], true
}
