package ui

import (
	"fmt"
	"strings"

	"github.com/olivier-w/goo/internal/scene"
	"github.com/olivier-w/goo/internal/util"
)

// renderBodyStatus summarises the body of a frame: position, radius and
// stretch.
func renderBodyStatus(f scene.Frame) string {
	b := f.Body
	return fmt.Sprintf("x %s  y %s  r %.2f  stretch %.2f  sources %d",
		util.FormatCoord(b.X), util.FormatCoord(b.Y), b.Radius, b.Stretch, len(f.Sources))
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
