package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as m:ss.t, truncating to tenths.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int(d / (100 * time.Millisecond))
	m := tenths / 600
	s := tenths / 10 % 60
	return fmt.Sprintf("%d:%02d.%d", m, s, tenths%10)
}

// FormatCoord formats a world coordinate with an explicit sign so columns
// line up.
func FormatCoord(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	return fmt.Sprintf("%+.2f", v)
}
