package scene

import "math"

// smooth is the smoothstep ease used for morphs.
func smooth(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// rushFrom starts fast and decelerates.
func rushFrom(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// rushInto starts slow and accelerates.
func rushInto(t float64) float64 {
	t = clamp01(t)
	return t * t
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
