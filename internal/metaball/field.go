package metaball

// Epsilon is added to every squared distance so the field stays finite when
// a query point sits exactly on a source centre.
const Epsilon = 1e-4

// Source is one circular influence generator of the field.
type Source struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"r"`
}

// Field is a metaball implicit field: the sum of r²/d² contributions of its
// sources, compared against a fixed threshold.
//
// A Field has a single owner. It is safe for concurrent reads (Value,
// Inside, the scans in this package) as long as nobody mutates it meanwhile.
type Field struct {
	sources   []Source
	threshold float64
}

// NewField creates an empty field. The threshold cannot be changed later.
func NewField(threshold float64) *Field {
	return &Field{threshold: threshold}
}

// Threshold returns the iso level separating inside from outside.
func (f *Field) Threshold() float64 { return f.threshold }

// Len returns the number of sources.
func (f *Field) Len() int { return len(f.sources) }

// Add appends a source. Sources are never deduplicated.
func (f *Field) Add(x, y, radius float64) {
	f.sources = append(f.sources, Source{X: x, Y: y, Radius: radius})
}

// Clear removes every source.
func (f *Field) Clear() {
	f.sources = f.sources[:0]
}

// ReplaceAll swaps the whole source set in one call. The field keeps its
// own copy, so the caller may reuse the slice.
func (f *Field) ReplaceAll(sources []Source) {
	f.sources = append(f.sources[:0], sources...)
}

// Sources returns a copy of the current source set.
func (f *Field) Sources() []Source {
	if len(f.sources) == 0 {
		return nil
	}
	out := make([]Source, len(f.sources))
	copy(out, f.sources)
	return out
}

// Value evaluates the field at (x, y). An empty field is 0 everywhere and a
// source with a non-positive radius contributes nothing.
//
// Non-finite coordinates are not checked; the result is then unspecified.
func (f *Field) Value(x, y float64) float64 {
	var total float64
	for _, s := range f.sources {
		if s.Radius <= 0 {
			continue
		}
		dx := x - s.X
		dy := y - s.Y
		total += s.Radius * s.Radius / (dx*dx + dy*dy + Epsilon)
	}
	return total
}

// Inside reports whether (x, y) is on or inside the iso contour. A value
// exactly at the threshold counts as inside.
func (f *Field) Inside(x, y float64) bool {
	return f.Value(x, y) >= f.threshold
}
