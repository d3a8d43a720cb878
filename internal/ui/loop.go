package ui

// LoopMode says what happens when the scene reaches the end of its loop.
type LoopMode int

const (
	LoopForever LoopMode = iota
	LoopOnce
)

// Next cycles to the next loop mode.
func (l LoopMode) Next() LoopMode {
	switch l {
	case LoopForever:
		return LoopOnce
	default:
		return LoopForever
	}
}

// String returns the name of the loop mode.
func (l LoopMode) String() string {
	switch l {
	case LoopOnce:
		return "once"
	default:
		return "forever"
	}
}

// Icon returns a visual indicator for the loop mode.
func (l LoopMode) Icon() string {
	switch l {
	case LoopOnce:
		return "[once]"
	default:
		return ""
	}
}
