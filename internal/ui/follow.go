package ui

// FollowMode controls whether the mouse steers the body.
type FollowMode int

const (
	FollowOff FollowMode = iota
	FollowOn
)

// Toggle switches between follow on and off.
func (f FollowMode) Toggle() FollowMode {
	if f == FollowOn {
		return FollowOff
	}
	return FollowOn
}

// Icon returns a visual indicator for the follow mode.
func (f FollowMode) Icon() string {
	if f == FollowOn {
		return "[follow]"
	}
	return ""
}
