package kiosk

// ScreenState is the explicit state of a kiosk screen. Public operations
// never leave a screen in StateSearching or StateSubmitting.
type ScreenState int

const (
	StateIdle ScreenState = iota
	StateSearching
	StateFound
	StateSubmitting
	StateBadgeDisplayed
)

func (s ScreenState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateFound:
		return "found"
	case StateSubmitting:
		return "submitting"
	case StateBadgeDisplayed:
		return "badge_displayed"
	default:
		return "unknown"
	}
}

// inFlight reports whether an operation is currently pending on the screen.
func (s ScreenState) inFlight() bool {
	return s == StateSearching || s == StateSubmitting
}
