package directory

// PresenceStatus is derived from the embedded last visit; it is never
// persisted or sent to the backend.
type PresenceStatus string

const (
	StatusNeverVisited PresenceStatus = "never_visited"
	StatusPresent      PresenceStatus = "present"
	StatusExited       PresenceStatus = "exited"
)

// Label returns the status text shown on the kiosk.
func (s PresenceStatus) Label() string {
	switch s {
	case StatusPresent:
		return "Présent"
	case StatusExited:
		return "Sorti"
	default:
		return "Jamais venu"
	}
}

// ResolveStatus derives the tri-state presence status of a visitor from its
// last visit. Exactly one status holds for any visitor.
func ResolveStatus(v Visitor) PresenceStatus {
	if v.LastVisit == nil {
		return StatusNeverVisited
	}
	if v.LastVisit.ExitedAt == nil {
		return StatusPresent
	}
	return StatusExited
}
