package directory

import "time"

// Purpose values accepted by the backend for a visit.
const (
	PurposeVisit    = "visite"
	PurposeTraining = "formation"
)

// Visit is the canonical shape of a visit record. The backend leaves
// exited_at null while the visitor is physically present.
type Visit struct {
	BadgeID       string     `json:"badge_id"`
	Purpose       string     `json:"purpose"`
	StaffMemberID *int64     `json:"staff_member_id"`
	TrainingID    *int64     `json:"training_id"`
	EnteredAt     time.Time  `json:"entered_at"`
	ExitedAt      *time.Time `json:"exited_at"`
}

// Visitor is an identity record with the most recent visit embedded.
// BadgeID is set when the backend surfaces a badge identifier at the
// visitor level; some lookups put it under LastVisit instead.
type Visitor struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	BadgeID   string `json:"badge_id"`
	LastVisit *Visit `json:"last_visit"`
}

// CurrentBadgeID resolves the badge identifier for the visitor's current
// visit. The lookup endpoints are inconsistent about where they surface it,
// so both representations are accepted here and nowhere else.
func (v *Visitor) CurrentBadgeID() (string, bool) {
	if v.BadgeID != "" {
		return v.BadgeID, true
	}
	if v.LastVisit != nil && v.LastVisit.BadgeID != "" {
		return v.LastVisit.BadgeID, true
	}
	return "", false
}

type StaffMember struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Function  string `json:"function"`
	Room      string `json:"room"`
}

type Training struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Room  string `json:"room"`
}

// EntryRequest is the payload for registering a new entry. Exactly one of
// StaffMemberID and TrainingID is set, matching the declared purpose.
type EntryRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Purpose       string `json:"purpose"`
	StaffMemberID *int64 `json:"staff_member_id,omitempty"`
	TrainingID    *int64 `json:"training_id,omitempty"`
}

// EntryResult is the backend's response to a successful entry.
type EntryResult struct {
	Visitor Visitor `json:"visitor"`
	Visit   Visit   `json:"visit"`
	BadgeID string  `json:"badge_id"`
}

// ReturnRequest reopens a visit for a visitor who already exited.
type ReturnRequest struct {
	Email         string `json:"email"`
	VisitorID     int64  `json:"visitor_id"`
	VisitType     string `json:"visit_type"`
	StaffMemberID *int64 `json:"staff_member_id"`
	TrainingID    *int64 `json:"training_id"`
}
