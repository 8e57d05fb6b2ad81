// Package badge turns a successful entry into printable badge data.
package badge

import (
	"time"

	"visitor-kiosk/internal/directory"
)

// Placeholder used when a field cannot be resolved from reference data.
const NotDefined = "Non défini"

// Data is the value object handed to the print collaborator.
type Data struct {
	BadgeID     string    `json:"badge_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Purpose     string    `json:"purpose"`
	Destination string    `json:"destination"`
	Contact     string    `json:"contact"`
	EnteredAt   time.Time `json:"entered_at"`
}

// Format resolves destination room and contact from the screen's cached
// reference lists. An absent or unmatched id falls back to the placeholder
// rather than failing; the badge still prints.
func Format(result directory.EntryResult, staff []directory.StaffMember, trainings []directory.Training) Data {
	data := Data{
		BadgeID:     result.BadgeID,
		FirstName:   orDefault(result.Visitor.FirstName),
		LastName:    orDefault(result.Visitor.LastName),
		Email:       orDefault(result.Visitor.Email),
		Purpose:     orDefault(result.Visit.Purpose),
		Destination: NotDefined,
		Contact:     NotDefined,
		EnteredAt:   result.Visit.EnteredAt,
	}

	switch {
	case result.Visit.Purpose == directory.PurposeVisit && result.Visit.StaffMemberID != nil:
		for _, member := range staff {
			if member.ID == *result.Visit.StaffMemberID {
				if member.Room != "" {
					data.Destination = member.Room
				}
				data.Contact = member.LastName + " " + member.FirstName
				break
			}
		}
	case result.Visit.Purpose == directory.PurposeTraining && result.Visit.TrainingID != nil:
		for _, training := range trainings {
			if training.ID == *result.Visit.TrainingID {
				if training.Room != "" {
					data.Destination = training.Room
				}
				if training.Title != "" {
					data.Contact = training.Title
				}
				break
			}
		}
	}

	return data
}

func orDefault(s string) string {
	if s == "" {
		return NotDefined
	}
	return s
}
