package kiosk

import (
	"fmt"
	"regexp"
	"strings"
)

// Visit types as presented on the kiosk form. They map onto the backend's
// purpose values: personnel -> "visite", formation -> "formation".
const (
	VisitTypePersonnel = "personnel"
	VisitTypeFormation = "formation"
)

// Same rule as the kiosk display: local part and domain separated by @,
// dotted domain, no whitespace anywhere.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// validateEmail checks a lookup email before it reaches the backend.
func validateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: veuillez saisir un email", ErrValidation)
	}
	if !IsValidEmail(email) {
		return "", fmt.Errorf("%w: veuillez saisir un email valide", ErrValidation)
	}
	return email, nil
}

// validatePurpose checks the visit-type radio plus its dependent selection.
// Exactly one of staffID/trainingID must be set for the chosen type.
func validatePurpose(visitType string, staffID, trainingID int64) error {
	switch visitType {
	case VisitTypePersonnel:
		if staffID == 0 {
			return fmt.Errorf("%w: veuillez choisir un membre du personnel", ErrValidation)
		}
	case VisitTypeFormation:
		if trainingID == 0 {
			return fmt.Errorf("%w: veuillez choisir une formation", ErrValidation)
		}
	case "":
		return fmt.Errorf("%w: veuillez choisir le type de visite", ErrValidation)
	default:
		return fmt.Errorf("%w: type de visite inconnu: %s", ErrValidation, visitType)
	}
	return nil
}
