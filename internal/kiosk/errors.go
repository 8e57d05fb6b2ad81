package kiosk

import "errors"

// Screen errors. Validation and eligibility failures are raised before any
// backend call; the user message travels in the wrapped error text.
var (
	// Client-side form validation failed
	ErrValidation = errors.New("validation failed")
	// Visitor found but in the wrong presence status for the action
	ErrIneligible = errors.New("visitor ineligible")
	// No badge identifier resolvable for the visitor's current visit
	ErrNoBadgeID = errors.New("no badge identifier")
	// Another lookup or submission is already in flight on this screen
	ErrBusy = errors.New("operation already in flight")
	// Confirm called with no visitor selected
	ErrNoVisitor = errors.New("no visitor selected")
)
