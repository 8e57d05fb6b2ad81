package routes

import (
	"errors"
	"net/http"
	"strings"

	"visitor-kiosk/internal/api"
	"visitor-kiosk/internal/directory"
	"visitor-kiosk/internal/kiosk"
)

// Facade-level errors
var (
	ErrUnknownScreen  = errors.New("unknown screen")
	ErrNoSession      = errors.New("no active session")
	ErrStaleSession   = errors.New("stale session")
	ErrInvalidRequest = errors.New("invalid request")
)

// ErrorInfo carries the user-facing message and a stable code for the
// kiosk display.
type ErrorInfo struct {
	Message string
	Code    string
}

// errorStatusMap maps sentinel errors to HTTP status codes.
var errorStatusMap = map[error]int{
	// 400 Bad Request
	ErrInvalidRequest: http.StatusBadRequest,

	// 404 Not Found
	directory.ErrNotFound: http.StatusNotFound,
	ErrUnknownScreen:      http.StatusNotFound,

	// 409 Conflict: wrong presence status, no selection, or an operation
	// already in flight on the screen
	kiosk.ErrIneligible: http.StatusConflict,
	kiosk.ErrBusy:       http.StatusConflict,
	kiosk.ErrNoVisitor:  http.StatusConflict,

	// 410 Gone: the screen this response belongs to was torn down
	ErrNoSession:    http.StatusGone,
	ErrStaleSession: http.StatusGone,

	// 422 Unprocessable Entity
	kiosk.ErrValidation: http.StatusUnprocessableEntity,
	kiosk.ErrNoBadgeID:  http.StatusUnprocessableEntity,

	// 502 Bad Gateway: the backend failed or could not be reached
	api.ErrCallFailed: http.StatusBadGateway,
}

// errorInfoMap maps sentinel errors to fallback display text and codes.
var errorInfoMap = map[error]ErrorInfo{
	ErrInvalidRequest: {
		Message: "Requête invalide",
		Code:    "INVALID_REQUEST",
	},
	directory.ErrNotFound: {
		Message: "Visiteur non trouvé",
		Code:    "VISITOR_NOT_FOUND",
	},
	ErrUnknownScreen: {
		Message: "Écran inconnu",
		Code:    "UNKNOWN_SCREEN",
	},
	kiosk.ErrIneligible: {
		Message: "Statut du visiteur incompatible avec cette action",
		Code:    "INELIGIBLE",
	},
	kiosk.ErrBusy: {
		Message: "Une opération est déjà en cours",
		Code:    "BUSY",
	},
	kiosk.ErrNoVisitor: {
		Message: "Aucun visiteur sélectionné",
		Code:    "NO_VISITOR",
	},
	ErrNoSession: {
		Message: "Aucune session active pour cet écran",
		Code:    "NO_SESSION",
	},
	ErrStaleSession: {
		Message: "Session expirée",
		Code:    "STALE_SESSION",
	},
	kiosk.ErrValidation: {
		Message: "Formulaire invalide",
		Code:    "VALIDATION",
	},
	kiosk.ErrNoBadgeID: {
		Message: "Impossible de trouver le badge ID du visiteur",
		Code:    "NO_BADGE_ID",
	},
	api.ErrCallFailed: {
		Message: "Erreur de connexion au serveur. Veuillez réessayer.",
		Code:    "BACKEND_FAILED",
	},
}

// GetErrorStatus returns the HTTP status code for an error.
func GetErrorStatus(err error) int {
	if status, ok := errorStatusMap[err]; ok {
		return status
	}
	for knownErr, status := range errorStatusMap {
		if errors.Is(err, knownErr) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// GetErrorInfo returns the display message and code for an error. Wrapped
// screen errors carry their own user-facing text after the sentinel prefix;
// that text wins over the fallback.
func GetErrorInfo(err error) ErrorInfo {
	for knownErr, info := range errorInfoMap {
		if !errors.Is(err, knownErr) {
			continue
		}
		// Backend failures keep the generic text; their detail is transport
		// noise, not something to show a visitor.
		if knownErr == api.ErrCallFailed {
			return info
		}
		if msg := wrappedMessage(err, knownErr); msg != "" {
			info.Message = msg
		}
		return info
	}

	if GetErrorStatus(err) >= 500 {
		return ErrorInfo{Message: "Une erreur interne est survenue", Code: "INTERNAL"}
	}
	return ErrorInfo{Message: err.Error()}
}

// wrappedMessage extracts the text a screen attached after the sentinel,
// e.g. "validation failed: veuillez saisir un email" -> "veuillez saisir un email".
func wrappedMessage(err, sentinel error) string {
	prefix := sentinel.Error() + ": "
	if rest, ok := strings.CutPrefix(err.Error(), prefix); ok {
		return rest
	}
	return ""
}
