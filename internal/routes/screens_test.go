package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"visitor-kiosk/internal/badge"
	"visitor-kiosk/internal/directory"
)

// stubDirectory serves canned visitors for facade tests.
type stubDirectory struct {
	visitors map[string]directory.Visitor
}

func (s *stubDirectory) FindByEmail(ctx context.Context, email string) (directory.Visitor, error) {
	v, ok := s.visitors[email]
	if !ok {
		return directory.Visitor{}, directory.ErrNotFound
	}
	return v, nil
}

func (s *stubDirectory) FindByBadge(ctx context.Context, badgeID string) (directory.Visitor, error) {
	return directory.Visitor{}, directory.ErrNotFound
}

func (s *stubDirectory) RecordEntry(ctx context.Context, req directory.EntryRequest) (directory.EntryResult, error) {
	return directory.EntryResult{
		Visitor: directory.Visitor{ID: 1, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email},
		Visit:   directory.Visit{BadgeID: "B-1", Purpose: req.Purpose, StaffMemberID: req.StaffMemberID, TrainingID: req.TrainingID, EnteredAt: time.Now()},
		BadgeID: "B-1",
	}, nil
}

func (s *stubDirectory) RecordExit(ctx context.Context, badgeID string) error { return nil }

func (s *stubDirectory) RecordReturn(ctx context.Context, req directory.ReturnRequest) error {
	return nil
}

func (s *stubDirectory) StaffMembers(ctx context.Context) ([]directory.StaffMember, error) {
	return []directory.StaffMember{{ID: 3, FirstName: "Anne", LastName: "Durand", Room: "B204"}}, nil
}

func (s *stubDirectory) TrainingsToday(ctx context.Context) ([]directory.Training, error) {
	return []directory.Training{}, nil
}

func testRouter(t *testing.T, dir directory.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	sessions := NewSessions(Deps{Directory: dir, Printer: badge.Discard{}})
	ScreenRoutes(r.Group("/screens"), sessions)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, sessionID string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]json.RawMessage
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func activate(t *testing.T, r *gin.Engine, screen string) string {
	t.Helper()
	w, body := doJSON(t, r, http.MethodPost, "/screens/"+screen+"/activate", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activate %s: status %d, body %s", screen, w.Code, w.Body.String())
	}
	var id string
	if err := json.Unmarshal(body["session_id"], &id); err != nil {
		t.Fatalf("no session_id in %s", w.Body.String())
	}
	return id
}

func TestActivate_ReturnsSessionAndReferenceData(t *testing.T) {
	r := testRouter(t, &stubDirectory{})
	w, body := doJSON(t, r, http.MethodPost, "/screens/entry/activate", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var staff []directory.StaffMember
	if err := json.Unmarshal(body["staff"], &staff); err != nil || len(staff) != 1 {
		t.Fatalf("staff not returned: %s", w.Body.String())
	}
}

func TestActivate_UnknownScreen(t *testing.T) {
	r := testRouter(t, &stubDirectory{})
	w, body := doJSON(t, r, http.MethodPost, "/screens/settings/activate", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
	if string(body["code"]) != `"UNKNOWN_SCREEN"` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLookup_RequiresSession(t *testing.T) {
	r := testRouter(t, &stubDirectory{})
	w, body := doJSON(t, r, http.MethodPost, "/screens/entry/lookup", "", map[string]string{"email": "a@b.fr"})
	if w.Code != http.StatusGone {
		t.Fatalf("status %d, want 410", w.Code)
	}
	if string(body["code"]) != `"NO_SESSION"` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLookup_StaleSessionRejected(t *testing.T) {
	dir := &stubDirectory{visitors: map[string]directory.Visitor{
		"jean@example.fr": {ID: 1, Email: "jean@example.fr"},
	}}
	r := testRouter(t, dir)

	old := activate(t, r, "entry")
	// Re-activation invalidates the previous session id
	activate(t, r, "entry")

	w, body := doJSON(t, r, http.MethodPost, "/screens/entry/lookup", old, map[string]string{"email": "jean@example.fr"})
	if w.Code != http.StatusGone {
		t.Fatalf("status %d, want 410", w.Code)
	}
	if string(body["code"]) != `"STALE_SESSION"` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLookup_ReturnsVisitorWithStatus(t *testing.T) {
	dir := &stubDirectory{visitors: map[string]directory.Visitor{
		"jean@example.fr": {
			ID: 1, FirstName: "Jean", Email: "jean@example.fr",
			LastVisit: &directory.Visit{BadgeID: "B-0", EnteredAt: time.Now()},
		},
	}}
	r := testRouter(t, dir)
	id := activate(t, r, "entry")

	w, body := doJSON(t, r, http.MethodPost, "/screens/entry/lookup", id, map[string]string{"email": "jean@example.fr"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if string(body["status_label"]) != `"Présent"` {
		t.Fatalf("unexpected status: %s", w.Body.String())
	}
}

func TestLookup_MissIs404(t *testing.T) {
	r := testRouter(t, &stubDirectory{})
	id := activate(t, r, "entry")

	w, body := doJSON(t, r, http.MethodPost, "/screens/entry/lookup", id, map[string]string{"email": "nobody@example.fr"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
	if string(body["code"]) != `"VISITOR_NOT_FOUND"` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLookup_InvalidEmailIs422(t *testing.T) {
	r := testRouter(t, &stubDirectory{})
	id := activate(t, r, "entry")

	w, body := doJSON(t, r, http.MethodPost, "/screens/entry/lookup", id, map[string]string{"email": "pas-un-email"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", w.Code)
	}
	var msg string
	json.Unmarshal(body["message"], &msg)
	if msg != "veuillez saisir un email valide" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestReturnScreen_RejectsBadgeLookup(t *testing.T) {
	r := testRouter(t, &stubDirectory{})
	id := activate(t, r, "return")

	w, _ := doJSON(t, r, http.MethodPost, "/screens/return/lookup", id, map[string]string{"badge_id": "B-1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestEntrySubmit_EndToEnd(t *testing.T) {
	r := testRouter(t, &stubDirectory{})
	id := activate(t, r, "entry")

	w, body := doJSON(t, r, http.MethodPost, "/screens/entry/submit", id, map[string]any{
		"first_name":      "Jean",
		"last_name":       "Dupont",
		"email":           "jean@example.fr",
		"visit_type":      "personnel",
		"staff_member_id": 3,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var data badge.Data
	if err := json.Unmarshal(body["badge"], &data); err != nil {
		t.Fatalf("no badge in response: %s", w.Body.String())
	}
	if data.BadgeID != "B-1" || data.Destination != "B204" {
		t.Fatalf("unexpected badge: %+v", data)
	}
	if string(body["state"]) != `"badge_displayed"` {
		t.Fatalf("unexpected state: %s", body["state"])
	}
}

func TestDeactivate_EndsSession(t *testing.T) {
	r := testRouter(t, &stubDirectory{})
	id := activate(t, r, "exit")

	w, _ := doJSON(t, r, http.MethodDelete, "/screens/exit", id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("deactivate status %d", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/screens/exit/lookup", id, map[string]string{"email": "a@b.fr"})
	if w.Code != http.StatusGone {
		t.Fatalf("status %d, want 410 after deactivate", w.Code)
	}
}
