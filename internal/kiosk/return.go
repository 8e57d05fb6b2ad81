package kiosk

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"visitor-kiosk/internal/directory"
)

// ReturnForm captures the new purpose chosen by a returning visitor.
type ReturnForm struct {
	VisitType     string `json:"visit_type"`
	StaffMemberID int64  `json:"staff_member_id"`
	TrainingID    int64  `json:"training_id"`
}

// ReturnScreen reopens a visit for a visitor who already exited. Lookup is
// by email only; the badge was handed back at exit time.
type ReturnScreen struct {
	mu sync.Mutex

	dir    directory.Service
	notify Notifier
	logger *slog.Logger

	staff     []directory.StaffMember
	trainings []directory.Training

	state ScreenState
	found *directory.Visitor
}

func NewReturnScreen(ctx context.Context, svc directory.Service, notify Notifier) *ReturnScreen {
	s := &ReturnScreen{
		dir:    svc,
		notify: notify,
		logger: slog.With("component", "kiosk", "screen", "return"),
	}
	s.staff, s.trainings = loadReferenceData(ctx, svc, notify, s.logger)
	return s
}

func (s *ReturnScreen) State() ScreenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ReturnScreen) Staff() []directory.StaffMember { return s.staff }
func (s *ReturnScreen) Trainings() []directory.Training { return s.trainings }

func (s *ReturnScreen) Visitor() (directory.Visitor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.found == nil {
		return directory.Visitor{}, false
	}
	return *s.found, true
}

// LookupEmail resolves a visitor and verifies they have exited.
func (s *ReturnScreen) LookupEmail(ctx context.Context, email string) (directory.Visitor, error) {
	email, err := validateEmail(email)
	if err != nil {
		return directory.Visitor{}, err
	}

	s.mu.Lock()
	if s.state.inFlight() {
		s.mu.Unlock()
		return directory.Visitor{}, ErrBusy
	}
	s.state = StateSearching
	s.mu.Unlock()

	visitor, err := s.dir.FindByEmail(ctx, email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateIdle
		s.found = nil
		return directory.Visitor{}, err
	}

	if directory.ResolveStatus(visitor) != directory.StatusExited {
		s.state = StateIdle
		s.found = nil
		return directory.Visitor{}, fmt.Errorf("%w: ce visiteur est encore présent dans le bâtiment", ErrIneligible)
	}

	s.found = &visitor
	s.state = StateFound
	return visitor, nil
}

// Confirm reopens the visit with the chosen purpose. On success the screen
// resets to idle with cleared selections.
func (s *ReturnScreen) Confirm(ctx context.Context, form ReturnForm) error {
	if err := validatePurpose(form.VisitType, form.StaffMemberID, form.TrainingID); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state.inFlight() {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.found == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: aucun visiteur sélectionné", ErrNoVisitor)
	}
	req := directory.ReturnRequest{
		Email:     s.found.Email,
		VisitorID: s.found.ID,
		VisitType: form.VisitType,
	}
	switch form.VisitType {
	case VisitTypePersonnel:
		id := form.StaffMemberID
		req.StaffMemberID = &id
	case VisitTypeFormation:
		id := form.TrainingID
		req.TrainingID = &id
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	err := s.dir.RecordReturn(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateIdle
		return fmt.Errorf("erreur lors de l'enregistrement du retour: %w", err)
	}

	s.found = nil
	s.state = StateIdle
	s.notify.Notify(NoticeSuccess, "Retour enregistré avec succès ! Bon retour !")
	return nil
}

// Cancel dismisses a found visitor.
func (s *ReturnScreen) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.inFlight() {
		return
	}
	s.found = nil
	s.state = StateIdle
}
