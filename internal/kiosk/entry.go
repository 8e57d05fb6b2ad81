// Package kiosk implements the three visitor screens (entry, exit, return)
// as explicit state machines over the directory service. Screens hold their
// own reference data for the lifetime of one activation; switching screens
// means building a new one.
package kiosk

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"visitor-kiosk/internal/badge"
	"visitor-kiosk/internal/directory"
)

// EntryForm carries the new-entry fields as typed by the visitor. A zero
// StaffMemberID/TrainingID means no selection.
type EntryForm struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	VisitType     string `json:"visit_type"`
	StaffMemberID int64  `json:"staff_member_id"`
	TrainingID    int64  `json:"training_id"`
}

func (f EntryForm) validate() error {
	if strings.TrimSpace(f.FirstName) == "" || strings.TrimSpace(f.LastName) == "" {
		return fmt.Errorf("%w: veuillez remplir tous les champs obligatoires", ErrValidation)
	}
	if _, err := validateEmail(f.Email); err != nil {
		return err
	}
	return validatePurpose(f.VisitType, f.StaffMemberID, f.TrainingID)
}

// request maps the form onto the backend payload. The purpose is derived
// from the visit type and exactly one of the two target ids is carried.
func (f EntryForm) request() directory.EntryRequest {
	req := directory.EntryRequest{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
	}
	switch f.VisitType {
	case VisitTypePersonnel:
		req.Purpose = directory.PurposeVisit
		id := f.StaffMemberID
		req.StaffMemberID = &id
	case VisitTypeFormation:
		req.Purpose = directory.PurposeTraining
		id := f.TrainingID
		req.TrainingID = &id
	}
	return req
}

// EntryScreen registers new visits. Lookup is a convenience autofill only:
// a fresh entry is allowed whatever the visitor's current status.
type EntryScreen struct {
	mu sync.Mutex

	dir     directory.Service
	notify  Notifier
	printer badge.Printer
	scans   ScanSource
	logger  *slog.Logger

	staff     []directory.StaffMember
	trainings []directory.Training

	state     ScreenState
	found     *directory.Visitor
	lastBadge *badge.Data
	scanning  bool
}

// NewEntryScreen builds the screen and fetches its reference data. A failed
// fetch degrades to empty lists with a notice; the screen stays usable.
func NewEntryScreen(ctx context.Context, svc directory.Service, notify Notifier, printer badge.Printer, scans ScanSource) *EntryScreen {
	s := &EntryScreen{
		dir:     svc,
		notify:  notify,
		printer: printer,
		scans:   scans,
		logger:  slog.With("component", "kiosk", "screen", "entry"),
	}
	s.staff, s.trainings = loadReferenceData(ctx, svc, notify, s.logger)
	return s
}

func loadReferenceData(ctx context.Context, svc directory.Service, notify Notifier, logger *slog.Logger) ([]directory.StaffMember, []directory.Training) {
	staff, err := svc.StaffMembers(ctx)
	if err != nil {
		logger.Warn("Failed to load staff members", "error", err)
		staff = []directory.StaffMember{}
	}
	trainings, terr := svc.TrainingsToday(ctx)
	if terr != nil {
		logger.Warn("Failed to load trainings", "error", terr)
		trainings = []directory.Training{}
	}
	if err != nil || terr != nil {
		notify.Notify(NoticeError, "Erreur lors du chargement des données. Certaines fonctionnalités peuvent être limitées.")
	}
	return staff, trainings
}

func (s *EntryScreen) State() ScreenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *EntryScreen) Staff() []directory.StaffMember { return s.staff }
func (s *EntryScreen) Trainings() []directory.Training { return s.trainings }

// LookupEmail resolves a returning visitor by email for form prefill.
func (s *EntryScreen) LookupEmail(ctx context.Context, email string) (directory.Visitor, error) {
	email, err := validateEmail(email)
	if err != nil {
		return directory.Visitor{}, err
	}
	return s.lookup(ctx, func() (directory.Visitor, error) {
		return s.dir.FindByEmail(ctx, email)
	})
}

// LookupBadge resolves a returning visitor by badge identifier.
func (s *EntryScreen) LookupBadge(ctx context.Context, badgeID string) (directory.Visitor, error) {
	badgeID = strings.TrimSpace(badgeID)
	if badgeID == "" {
		return directory.Visitor{}, fmt.Errorf("%w: veuillez saisir un badge ID", ErrValidation)
	}
	return s.lookup(ctx, func() (directory.Visitor, error) {
		return s.dir.FindByBadge(ctx, badgeID)
	})
}

func (s *EntryScreen) lookup(ctx context.Context, find func() (directory.Visitor, error)) (directory.Visitor, error) {
	s.mu.Lock()
	if s.state.inFlight() {
		s.mu.Unlock()
		return directory.Visitor{}, ErrBusy
	}
	s.state = StateSearching
	s.mu.Unlock()

	visitor, err := find()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateIdle
		s.found = nil
		return directory.Visitor{}, err
	}
	s.found = &visitor
	s.state = StateFound
	return visitor, nil
}

// Prefill returns the form values for the found visitor, if any.
func (s *EntryScreen) Prefill() (EntryForm, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.found == nil {
		return EntryForm{}, false
	}
	return EntryForm{
		FirstName: s.found.FirstName,
		LastName:  s.found.LastName,
		Email:     s.found.Email,
	}, true
}

// Cancel dismisses a found visitor and returns to idle.
func (s *EntryScreen) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.inFlight() {
		return
	}
	s.found = nil
	s.state = StateIdle
}

// Submit validates the form, registers the entry and renders the badge.
// On failure the screen returns to idle and the caller keeps the form so
// the visitor can retry.
func (s *EntryScreen) Submit(ctx context.Context, form EntryForm) (badge.Data, error) {
	if err := form.validate(); err != nil {
		return badge.Data{}, err
	}

	s.mu.Lock()
	if s.state.inFlight() {
		s.mu.Unlock()
		return badge.Data{}, ErrBusy
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	result, err := s.dir.RecordEntry(ctx, form.request())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateIdle
		return badge.Data{}, fmt.Errorf("erreur lors de l'enregistrement de l'entrée: %w", err)
	}

	data := badge.Format(result, s.staff, s.trainings)
	s.lastBadge = &data
	s.state = StateBadgeDisplayed
	s.found = nil

	if s.printer != nil {
		if perr := s.printer.Print(ctx, data); perr != nil {
			s.logger.Warn("Badge print failed", "badge_id", data.BadgeID, "error", perr)
			s.notify.Notify(NoticeError, "Impression du badge impossible")
		}
	}

	s.notify.Notify(NoticeSuccess, "Entrée enregistrée avec succès !")
	return data, nil
}

// Badge returns the badge rendered by the last successful submission.
func (s *EntryScreen) Badge() (badge.Data, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastBadge == nil {
		return badge.Data{}, false
	}
	return *s.lastBadge, true
}

// CloseBadge dismisses the displayed badge.
func (s *EntryScreen) CloseBadge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateBadgeDisplayed {
		s.state = StateIdle
		s.lastBadge = nil
	}
}

// StartScan switches the lookup into badge-scan mode. The scanner session is
// exclusive; the source tears down any previous session before acquiring.
func (s *EntryScreen) StartScan() error {
	if s.scans == nil {
		return fmt.Errorf("%w: aucun scanner configuré", ErrValidation)
	}
	s.mu.Lock()
	s.scanning = true
	s.mu.Unlock()

	return s.scans.Start(s.handleScan, func(err error) {
		s.logger.Debug("Scanner read error", "error", err)
	})
}

// handleScan runs on the scanner's delivery goroutine. A hit populates the
// found visitor exactly like a manual lookup; a miss keeps the flow alive.
func (s *EntryScreen) handleScan(decoded string) {
	// One decode per session: release the scanner before the lookup
	s.StopScan()

	s.notify.Notify(NoticeInfo, "QR Code détecté ! Recherche en cours...")
	if _, err := s.LookupBadge(context.Background(), decoded); err != nil {
		s.notify.Notify(NoticeError, fmt.Sprintf("Badge ID scanné: %s - Visiteur non trouvé", decoded))
		return
	}
	s.notify.Notify(NoticeSuccess, "Visiteur trouvé via QR Code !")
}

// StopScan releases the scanner session. Safe to call on every exit path.
func (s *EntryScreen) StopScan() {
	s.mu.Lock()
	active := s.scanning
	s.scanning = false
	s.mu.Unlock()
	if active && s.scans != nil {
		s.scans.Stop()
	}
}

// Teardown releases screen resources; a late lookup response after teardown
// only touches this screen's own state, never the next screen's.
func (s *EntryScreen) Teardown() {
	s.StopScan()
}
