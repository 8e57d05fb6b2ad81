package kiosk

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"visitor-kiosk/internal/directory"
)

// ExitScreen closes the active visit of a present visitor. Eligibility is a
// business rule, not a lookup miss: a visitor who already exited or never
// visited is reported as such and the screen drops back to idle.
type ExitScreen struct {
	mu sync.Mutex

	dir    directory.Service
	notify Notifier
	scans  ScanSource
	logger *slog.Logger

	state    ScreenState
	found    *directory.Visitor
	scanning bool
}

func NewExitScreen(svc directory.Service, notify Notifier, scans ScanSource) *ExitScreen {
	return &ExitScreen{
		dir:    svc,
		notify: notify,
		scans:  scans,
		logger: slog.With("component", "kiosk", "screen", "exit"),
	}
}

func (s *ExitScreen) State() ScreenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Visitor returns the present visitor awaiting exit confirmation.
func (s *ExitScreen) Visitor() (directory.Visitor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.found == nil {
		return directory.Visitor{}, false
	}
	return *s.found, true
}

// LookupEmail resolves a visitor and verifies they are currently present.
func (s *ExitScreen) LookupEmail(ctx context.Context, email string) (directory.Visitor, error) {
	email, err := validateEmail(email)
	if err != nil {
		return directory.Visitor{}, err
	}
	return s.lookup(ctx, func() (directory.Visitor, error) {
		return s.dir.FindByEmail(ctx, email)
	})
}

// LookupBadge resolves a scanned badge and verifies presence.
func (s *ExitScreen) LookupBadge(ctx context.Context, badgeID string) (directory.Visitor, error) {
	return s.lookup(ctx, func() (directory.Visitor, error) {
		return s.dir.FindByBadge(ctx, badgeID)
	})
}

func (s *ExitScreen) lookup(ctx context.Context, find func() (directory.Visitor, error)) (directory.Visitor, error) {
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

	switch directory.ResolveStatus(visitor) {
	case directory.StatusExited:
		s.state = StateIdle
		s.found = nil
		return directory.Visitor{}, fmt.Errorf("%w: ce visiteur est déjà sorti", ErrIneligible)
	case directory.StatusNeverVisited:
		s.state = StateIdle
		s.found = nil
		return directory.Visitor{}, fmt.Errorf("%w: ce visiteur n'a pas de visite active", ErrIneligible)
	}

	s.found = &visitor
	s.state = StateFound
	return visitor, nil
}

// Confirm closes the found visitor's visit. A visitor without a resolvable
// badge identifier short-circuits locally; the backend is never called.
func (s *ExitScreen) Confirm(ctx context.Context) error {
	s.mu.Lock()
	if s.state.inFlight() {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.found == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: aucun visiteur sélectionné", ErrNoVisitor)
	}
	badgeID, ok := s.found.CurrentBadgeID()
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: impossible de trouver le badge ID du visiteur", ErrNoBadgeID)
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	err := s.dir.RecordExit(ctx, badgeID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Stay on the found visitor so the confirmation can be retried
		s.state = StateFound
		return fmt.Errorf("erreur lors de l'enregistrement de la sortie: %w", err)
	}

	s.found = nil
	s.state = StateIdle
	s.notify.Notify(NoticeSuccess, "Sortie enregistrée avec succès ! Au revoir !")
	return nil
}

// StartScan switches the lookup into badge-scan mode.
func (s *ExitScreen) StartScan() error {
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

func (s *ExitScreen) handleScan(decoded string) {
	s.StopScan()

	s.notify.Notify(NoticeInfo, "QR Code détecté ! Recherche en cours...")
	if _, err := s.LookupBadge(context.Background(), decoded); err != nil {
		s.notify.Notify(NoticeError, fmt.Sprintf("Badge ID scanné: %s - Visiteur non trouvé", decoded))
		return
	}
	s.notify.Notify(NoticeSuccess, "Visiteur trouvé via QR Code !")
}

// StopScan releases the scanner session. Safe to call on every exit path.
func (s *ExitScreen) StopScan() {
	s.mu.Lock()
	active := s.scanning
	s.scanning = false
	s.mu.Unlock()
	if active && s.scans != nil {
		s.scans.Stop()
	}
}

func (s *ExitScreen) Teardown() {
	s.StopScan()
}
