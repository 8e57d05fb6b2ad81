package routes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"visitor-kiosk/internal/badge"
	"visitor-kiosk/internal/directory"
	"visitor-kiosk/internal/kiosk"
)

// Screen names as addressed by the kiosk display.
const (
	ScreenEntry  = "entry"
	ScreenExit   = "exit"
	ScreenReturn = "return"
)

// Notice is a user-facing toast carried back to the display in responses.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// noticeBuffer collects screen notices between requests.
type noticeBuffer struct {
	mu    sync.Mutex
	items []Notice
}

func (b *noticeBuffer) Notify(level kiosk.NoticeLevel, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, Notice{Level: string(level), Message: message})
}

func (b *noticeBuffer) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.items
	b.items = nil
	if items == nil {
		items = []Notice{}
	}
	return items
}

// Deps are the collaborators a screen session is wired with.
type Deps struct {
	Directory directory.Service
	Printer   badge.Printer
	// Shared scanner; one physical device per kiosk. May be nil.
	Scanner kiosk.ScanSource
}

// Session binds one activated screen to its orchestrator and notices.
// The session id guards against late responses reaching a torn-down screen:
// a request carrying a stale id never touches the current orchestrator.
type Session struct {
	ID     string
	Screen string

	Notices *noticeBuffer

	Entry  *kiosk.EntryScreen
	Exit   *kiosk.ExitScreen
	Return *kiosk.ReturnScreen
}

func (s *Session) teardown() {
	switch {
	case s.Entry != nil:
		s.Entry.Teardown()
	case s.Exit != nil:
		s.Exit.Teardown()
	}
}

// Staff returns the session's screen-local staff list.
func (s *Session) Staff() []directory.StaffMember {
	switch {
	case s.Entry != nil:
		return s.Entry.Staff()
	case s.Return != nil:
		return s.Return.Staff()
	}
	return []directory.StaffMember{}
}

// Trainings returns the session's screen-local training list.
func (s *Session) Trainings() []directory.Training {
	switch {
	case s.Entry != nil:
		return s.Entry.Trainings()
	case s.Return != nil:
		return s.Return.Trainings()
	}
	return []directory.Training{}
}

// Sessions holds the active session per screen. One kiosk shows one screen
// at a time, so activating a screen replaces its previous session.
type Sessions struct {
	mu     sync.Mutex
	deps   Deps
	active map[string]*Session
	logger *slog.Logger
}

func NewSessions(deps Deps) *Sessions {
	return &Sessions{
		deps:   deps,
		active: make(map[string]*Session),
		logger: slog.With("component", "sessions"),
	}
}

// Activate tears down any previous session for the screen (releasing its
// scanner) and builds a fresh one with newly fetched reference data.
func (r *Sessions) Activate(ctx context.Context, screen string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.active[screen]; ok {
		prev.teardown()
		delete(r.active, screen)
	}

	s := &Session{
		ID:      uuid.NewString(),
		Screen:  screen,
		Notices: &noticeBuffer{},
	}

	switch screen {
	case ScreenEntry:
		s.Entry = kiosk.NewEntryScreen(ctx, r.deps.Directory, s.Notices, r.deps.Printer, r.deps.Scanner)
	case ScreenExit:
		s.Exit = kiosk.NewExitScreen(r.deps.Directory, s.Notices, r.deps.Scanner)
	case ScreenReturn:
		s.Return = kiosk.NewReturnScreen(ctx, r.deps.Directory, s.Notices)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownScreen, screen)
	}

	r.active[screen] = s
	r.logger.Info("Screen activated", "screen", screen, "session_id", s.ID)
	return s, nil
}

// Get resolves the session for a screen, verifying the caller's session id.
func (r *Sessions) Get(screen, id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.active[screen]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, screen)
	}
	if id == "" || id != s.ID {
		return nil, fmt.Errorf("%w: %s", ErrStaleSession, screen)
	}
	return s, nil
}

// Deactivate tears down the screen's session if the id still matches.
func (r *Sessions) Deactivate(screen, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.active[screen]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSession, screen)
	}
	if id != s.ID {
		return fmt.Errorf("%w: %s", ErrStaleSession, screen)
	}
	s.teardown()
	delete(r.active, screen)
	r.logger.Info("Screen deactivated", "screen", screen, "session_id", id)
	return nil
}
