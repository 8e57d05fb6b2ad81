// Package scanner owns the badge scanner as an exclusive resource. The
// device is line-oriented: a keyboard-wedge or serial QR reader emits the
// decoded payload followed by a newline.
package scanner

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// OpenFunc opens the scanner device for one session.
type OpenFunc func() (io.ReadCloser, error)

// DeviceOpener opens the device at path; an empty path reads decoded badge
// IDs from stdin, which is how keyboard-wedge scanners present themselves.
func DeviceOpener(path string) OpenFunc {
	return func() (io.ReadCloser, error) {
		if path == "" {
			return newStdinStream(os.Stdin), nil
		}
		return os.Open(path)
	}
}

// stdinStream wraps the shared process stdin for one session. Stdin itself
// is never closed; Close detaches the session, so a read that completes
// after the detach is dropped instead of delivered and the reader goroutine
// exits on the next line.
type stdinStream struct {
	r      io.Reader
	closed chan struct{}
}

func newStdinStream(r io.Reader) *stdinStream {
	return &stdinStream{r: r, closed: make(chan struct{})}
}

func (s *stdinStream) Read(p []byte) (int, error) {
	select {
	case <-s.closed:
		return 0, io.EOF
	default:
	}
	n, err := s.r.Read(p)
	select {
	case <-s.closed:
		return 0, io.EOF
	default:
	}
	return n, err
}

func (s *stdinStream) Close() error {
	close(s.closed)
	return nil
}

// Manager holds at most one scanner session. Starting a new session tears
// down the previous one first, so the device handle is never duplicated.
type Manager struct {
	mu     sync.Mutex
	open   OpenFunc
	active *session
	logger *slog.Logger
}

func NewManager(open OpenFunc) *Manager {
	return &Manager{
		open:   open,
		logger: slog.With("component", "scanner"),
	}
}

// Start acquires a session and delivers decoded payloads to onDecode on a
// dedicated goroutine until the session is stopped or the device closes.
func (m *Manager) Start(onDecode func(text string), onError func(err error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		m.logger.Debug("Releasing previous scanner session")
		m.active.close()
		m.active = nil
	}

	r, err := m.open()
	if err != nil {
		return err
	}

	s := newSession(r)
	m.active = s
	m.logger.Debug("Scanner session acquired")

	go s.run(onDecode, onError)
	return nil
}

// Stop releases the active session. Idempotent; safe from decode callbacks.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.close()
		m.active = nil
		m.logger.Debug("Scanner session released")
	}
}

type session struct {
	r      io.ReadCloser
	once   sync.Once
	closed chan struct{}
}

func newSession(r io.ReadCloser) *session {
	return &session{r: r, closed: make(chan struct{})}
}

func (s *session) run(onDecode func(string), onError func(error)) {
	lines := bufio.NewScanner(s.r)
	for lines.Scan() {
		// A line that races with close belongs to no session
		select {
		case <-s.closed:
			return
		default:
		}
		text := strings.TrimSpace(lines.Text())
		if text == "" {
			continue
		}
		onDecode(text)
	}

	// A read error after close is the close itself, not a device fault
	if err := lines.Err(); err != nil {
		select {
		case <-s.closed:
		default:
			if onError != nil {
				onError(err)
			}
		}
	}
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.closed)
		s.r.Close()
	})
}
