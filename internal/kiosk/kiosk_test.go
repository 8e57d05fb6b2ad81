package kiosk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"visitor-kiosk/internal/directory"
)

// fakeDirectory is a scriptable stand-in for the backend service.
type fakeDirectory struct {
	mu sync.Mutex

	visitors  map[string]directory.Visitor // keyed by email
	byBadge   map[string]directory.Visitor
	staff     []directory.StaffMember
	trainings []directory.Training

	entryResult directory.EntryResult
	entryErr    error
	exitErr     error
	returnErr   error

	// Optional gates: when set, the call blocks until the channel closes
	findGate  chan struct{}
	entryGate chan struct{}

	lastEntry  *directory.EntryRequest
	lastExit   string
	lastReturn *directory.ReturnRequest
	exitCalls  int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		visitors: map[string]directory.Visitor{},
		byBadge:  map[string]directory.Visitor{},
	}
}

func (f *fakeDirectory) FindByEmail(ctx context.Context, email string) (directory.Visitor, error) {
	f.mu.Lock()
	gate := f.findGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.visitors[email]
	if !ok {
		return directory.Visitor{}, directory.ErrNotFound
	}
	return v, nil
}

func (f *fakeDirectory) FindByBadge(ctx context.Context, badgeID string) (directory.Visitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.byBadge[badgeID]
	if !ok {
		return directory.Visitor{}, directory.ErrNotFound
	}
	return v, nil
}

func (f *fakeDirectory) RecordEntry(ctx context.Context, req directory.EntryRequest) (directory.EntryResult, error) {
	f.mu.Lock()
	gate := f.entryGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastEntry = &req
	if f.entryErr != nil {
		return directory.EntryResult{}, f.entryErr
	}
	return f.entryResult, nil
}

func (f *fakeDirectory) RecordExit(ctx context.Context, badgeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exitCalls++
	f.lastExit = badgeID
	return f.exitErr
}

func (f *fakeDirectory) RecordReturn(ctx context.Context, req directory.ReturnRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReturn = &req
	return f.returnErr
}

func (f *fakeDirectory) StaffMembers(ctx context.Context) ([]directory.StaffMember, error) {
	return f.staff, nil
}

func (f *fakeDirectory) TrainingsToday(ctx context.Context) ([]directory.Training, error) {
	return f.trainings, nil
}

// collectNotifier records notices for assertions.
type collectNotifier struct {
	mu      sync.Mutex
	notices []string
}

func (n *collectNotifier) Notify(level NoticeLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, string(level)+": "+message)
}

func (n *collectNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.notices...)
}

// fakeScanSource delivers decodes synchronously from the test goroutine.
type fakeScanSource struct {
	mu       sync.Mutex
	onDecode func(string)
	stops    int
}

func (f *fakeScanSource) Start(onDecode func(string), onError func(error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onDecode = onDecode
	return nil
}

func (f *fakeScanSource) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.onDecode = nil
}

func (f *fakeScanSource) emit(text string) {
	f.mu.Lock()
	deliver := f.onDecode
	f.mu.Unlock()
	if deliver != nil {
		deliver(text)
	}
}

func (f *fakeScanSource) stopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops > 0
}

func waitForState(t *testing.T, get func() ScreenState, want ScreenState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if get() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("screen never reached state %v", want)
}

var errBackendDown = errors.New("backend down")
