package netif

import (
	"context"
	"sync"

	"mavrelay/internal/mavlink"
)

// mockDriver is a hand-written test double recording every call made
// against it, in the style of libs/sx126x's MockSPI.
type mockDriver struct {
	mu sync.Mutex

	identity string
	role     LinkRole

	sent  []*mavlink.Frame
	calls []string // ordered log of method names, for burst-shape assertions

	rx        chan *mavlink.Frame // frames Receive() will hand out, one per call
	readyGate chan struct{}       // closed/sent-to to resolve ReadyToReceive
}

func newMockDriver(identity string, role LinkRole) *mockDriver {
	return &mockDriver{
		identity:  identity,
		role:      role,
		rx:        make(chan *mavlink.Frame, 16),
		readyGate: make(chan struct{}, 16),
	}
}

func (m *mockDriver) Identity() string { return m.identity }
func (m *mockDriver) LinkRole() LinkRole { return m.role }

func (m *mockDriver) Send(ctx context.Context, f *mavlink.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, f)
	m.calls = append(m.calls, "send")
}

func (m *mockDriver) Receive(ctx context.Context) *mavlink.Frame {
	select {
	case f := <-m.rx:
		return f
	default:
		return nil
	}
}

func (m *mockDriver) PrepareToSend(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "prepare_to_send")
	return nil
}

func (m *mockDriver) PrepareToReceive(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "prepare_to_receive")
	return nil
}

func (m *mockDriver) ReadyToReceive(ctx context.Context) error {
	select {
	case <-m.readyGate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fireReady unblocks exactly one pending ReadyToReceive call.
func (m *mockDriver) fireReady() {
	m.readyGate <- struct{}{}
}

func (m *mockDriver) callLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockDriver) sentFrames() []*mavlink.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*mavlink.Frame, len(m.sent))
	copy(out, m.sent)
	return out
}
