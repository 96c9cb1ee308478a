package presence

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
	ch    chan string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan string, 16)}
}

func (r *recorder) reconcile(ctx context.Context, employeeID string, now time.Time) error {
	r.mu.Lock()
	r.calls = append(r.calls, employeeID)
	r.mu.Unlock()
	r.ch <- employeeID
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recorder) wait(t *testing.T) string {
	t.Helper()
	select {
	case id := <-r.ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("reconcile was not called")
		return ""
	}
}

func TestTracker_FiresAfterGrace(t *testing.T) {
	t.Parallel()
	rec := newRecorder()
	tr := NewTracker(20*time.Millisecond, rec.reconcile)
	defer tr.Shutdown()

	tr.Connect("e1")
	tr.Disconnect("e1")

	assert.Equal(t, "e1", rec.wait(t))
}

func TestTracker_ReconnectCancelsTimer(t *testing.T) {
	t.Parallel()
	rec := newRecorder()
	tr := NewTracker(50*time.Millisecond, rec.reconcile)
	defer tr.Shutdown()

	tr.Connect("e1")
	tr.Disconnect("e1")
	tr.Connect("e1")

	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, rec.count())
}

func TestTracker_HeartbeatExtendsGrace(t *testing.T) {
	t.Parallel()
	rec := newRecorder()
	tr := NewTracker(120*time.Millisecond, rec.reconcile)
	defer tr.Shutdown()

	tr.Connect("e1")
	tr.Disconnect("e1")

	// Keep pushing the deadline back past the original expiry.
	for i := 0; i < 4; i++ {
		time.Sleep(60 * time.Millisecond)
		tr.Heartbeat("e1")
		assert.Zero(t, rec.count())
	}

	// Once heartbeats stop the timer finally fires.
	assert.Equal(t, "e1", rec.wait(t))
}

func TestTracker_SecondConnectionKeepsEmployeeAlive(t *testing.T) {
	t.Parallel()
	rec := newRecorder()
	tr := NewTracker(30*time.Millisecond, rec.reconcile)
	defer tr.Shutdown()

	tr.Connect("e1")
	tr.Connect("e1")
	tr.Disconnect("e1")

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, rec.count())

	tr.Disconnect("e1")
	assert.Equal(t, "e1", rec.wait(t))
}

func TestTracker_TabClosingReconcilesImmediately(t *testing.T) {
	t.Parallel()
	rec := newRecorder()
	tr := NewTracker(10*time.Second, rec.reconcile)
	defer tr.Shutdown()

	tr.Connect("e1")
	tr.Disconnect("e1")

	require.NoError(t, tr.TabClosing(context.Background(), "e1"))
	assert.Equal(t, 1, rec.count())

	// The cancelled grace timer must not produce a second call.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestTracker_SingleFireUnderRacingSignals(t *testing.T) {
	t.Parallel()
	var fired atomic.Int32
	tr := NewTracker(5*time.Millisecond, func(ctx context.Context, employeeID string, now time.Time) error {
		fired.Add(1)
		return nil
	})
	defer tr.Shutdown()

	tr.Connect("e1")
	tr.Disconnect("e1")

	// Race the expiring timer against the deliberate-exit path.
	time.Sleep(5 * time.Millisecond)
	_ = tr.TabClosing(context.Background(), "e1")

	time.Sleep(50 * time.Millisecond)
	// The reconcile target is idempotent, so at-least-once is the
	// contract; the generation check keeps duplicates to the race window.
	assert.GreaterOrEqual(t, fired.Load(), int32(1))
	assert.LessOrEqual(t, fired.Load(), int32(2))
}

func TestTracker_ShutdownStopsTimers(t *testing.T) {
	t.Parallel()
	rec := newRecorder()
	tr := NewTracker(30*time.Millisecond, rec.reconcile)

	tr.Connect("e1")
	tr.Disconnect("e1")
	tr.Shutdown()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, rec.count())

	// Post-shutdown signals are ignored.
	tr.Connect("e2")
	tr.Disconnect("e2")
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, rec.count())
}

func TestTracker_DisconnectUnknownEmployee(t *testing.T) {
	t.Parallel()
	rec := newRecorder()
	tr := NewTracker(10*time.Millisecond, rec.reconcile)
	defer tr.Shutdown()

	tr.Disconnect("ghost")
	tr.Heartbeat("ghost")

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, rec.count())
}
