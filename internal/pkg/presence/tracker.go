package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ReconcileFunc closes whatever open session the employee left behind. It
// must be idempotent; the tracker may invoke it for employees that already
// checked out cleanly.
type ReconcileFunc func(ctx context.Context, employeeID string, now time.Time) error

// reconcileTimeout bounds a single reconcile call fired from a timer.
const reconcileTimeout = 15 * time.Second

// entry is one employee's live-connection state. The generation counter
// invalidates timer fires that were scheduled before a later connect,
// heartbeat, or tab-close raced them.
type entry struct {
	conns      int
	timer      *time.Timer
	generation uint64
}

// Tracker watches per-employee stream connections and force-closes sessions
// for employees that vanish. A disconnect only matters when it is the last
// connection; the reconcile fires after a grace period that heartbeats keep
// pushing back.
type Tracker struct {
	mu        sync.Mutex
	entries   map[string]*entry
	grace     time.Duration
	reconcile ReconcileFunc
	closed    bool
}

func NewTracker(grace time.Duration, reconcile ReconcileFunc) *Tracker {
	return &Tracker{
		entries:   make(map[string]*entry),
		grace:     grace,
		reconcile: reconcile,
	}
}

// Connect registers a live connection. Any pending grace timer is cancelled:
// the employee is demonstrably back.
func (t *Tracker) Connect(employeeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	e := t.entries[employeeID]
	if e == nil {
		e = &entry{}
		t.entries[employeeID] = e
	}
	e.conns++
	e.generation++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// Disconnect drops one connection. When it was the last one the grace timer
// arms; other open tabs keep the employee alive with no timer at all.
func (t *Tracker) Disconnect(employeeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	e := t.entries[employeeID]
	if e == nil {
		return
	}
	if e.conns > 0 {
		e.conns--
	}
	if e.conns > 0 {
		return
	}

	e.generation++
	t.armLocked(employeeID, e)
}

// Heartbeat pushes back a pending grace timer. Without a pending timer it is
// a no-op: connected employees do not need one, unknown employees get
// nothing armed on their behalf.
func (t *Tracker) Heartbeat(employeeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	e := t.entries[employeeID]
	if e == nil || e.timer == nil {
		return
	}

	e.timer.Stop()
	e.generation++
	t.armLocked(employeeID, e)
}

// TabClosing is the deliberate-exit fast path: cancel any pending timer and
// reconcile right now instead of waiting out the grace period.
func (t *Tracker) TabClosing(ctx context.Context, employeeID string) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	if e := t.entries[employeeID]; e != nil {
		e.generation++
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(t.entries, employeeID)
	}
	t.mu.Unlock()

	return t.reconcile(ctx, employeeID, time.Now().UTC())
}

// Shutdown stops every pending timer. In-flight reconciles finish; nothing
// new fires afterwards.
func (t *Tracker) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for id, e := range t.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(t.entries, id)
	}
}

// armLocked schedules the grace-expiry fire for the entry's current
// generation. Caller holds t.mu.
func (t *Tracker) armLocked(employeeID string, e *entry) {
	gen := e.generation
	e.timer = time.AfterFunc(t.grace, func() {
		t.fire(employeeID, gen)
	})
}

// fire runs when a grace timer expires. A generation mismatch means the
// employee reconnected, heartbeat, or closed deliberately after this timer
// was scheduled; such fires are discarded.
func (t *Tracker) fire(employeeID string, gen uint64) {
	t.mu.Lock()
	e := t.entries[employeeID]
	if t.closed || e == nil || e.generation != gen || e.conns > 0 {
		t.mu.Unlock()
		return
	}
	delete(t.entries, employeeID)
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	if err := t.reconcile(ctx, employeeID, time.Now().UTC()); err != nil {
		slog.Warn("Failed to reconcile disconnected employee", "employee_id", employeeID, "error", err)
	}
}
