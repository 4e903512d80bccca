// Package drag tracks pointer-driven list reordering.
//
// The machine converts continuous pointer movement into discrete swaps on
// the displayed sequence. It moves through three states:
//
//	Idle -> Armed    pointer down, delay timer running
//	Armed -> Dragging delay elapsed with the pointer still down
//	Armed -> Idle    early release, or the list scrolled during the delay
//	Dragging -> Idle release (finalize) or cancel (revert)
//
// Only one session exists per machine; a pointer-down while a drag is in
// progress is ignored. Every transition out of Armed or Dragging stops the
// delay timer and releases the reconciler lock on all exit paths, including
// forced disposal via Close.
package drag

import (
	"errors"
	"time"

	"github.com/pvdberg/listmotion/internal/scrollfollow"
)

// State is the machine's current phase.
type State int

const (
	Idle State = iota
	Armed
	Dragging
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// ErrNoActiveSession is returned for drag events that arrive outside the
// state that expects them. Callers recover by ignoring the stray event.
var ErrNoActiveSession = errors.New("drag: no active session for event")

// SwapPolicy selects which extent the swap threshold is half of. The source
// behavior this models is underspecified for heterogeneous item sizes, so
// the policy is configurable; HalfNeighbor is the default.
type SwapPolicy int

const (
	HalfNeighbor SwapPolicy = iota
	HalfOwn
	HalfAverage
)

func (p SwapPolicy) String() string {
	switch p {
	case HalfOwn:
		return "half-own"
	case HalfAverage:
		return "half-average"
	default:
		return "half-neighbor"
	}
}

// Reorderer is the reconciler surface the machine drives. Swap merges one
// position exchange into the displayed sequence; Lock and Unlock bracket the
// drag so data updates queue instead of disturbing it; Snapshot returns a
// restore function used to revert a canceled drag.
type Reorderer interface {
	Len() int
	KeyAt(i int) string
	Swap(dragIndex, neighborIndex int)
	Lock()
	Unlock()
	Snapshot() func()
}

// Config controls drag behavior. All fields have usable zero values except
// that a zero Delay means drags start immediately on pointer-down.
type Config struct {
	// Delay is the Armed window between pointer-down and the drag starting.
	Delay time.Duration
	// Policy picks the swap threshold geometry.
	Policy SwapPolicy
	// VibrateOnPickup fires the OnPickup hook when a drag starts.
	VibrateOnPickup bool
	// ExclusiveCapture asks the host to route all pointer events to the
	// handle while a session exists, not just pointer-down.
	ExclusiveCapture bool
	// StaticParent marks the list as living in a non-scrollable parent.
	// Scroll changes during the Armed window then no longer cancel the
	// drag, because no competing scroll gesture can exist.
	StaticParent bool
}

// Hooks are the machine's notifications to the host.
type Hooks struct {
	// OnPickup fires when a drag actually starts (haptic feedback point).
	OnPickup func(key string, index int)
	// OnFinished fires once per completed drag with the dragged item's key,
	// its original and final indices, and the displayed order at the drop,
	// captured before any queued target replays.
	OnFinished func(key string, from, to int, order []string)
	// OnCancelled fires when a drag is canceled; the order has already
	// been reverted to what it was at pickup.
	OnCancelled func(key string)
}

// Session is the transient record of one drag. It exists from pointer-down
// until release or cancel.
type Session struct {
	Key           string
	OriginalIndex int
	CurrentIndex  int
	PickupOffset  float64
	CurrentOffset float64

	restore func()
	lastDir int // -1 up, +1 down, 0 none; breaks exact-boundary oscillation
}

// Machine is the drag/reorder state machine. It is single-threaded: the
// delay timer callback is routed through post so that it runs on the host
// event loop like every other input.
type Machine struct {
	cfg      Config
	list     Reorderer
	follower *scrollfollow.Follower
	extent   func(index int) float64
	hooks    Hooks

	state   State
	session *Session

	viewStart  float64
	viewExtent float64

	post       func(func())
	startTimer func(d time.Duration, f func()) func() bool
	stopTimer  func() bool
}

// New creates a drag machine. extent reports the size of the row at an
// index along the scroll axis, in the same units as pointer offsets.
// follower may be nil when edge auto-scroll is not wanted.
func New(cfg Config, list Reorderer, follower *scrollfollow.Follower, extent func(index int) float64, hooks Hooks) *Machine {
	m := &Machine{
		cfg:      cfg,
		list:     list,
		follower: follower,
		extent:   extent,
		hooks:    hooks,
		post:     func(f func()) { f() },
	}
	m.startTimer = func(d time.Duration, f func()) func() bool {
		t := time.AfterFunc(d, func() { m.post(f) })
		return t.Stop
	}
	return m
}

// SetPost routes deferred callbacks (the delay timer) through the host event
// loop. The default calls them inline, which is only right for tests.
func (m *Machine) SetPost(post func(func())) {
	m.post = post
}

// SetTimerFunc replaces the delay timer source. Tests use this to fire the
// Armed window by hand.
func (m *Machine) SetTimerFunc(start func(d time.Duration, f func()) func() bool) {
	m.startTimer = start
}

// State returns the machine's current phase.
func (m *Machine) State() State {
	return m.state
}

// Session returns a copy of the active session, if any.
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// SetViewport tells the machine where the visible window sits along the
// list axis, for edge auto-scroll evaluation.
func (m *Machine) SetViewport(start, extent float64) {
	m.viewStart = start
	m.viewExtent = extent
}

// PointerDown arms a drag for the row at index; offset is the pointer
// position along the list axis. A pointer-down while another session exists
// is ignored so drags never overlap.
func (m *Machine) PointerDown(index int, offset float64) {
	if m.state != Idle {
		return
	}
	if index < 0 || index >= m.list.Len() {
		return
	}
	m.session = &Session{
		Key:           m.list.KeyAt(index),
		OriginalIndex: index,
		CurrentIndex:  index,
		PickupOffset:  offset,
		CurrentOffset: offset,
	}
	if m.cfg.Delay <= 0 {
		m.beginDrag()
		return
	}
	m.state = Armed
	m.stopTimer = m.startTimer(m.cfg.Delay, m.timerFired)
}

// timerFired runs on the event loop when the Armed window elapses.
func (m *Machine) timerFired() {
	if m.state != Armed {
		// The session ended while the callback was queued. Expected race
		// during asynchronous cleanup; drop it.
		return
	}
	m.stopTimer = nil
	m.beginDrag()
}

func (m *Machine) beginDrag() {
	m.state = Dragging
	m.session.restore = m.list.Snapshot()
	m.list.Lock()
	if m.cfg.VibrateOnPickup && m.hooks.OnPickup != nil {
		m.hooks.OnPickup(m.session.Key, m.session.OriginalIndex)
	}
}

// ScrollChanged must be called when the list's scroll position changes. A
// scroll during the Armed window means the user is scrolling, not
// reordering, so the pending drag is abandoned - unless the list lives in a
// non-scrollable parent.
func (m *Machine) ScrollChanged() {
	if m.state != Armed || m.cfg.StaticParent {
		return
	}
	m.cancelTimer()
	m.session = nil
	m.state = Idle
}

// PointerMove updates the drag with a new pointer offset, emitting swaps as
// thresholds are crossed and asking for edge auto-scroll. Stray moves with
// no active drag return ErrNoActiveSession and have no effect.
func (m *Machine) PointerMove(offset float64) error {
	if m.state != Dragging {
		if m.state == Armed {
			// Movement during the delay only updates the offset; the drag
			// has not started yet.
			m.session.CurrentOffset = offset
			return nil
		}
		return ErrNoActiveSession
	}
	m.session.CurrentOffset = offset
	m.checkSwaps()
	if m.follower != nil {
		m.follower.Update(offset, m.viewStart, m.viewExtent)
	}
	return nil
}

// AutoScrolled folds host auto-scroll into the drag: the content moved by
// delta under a stationary pointer, which is the same displacement as the
// pointer moving by delta over stationary content. Newly revealed neighbors
// get swap-checked immediately.
func (m *Machine) AutoScrolled(delta float64) error {
	if m.state != Dragging {
		return ErrNoActiveSession
	}
	m.session.CurrentOffset += delta
	m.checkSwaps()
	return nil
}

// PointerUp ends the session. In Armed the drag never started, so nothing
// happened. In Dragging the current order becomes final and the host is
// notified once.
func (m *Machine) PointerUp() error {
	switch m.state {
	case Armed:
		m.cancelTimer()
		m.session = nil
		m.state = Idle
		return nil
	case Dragging:
		s := m.session
		m.endSession()
		if m.hooks.OnFinished != nil {
			m.hooks.OnFinished(s.Key, s.OriginalIndex, s.CurrentIndex, m.orderKeys())
		}
		m.list.Unlock()
		return nil
	default:
		return ErrNoActiveSession
	}
}

// PointerCancel aborts the session. A canceled drag reverts the list to the
// order it had at pickup, discarding all swaps.
func (m *Machine) PointerCancel() error {
	switch m.state {
	case Armed:
		m.cancelTimer()
		m.session = nil
		m.state = Idle
		return nil
	case Dragging:
		s := m.session
		m.endSession()
		if s.restore != nil {
			s.restore()
		}
		if m.hooks.OnCancelled != nil {
			m.hooks.OnCancelled(s.Key)
		}
		m.list.Unlock()
		return nil
	default:
		return ErrNoActiveSession
	}
}

// Close releases the machine's resources regardless of state. Used when the
// owning view is disposed mid-interaction; an active drag is canceled.
func (m *Machine) Close() {
	switch m.state {
	case Armed:
		m.cancelTimer()
		m.session = nil
		m.state = Idle
	case Dragging:
		_ = m.PointerCancel()
	}
}

// orderKeys snapshots the displayed order as identity keys.
func (m *Machine) orderKeys() []string {
	keys := make([]string, m.list.Len())
	for i := range keys {
		keys[i] = m.list.KeyAt(i)
	}
	return keys
}

// endSession tears down per-session resources common to drop and cancel.
func (m *Machine) endSession() {
	if m.follower != nil {
		m.follower.Stop()
	}
	m.session = nil
	m.state = Idle
}

func (m *Machine) cancelTimer() {
	if m.stopTimer != nil {
		m.stopTimer()
		m.stopTimer = nil
	}
}

// checkSwaps emits position swaps while the accumulated displacement crosses
// the threshold toward a neighbor. After each swap the pickup offset shifts
// by the neighbor's full extent, keeping displacement continuous so the
// dragged row never jumps visually. The threshold is inclusive in the
// direction of the last swap and exclusive against it, which keeps a pointer
// resting exactly on a boundary from swapping back and forth.
func (m *Machine) checkSwaps() {
	s := m.session
	for {
		disp := s.CurrentOffset - s.PickupOffset
		if disp > 0 {
			next := s.CurrentIndex + 1
			if next >= m.list.Len() {
				return
			}
			t := m.threshold(s.CurrentIndex, next)
			if disp < t || (disp == t && s.lastDir == -1) {
				return
			}
			m.list.Swap(s.CurrentIndex, next)
			s.PickupOffset += m.extent(s.CurrentIndex)
			s.CurrentIndex = next
			s.lastDir = 1
			continue
		}
		if disp < 0 {
			prev := s.CurrentIndex - 1
			if prev < 0 {
				return
			}
			t := m.threshold(s.CurrentIndex, prev)
			if -disp < t || (-disp == t && s.lastDir == 1) {
				return
			}
			m.list.Swap(s.CurrentIndex, prev)
			s.PickupOffset -= m.extent(s.CurrentIndex)
			s.CurrentIndex = prev
			s.lastDir = -1
			continue
		}
		return
	}
}

// threshold returns the displacement needed to swap the dragged row at cur
// with the neighbor at nb, per the configured policy.
func (m *Machine) threshold(cur, nb int) float64 {
	switch m.cfg.Policy {
	case HalfOwn:
		return m.extent(cur) / 2
	case HalfAverage:
		return (m.extent(cur) + m.extent(nb)) / 4
	default:
		return m.extent(nb) / 2
	}
}
