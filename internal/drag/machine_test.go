package drag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvdberg/listmotion/internal/anim"
	"github.com/pvdberg/listmotion/internal/reconcile"
	"github.com/pvdberg/listmotion/internal/scrollfollow"
)

// fakeList is a minimal Reorderer for scripted drag scenarios.
type fakeList struct {
	items    []string
	locked   bool
	swaps    [][2]int
	restored bool
}

func newFakeList(items ...string) *fakeList {
	return &fakeList{items: items}
}

func (l *fakeList) Len() int            { return len(l.items) }
func (l *fakeList) KeyAt(i int) string  { return l.items[i] }
func (l *fakeList) Lock()               { l.locked = true }
func (l *fakeList) Unlock()             { l.locked = false }
func (l *fakeList) Swap(a, b int) {
	l.swaps = append(l.swaps, [2]int{a, b})
	l.items[a], l.items[b] = l.items[b], l.items[a]
}
func (l *fakeList) Snapshot() func() {
	saved := append([]string(nil), l.items...)
	return func() {
		l.items = saved
		l.restored = true
	}
}

// manualTimer captures the delay timer so tests fire it by hand.
type manualTimer struct {
	pending func()
	stopped bool
}

func (mt *manualTimer) start(d time.Duration, f func()) func() bool {
	mt.pending = f
	mt.stopped = false
	return func() bool {
		mt.stopped = true
		mt.pending = nil
		return true
	}
}

func (mt *manualTimer) fire() {
	if mt.pending != nil {
		f := mt.pending
		mt.pending = nil
		f()
	}
}

func newTestMachine(cfg Config, list Reorderer, extent float64, hooks Hooks) (*Machine, *manualTimer) {
	mt := &manualTimer{}
	m := New(cfg, list, nil, func(int) float64 { return extent }, hooks)
	m.SetTimerFunc(mt.start)
	return m, mt
}

func TestZeroDelayStartsImmediately(t *testing.T) {
	list := newFakeList("a", "b", "c")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{})

	m.PointerDown(1, 150)
	assert.Equal(t, Dragging, m.State())
	assert.True(t, list.locked)
}

func TestArmedReleaseBeforeDelayIsNoop(t *testing.T) {
	list := newFakeList("a", "b", "c")
	m, mt := newTestMachine(Config{Delay: 300 * time.Millisecond}, list, 100, Hooks{})

	m.PointerDown(1, 150)
	assert.Equal(t, Armed, m.State())

	require.NoError(t, m.PointerUp())
	assert.Equal(t, Idle, m.State())
	assert.True(t, mt.stopped, "delay timer must be stopped on early release")
	assert.False(t, list.locked)
}

func TestArmedScrollCancels(t *testing.T) {
	picked := false
	list := newFakeList("a", "b", "c")
	m, mt := newTestMachine(Config{Delay: 300 * time.Millisecond, VibrateOnPickup: true}, list, 100, Hooks{
		OnPickup: func(string, int) { picked = true },
	})

	m.PointerDown(1, 150)
	m.ScrollChanged()

	assert.Equal(t, Idle, m.State())
	assert.True(t, mt.stopped)
	assert.False(t, picked, "no haptic when the drag never started")

	// A timer callback that was already queued is dropped on arrival.
	mt.fire()
	assert.Equal(t, Idle, m.State())
}

func TestArmedScrollIgnoredWithStaticParent(t *testing.T) {
	list := newFakeList("a", "b", "c")
	m, mt := newTestMachine(Config{Delay: 300 * time.Millisecond, StaticParent: true}, list, 100, Hooks{})

	m.PointerDown(1, 150)
	m.ScrollChanged()
	assert.Equal(t, Armed, m.State(), "non-scrollable parent skips the scroll guard")

	mt.fire()
	assert.Equal(t, Dragging, m.State())
}

func TestDelayElapsedStartsDragWithHaptic(t *testing.T) {
	picked := false
	list := newFakeList("a", "b", "c")
	m, mt := newTestMachine(Config{Delay: 300 * time.Millisecond, VibrateOnPickup: true}, list, 100, Hooks{
		OnPickup: func(key string, index int) {
			picked = true
			assert.Equal(t, "b", key)
			assert.Equal(t, 1, index)
		},
	})

	m.PointerDown(1, 150)
	mt.fire()
	assert.Equal(t, Dragging, m.State())
	assert.True(t, picked)
	assert.True(t, list.locked)
}

func TestDragBy120SwapsOnce(t *testing.T) {
	// Items a..e, 100 tall each; drag c down 120: one swap.
	list := newFakeList("a", "b", "c", "d", "e")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{})

	m.PointerDown(2, 250)
	require.NoError(t, m.PointerMove(250+120))

	assert.Equal(t, []string{"a", "b", "d", "c", "e"}, list.items)
	assert.Len(t, list.swaps, 1)
}

func TestDragBy150SwapsTwice(t *testing.T) {
	// 150 covers exactly two half-extents (50 + 100): two swaps.
	list := newFakeList("a", "b", "c", "d", "e")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{})

	m.PointerDown(2, 250)
	require.NoError(t, m.PointerMove(250+150))

	assert.Equal(t, []string{"a", "b", "d", "e", "c"}, list.items)
	assert.Len(t, list.swaps, 2)

	// Resting exactly on the boundary must not oscillate back.
	require.NoError(t, m.PointerMove(250+150))
	assert.Len(t, list.swaps, 2)
}

func TestDragUpwardSymmetric(t *testing.T) {
	list := newFakeList("a", "b", "c", "d", "e")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{})

	m.PointerDown(2, 250)
	require.NoError(t, m.PointerMove(250-150))

	assert.Equal(t, []string{"c", "a", "b", "d", "e"}, list.items)
	assert.Len(t, list.swaps, 2)
}

func TestDragIncrementalCrossing(t *testing.T) {
	list := newFakeList("a", "b", "c", "d", "e")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{})

	m.PointerDown(2, 250)
	require.NoError(t, m.PointerMove(250+40)) // below threshold
	assert.Empty(t, list.swaps)

	require.NoError(t, m.PointerMove(250+60)) // crosses half-neighbor
	assert.Equal(t, []string{"a", "b", "d", "c", "e"}, list.items)

	require.NoError(t, m.PointerMove(250+60)) // holds position, no re-swap
	assert.Len(t, list.swaps, 1)

	require.NoError(t, m.PointerMove(250+40)) // back across the new boundary
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, list.items)
	assert.Len(t, list.swaps, 2)
}

func TestDropNotifiesOnce(t *testing.T) {
	var gotKey string
	var gotFrom, gotTo int
	var gotOrder []string
	calls := 0
	list := newFakeList("a", "b", "c", "d", "e")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{
		OnFinished: func(key string, from, to int, order []string) {
			calls++
			gotKey, gotFrom, gotTo, gotOrder = key, from, to, order
		},
	})

	m.PointerDown(2, 250)
	require.NoError(t, m.PointerMove(250+120))
	require.NoError(t, m.PointerUp())

	assert.Equal(t, 1, calls)
	assert.Equal(t, "c", gotKey)
	assert.Equal(t, 2, gotFrom)
	assert.Equal(t, 3, gotTo)
	assert.Equal(t, []string{"a", "b", "d", "c", "e"}, gotOrder)
	assert.Equal(t, []string{"a", "b", "d", "c", "e"}, list.items)
	assert.False(t, list.locked)
	assert.Equal(t, Idle, m.State())
}

func TestCancelRestoresOriginalOrder(t *testing.T) {
	canceled := ""
	list := newFakeList("a", "b", "c")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{
		OnCancelled: func(key string) { canceled = key },
	})

	m.PointerDown(0, 50)
	require.NoError(t, m.PointerMove(50+60)) // [b,a,c]
	require.Equal(t, []string{"b", "a", "c"}, list.items)

	require.NoError(t, m.PointerCancel())
	assert.Equal(t, []string{"a", "b", "c"}, list.items)
	assert.Equal(t, "a", canceled)
	assert.True(t, list.restored)
	assert.False(t, list.locked)
}

func TestStrayEventsIgnored(t *testing.T) {
	list := newFakeList("a", "b", "c")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{})

	assert.ErrorIs(t, m.PointerMove(10), ErrNoActiveSession)
	assert.ErrorIs(t, m.PointerUp(), ErrNoActiveSession)
	assert.ErrorIs(t, m.PointerCancel(), ErrNoActiveSession)
	assert.ErrorIs(t, m.AutoScrolled(5), ErrNoActiveSession)
	assert.Empty(t, list.swaps)
}

func TestSecondPointerDownIgnoredWhileDragging(t *testing.T) {
	list := newFakeList("a", "b", "c")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{})

	m.PointerDown(0, 50)
	require.Equal(t, Dragging, m.State())

	m.PointerDown(2, 250)
	s, ok := m.Session()
	require.True(t, ok)
	assert.Equal(t, "a", s.Key, "concurrent pointer-down must not replace the session")
}

func TestCloseWhileArmedStopsTimer(t *testing.T) {
	list := newFakeList("a", "b", "c")
	m, mt := newTestMachine(Config{Delay: 300 * time.Millisecond}, list, 100, Hooks{})

	m.PointerDown(1, 150)
	m.Close()
	assert.Equal(t, Idle, m.State())
	assert.True(t, mt.stopped)
}

func TestCloseWhileDraggingCancels(t *testing.T) {
	list := newFakeList("a", "b", "c")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{})

	m.PointerDown(0, 50)
	require.NoError(t, m.PointerMove(50+60))
	m.Close()
	assert.Equal(t, []string{"a", "b", "c"}, list.items)
	assert.False(t, list.locked)
}

func TestAutoScrollAddsDisplacement(t *testing.T) {
	list := newFakeList("a", "b", "c", "d", "e")
	m, _ := newTestMachine(Config{}, list, 100, Hooks{})

	m.PointerDown(2, 250)
	require.NoError(t, m.PointerMove(250+40))
	assert.Empty(t, list.swaps)

	// The viewport scrolls 20 under the stationary pointer: same as moving.
	require.NoError(t, m.AutoScrolled(20))
	assert.Equal(t, []string{"a", "b", "d", "c", "e"}, list.items)
}

func TestEdgeFollowRequests(t *testing.T) {
	var dir scrollfollow.Direction
	var vel float64
	canceled := false
	follower := scrollfollow.New(50, 10, func(d scrollfollow.Direction, v float64) {
		dir, vel = d, v
	}, func() { canceled = true })

	list := newFakeList("a", "b", "c", "d", "e")
	mt := &manualTimer{}
	m := New(Config{}, list, follower, func(int) float64 { return 100 }, Hooks{})
	m.SetTimerFunc(mt.start)
	m.SetViewport(0, 300)

	m.PointerDown(2, 250)
	require.NoError(t, m.PointerMove(290)) // 10 from the forward edge
	assert.Equal(t, scrollfollow.Forward, dir)
	assert.InDelta(t, 8.0, vel, 1e-9)

	require.NoError(t, m.PointerMove(150)) // back to the middle
	assert.True(t, canceled)
}

func TestSwapPolicies(t *testing.T) {
	extents := map[int]float64{0: 100, 1: 100, 2: 100, 3: 40, 4: 100}
	extent := func(i int) float64 { return extents[i] }

	cases := []struct {
		policy    SwapPolicy
		threshold float64
	}{
		{HalfNeighbor, 20}, // neighbor is 40 tall
		{HalfOwn, 50},      // dragged row is 100 tall
		{HalfAverage, 35},  // (100+40)/4
	}
	for _, tc := range cases {
		t.Run(tc.policy.String(), func(t *testing.T) {
			list := newFakeList("a", "b", "c", "d", "e")
			m := New(Config{Policy: tc.policy}, list, nil, extent, Hooks{})

			m.PointerDown(2, 250)
			require.NoError(t, m.PointerMove(250+tc.threshold-1))
			assert.Empty(t, list.swaps)
			require.NoError(t, m.PointerMove(250+tc.threshold))
			assert.Len(t, list.swaps, 1)
		})
	}
}

// A remove animation that finishes while a drag session is live must not
// collapse the displayed sequence under the session's indices. The row stays
// until the drop releases the lock, so swap checks keep addressing the rows
// they were aimed at.
func TestRemoveCompletingMidDragKeepsIndices(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pool := anim.NewPool()
	pool.SetNowFunc(func() time.Time { return now })

	r := reconcile.New(func(s string) string { return s }, pool,
		reconcile.Durations{Remove: 100 * time.Millisecond}, reconcile.Hooks[string]{})
	require.NoError(t, r.SetInitial([]string{"a", "b", "c"}))
	require.NoError(t, r.Reconcile([]string{"b", "c"})) // a animates out

	m := New(Config{}, r, nil, func(int) float64 { return 1 }, Hooks{})
	m.PointerDown(2, 2.0) // pick up c, the last displayed row

	// The leave animation completes under the live session.
	now = now.Add(200 * time.Millisecond)
	pool.Advance(now)
	require.Equal(t, 3, r.Len(), "row count must hold while the drag is live")

	// Drag c up past b; the swap lands on the right rows, no panic.
	require.NoError(t, m.PointerMove(2.0-0.6))
	assert.Equal(t, []string{"a", "c", "b"}, r.Displayed())

	require.NoError(t, m.PointerUp())
	assert.Equal(t, []string{"c", "b"}, r.Items())
	assert.Equal(t, 2, r.Len(), "the finished leave drops once the drag ends")
}

// Canceling a drag after a leave animation completed mid-drag must not
// resurrect the removed row: the restore brings the slot back, the unlock
// drops it.
func TestCancelAfterRemoveCompletedMidDrag(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pool := anim.NewPool()
	pool.SetNowFunc(func() time.Time { return now })

	r := reconcile.New(func(s string) string { return s }, pool,
		reconcile.Durations{Remove: 100 * time.Millisecond}, reconcile.Hooks[string]{})
	require.NoError(t, r.SetInitial([]string{"a", "b", "c"}))
	require.NoError(t, r.Reconcile([]string{"b", "c"}))

	m := New(Config{}, r, nil, func(int) float64 { return 1 }, Hooks{})
	m.PointerDown(2, 2.0)
	now = now.Add(200 * time.Millisecond)
	pool.Advance(now)

	require.NoError(t, m.PointerMove(2.0-0.6))
	require.NoError(t, m.PointerCancel())

	assert.Equal(t, []string{"b", "c"}, r.Displayed(), "no orphaned leaving row after cancel")
	assert.Equal(t, []string{"b", "c"}, r.Items())
}

// The machine against the real reconciler: a data update arriving mid-drag
// waits until the drop, then reconciles against the dropped order.
func TestDragDefersReconciliation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pool := anim.NewPool()
	pool.SetNowFunc(func() time.Time { return now })

	var finalOrder []string
	r := reconcile.New(func(s string) string { return s }, pool, reconcile.Durations{}, reconcile.Hooks[string]{
		OrderChanged: func(items []string) { finalOrder = append([]string(nil), items...) },
	})
	require.NoError(t, r.SetInitial([]string{"a", "b", "c"}))

	m := New(Config{}, r, nil, func(int) float64 { return 1 }, Hooks{})
	m.PointerDown(0, 0.0)
	require.NoError(t, m.PointerMove(0.6)) // [b,a,c]

	// Update arrives mid-drag; the list must not change under the finger.
	require.NoError(t, r.Reconcile([]string{"a", "b", "c", "d"}))
	assert.Equal(t, []string{"b", "a", "c"}, r.Items())

	// Drop releases the lock and the queued target applies.
	require.NoError(t, m.PointerUp())
	assert.Equal(t, []string{"a", "b", "c", "d"}, r.Items())
	assert.Equal(t, []string{"a", "b", "c", "d"}, finalOrder)
}
