// Package reconcile transforms a displayed item sequence into a target
// sequence over time by driving per-item animations.
//
// The reconciler owns the displayed sequence. Inserts and moves are applied
// to it optimistically, so layout reflects target positions immediately
// while animations interpolate the visible transform. Removals stay in the
// displayed sequence, marked as leaving, until their animation completes.
// While a drag is in progress the reconciler is locked: incoming targets are
// queued (latest wins) and replayed after the drag ends, so user-driven
// reordering is never disturbed by asynchronous data updates.
package reconcile

import (
	"time"

	"github.com/pvdberg/listmotion/internal/anim"
	"github.com/pvdberg/listmotion/internal/diff"
)

// Durations configures how long each kind of animation runs.
type Durations struct {
	Insert time.Duration
	Remove time.Duration
	Move   time.Duration
}

// Hooks are the reconciler's notifications to the host view layer. Any of
// them may be nil. Indices refer to the logical (non-leaving) sequence.
type Hooks[T any] struct {
	ItemEntering func(item T, index int)
	ItemLeaving  func(item T, index int)
	ItemMoved    func(item T, from, to int)
	OrderChanged func(items []T)
}

type slot[T any] struct {
	item    T
	leaving bool
}

// Reconciler drives a displayed sequence of items of type T toward
// successive target sequences. It is not safe for concurrent use; all calls
// must come from the host's single event loop.
type Reconciler[T any] struct {
	keyFn func(T) string
	pool  *anim.Pool
	dur   Durations
	hooks Hooks[T]

	slots      []slot[T]
	generation uint64

	locked     bool
	pending    []T
	hasPending bool
	deferred   []string

	asyncThreshold int
	post           func(func())
}

// New creates a reconciler. keyFn must return a stable identity key for an
// item; two items are the same logical item exactly when their keys are
// equal. The pool and hooks are injected so the reconciler never reaches
// into its environment at runtime.
func New[T any](keyFn func(T) string, pool *anim.Pool, dur Durations, hooks Hooks[T]) *Reconciler[T] {
	return &Reconciler[T]{
		keyFn: keyFn,
		pool:  pool,
		dur:   dur,
		hooks: hooks,
	}
}

// SetAsyncThreshold makes Reconcile compute diffs on a background goroutine
// whenever the combined sequence length exceeds n. post must schedule a
// function onto the host event loop; results are validated against the
// displayed sequence's generation and recomputed if it changed while the
// diff was in flight. A threshold of 0 disables background diffing.
func (r *Reconciler[T]) SetAsyncThreshold(n int, post func(func())) {
	r.asyncThreshold = n
	r.post = post
}

// SetInitial populates the displayed sequence without animating. Fails on
// duplicate identities, leaving the reconciler empty.
func (r *Reconciler[T]) SetInitial(items []T) error {
	if err := r.checkUnique(items); err != nil {
		return err
	}
	r.slots = make([]slot[T], len(items))
	for i, item := range items {
		r.slots[i] = slot[T]{item: item}
	}
	r.generation++
	return nil
}

// Reconcile animates the displayed sequence toward target. If a drag is in
// progress the target is queued and applied after the drag ends. A target
// with duplicate identities fails fast without touching displayed state.
func (r *Reconciler[T]) Reconcile(target []T) error {
	if err := r.checkUnique(target); err != nil {
		return err
	}
	if r.locked {
		r.pending = append(r.pending[:0], target...)
		r.hasPending = true
		return nil
	}

	working := r.Items()
	if r.asyncThreshold > 0 && r.post != nil && len(working)+len(target) > r.asyncThreshold {
		r.diffAsync(working, target)
		return nil
	}

	ops, err := diff.Diff(working, target, r.same)
	if err != nil {
		return err
	}
	r.applyScript(ops)
	return nil
}

// diffAsync runs the diff off the event loop. The result is applied only if
// the displayed sequence is still at the generation the diff was computed
// against; otherwise the whole reconcile is redone against current state.
func (r *Reconciler[T]) diffAsync(working, target []T) {
	gen := r.generation
	tgt := make([]T, len(target))
	copy(tgt, target)
	go func() {
		ops, err := diff.Diff(working, tgt, r.same)
		r.post(func() {
			if err != nil {
				return
			}
			if r.generation != gen || r.locked {
				// Stale result: displayed moved on while we were
				// computing. Recompute synchronously.
				prev := r.asyncThreshold
				r.asyncThreshold = 0
				_ = r.Reconcile(tgt)
				r.asyncThreshold = prev
				return
			}
			r.applyScript(ops)
		})
	}()
}

func (r *Reconciler[T]) applyScript(ops []diff.Op[T]) {
	if len(ops) == 0 {
		return
	}
	r.generation++
	for _, op := range ops {
		key := r.keyFn(op.Item)
		switch op.Kind {
		case diff.OpRemove:
			phys := r.physicalOfWorking(op.From)
			r.slots[phys].leaving = true
			removed := op.Item
			r.pool.BeginRemove(key, r.dur.Remove, func() {
				r.finishRemove(key)
			})
			if r.hooks.ItemLeaving != nil {
				r.hooks.ItemLeaving(removed, op.From)
			}

		case diff.OpInsert:
			if phys, ok := r.leavingIndex(key); ok {
				// A pending removal was interrupted by a re-insert of the
				// same identity. The item never actually leaves.
				s := r.slots[phys]
				s.leaving = false
				s.item = op.Item
				r.slots = append(r.slots[:phys], r.slots[phys+1:]...)
				r.insertSlot(op.To, s)
				r.pool.BeginInsert(key, r.dur.Insert)
			} else {
				r.insertSlot(op.To, slot[T]{item: op.Item})
				r.pool.BeginInsert(key, r.dur.Insert)
			}
			if r.hooks.ItemEntering != nil {
				r.hooks.ItemEntering(op.Item, op.To)
			}

		case diff.OpMove:
			phys := r.physicalOfWorking(op.From)
			s := r.slots[phys]
			r.slots = append(r.slots[:phys], r.slots[phys+1:]...)
			r.insertSlot(op.To, s)
			r.pool.BeginMove(key, op.From, op.To, r.dur.Move)
			if r.hooks.ItemMoved != nil {
				r.hooks.ItemMoved(op.Item, op.From, op.To)
			}
		}
	}
	if r.hooks.OrderChanged != nil {
		r.hooks.OrderChanged(r.Items())
	}
}

// finishRemove physically drops a leaving slot once its animation completed.
// While a drag holds the lock the drop is deferred: removing the slot now
// would shift every displayed index under the live session, and a canceled
// drag's restore would resurrect the slot with no animation left to finish
// it. Deferred keys are dropped on Unlock.
func (r *Reconciler[T]) finishRemove(key string) {
	if r.locked {
		r.deferred = append(r.deferred, key)
		return
	}
	phys, ok := r.leavingIndex(key)
	if !ok {
		return
	}
	r.slots = append(r.slots[:phys], r.slots[phys+1:]...)
	r.generation++
}

// Items returns the logical sequence: every displayed item that is not on
// its way out. This is the sequence diffs are computed against.
func (r *Reconciler[T]) Items() []T {
	out := make([]T, 0, len(r.slots))
	for _, s := range r.slots {
		if !s.leaving {
			out = append(out, s.item)
		}
	}
	return out
}

// Displayed returns the full render sequence, leaving items included, in
// visual order.
func (r *Reconciler[T]) Displayed() []T {
	out := make([]T, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.item
	}
	return out
}

// Len returns the number of displayed rows, leaving items included.
func (r *Reconciler[T]) Len() int {
	return len(r.slots)
}

// KeyAt returns the identity key of the displayed row at index i.
func (r *Reconciler[T]) KeyAt(i int) string {
	return r.keyFn(r.slots[i].item)
}

// IsLeaving reports whether the displayed row at index i is animating out.
func (r *Reconciler[T]) IsLeaving(i int) bool {
	return r.slots[i].leaving
}

// Swap exchanges two displayed rows. It is the merge point for drag
// reordering: the drag machine calls it directly, bypassing diffing. The
// displaced neighbor gets a move animation; the dragged row itself is
// rendered under the pointer by the host, so it is not animated here.
func (r *Reconciler[T]) Swap(dragIndex, neighborIndex int) {
	if dragIndex == neighborIndex {
		return
	}
	r.slots[dragIndex], r.slots[neighborIndex] = r.slots[neighborIndex], r.slots[dragIndex]
	r.generation++
	neighbor := r.slots[dragIndex]
	r.pool.BeginMove(r.keyFn(neighbor.item), neighborIndex, dragIndex, r.dur.Move)
	if r.hooks.ItemMoved != nil {
		r.hooks.ItemMoved(neighbor.item, neighborIndex, dragIndex)
	}
	if r.hooks.OrderChanged != nil {
		r.hooks.OrderChanged(r.Items())
	}
}

// Snapshot captures the current displayed order and returns a function that
// restores it. Used by the drag machine to revert a canceled drag.
func (r *Reconciler[T]) Snapshot() func() {
	saved := make([]slot[T], len(r.slots))
	copy(saved, r.slots)
	return func() {
		r.slots = saved
		r.generation++
		if r.hooks.OrderChanged != nil {
			r.hooks.OrderChanged(r.Items())
		}
	}
}

// Lock suspends reconciliation for the duration of a drag. Targets arriving
// while locked are queued; only the latest is kept.
func (r *Reconciler[T]) Lock() {
	r.locked = true
}

// Unlock resumes reconciliation: leaving slots whose animations completed
// during the drag are dropped, then the queued target, if any, replays.
func (r *Reconciler[T]) Unlock() {
	r.locked = false
	for _, key := range r.deferred {
		r.finishRemove(key)
	}
	r.deferred = nil
	if r.hasPending {
		pending := r.pending
		r.pending = nil
		r.hasPending = false
		_ = r.Reconcile(pending)
	}
}

// Locked reports whether a drag currently holds the reconciler.
func (r *Reconciler[T]) Locked() bool {
	return r.locked
}

func (r *Reconciler[T]) same(a, b T) bool {
	return r.keyFn(a) == r.keyFn(b)
}

func (r *Reconciler[T]) checkUnique(items []T) error {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		key := r.keyFn(item)
		if first, ok := seen[key]; ok {
			return &diff.DuplicateIdentityError{Sequence: "target", First: first, Second: i}
		}
		seen[key] = i
	}
	return nil
}

// physicalOfWorking maps an index in the logical sequence to the index of
// the same item in the displayed sequence, skipping leaving slots.
func (r *Reconciler[T]) physicalOfWorking(w int) int {
	count := 0
	for i, s := range r.slots {
		if s.leaving {
			continue
		}
		if count == w {
			return i
		}
		count++
	}
	return len(r.slots)
}

// insertSlot places s so that it lands at logical index w.
func (r *Reconciler[T]) insertSlot(w int, s slot[T]) {
	phys := r.physicalOfWorking(w)
	r.slots = append(r.slots, slot[T]{})
	copy(r.slots[phys+1:], r.slots[phys:])
	r.slots[phys] = s
}

func (r *Reconciler[T]) leavingIndex(key string) (int, bool) {
	for i, s := range r.slots {
		if s.leaving && r.keyFn(s.item) == key {
			return i, true
		}
	}
	return 0, false
}
