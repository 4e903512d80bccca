// Package anim manages per-item animation lifecycles keyed by item identity.
//
// The pool owns one entry per key. Starting a new animation for a key that
// already has one cancels the old animation first, so there is never more
// than one active animation per item and nothing queues behind anything
// else. Progress is driven by the host calling Advance once per frame; the
// pool itself owns no timers or goroutines.
package anim

import "time"

// Kind identifies what an animation entry is doing.
type Kind int

const (
	KindIdle Kind = iota
	KindEntering
	KindLeaving
	KindMoving
)

func (k Kind) String() string {
	switch k {
	case KindEntering:
		return "entering"
	case KindLeaving:
		return "leaving"
	case KindMoving:
		return "moving"
	default:
		return "idle"
	}
}

// Entry is the state of one item's animation. Progress runs from 0 to 1.
// FromPos and ToPos are only meaningful for moving entries; the host
// interpolates between them using Progress.
type Entry struct {
	Key       string
	Kind      Kind
	Progress  float64
	StartTime time.Time
	Duration  time.Duration
	FromPos   int
	ToPos     int

	onComplete func()
}

// Completion reports an animation that finished during an Advance call.
type Completion struct {
	Key  string
	Kind Kind
}

// Pool tracks active animation entries by item key.
type Pool struct {
	entries map[string]*Entry
	now     func() time.Time
}

// NewPool creates an empty animation pool.
func NewPool() *Pool {
	return &Pool{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// SetNowFunc replaces the pool's clock. Used by tests to drive animations
// deterministically.
func (p *Pool) SetNowFunc(now func() time.Time) {
	p.now = now
}

// BeginInsert starts an entering animation for key, replacing any animation
// the key already has.
func (p *Pool) BeginInsert(key string, d time.Duration) {
	p.Cancel(key)
	p.entries[key] = &Entry{
		Key:       key,
		Kind:      KindEntering,
		StartTime: p.now(),
		Duration:  d,
	}
}

// BeginRemove starts a leaving animation for key. onComplete fires exactly
// once, when the animation runs to completion; it never fires if the
// animation is canceled or replaced first. The caller must not remove the
// item from its displayed sequence until onComplete fires.
func (p *Pool) BeginRemove(key string, d time.Duration, onComplete func()) {
	p.Cancel(key)
	p.entries[key] = &Entry{
		Key:        key,
		Kind:       KindLeaving,
		StartTime:  p.now(),
		Duration:   d,
		onComplete: onComplete,
	}
}

// BeginMove starts a moving animation for key between two positions,
// replacing any animation the key already has.
func (p *Pool) BeginMove(key string, fromPos, toPos int, d time.Duration) {
	p.Cancel(key)
	p.entries[key] = &Entry{
		Key:       key,
		Kind:      KindMoving,
		StartTime: p.now(),
		Duration:  d,
		FromPos:   fromPos,
		ToPos:     toPos,
	}
}

// Cancel drops the animation for key, if any. The entry's completion
// callback does not fire.
func (p *Pool) Cancel(key string) {
	delete(p.entries, key)
}

// IsAnimating reports whether key has an active animation.
func (p *Pool) IsAnimating(key string) bool {
	_, ok := p.entries[key]
	return ok
}

// Get returns a copy of the entry for key.
func (p *Pool) Get(key string) (Entry, bool) {
	e, ok := p.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Active returns the number of live entries.
func (p *Pool) Active() int {
	return len(p.entries)
}

// Advance updates the progress of every entry as of now, removes the ones
// that finished and returns them. Remove completions fire their callbacks
// here. Completions for the same key are always reported in the order their
// animations ran; no order is guaranteed between different keys.
func (p *Pool) Advance(now time.Time) []Completion {
	var done []Completion
	for key, e := range p.entries {
		if e.Duration <= 0 {
			e.Progress = 1
		} else {
			e.Progress = float64(now.Sub(e.StartTime)) / float64(e.Duration)
			if e.Progress < 0 {
				e.Progress = 0
			}
		}
		if e.Progress < 1 {
			continue
		}
		e.Progress = 1
		delete(p.entries, key)
		done = append(done, Completion{Key: key, Kind: e.Kind})
		if e.onComplete != nil {
			e.onComplete()
		}
	}
	return done
}
