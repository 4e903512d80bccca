package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestPool(now time.Time) *Pool {
	p := NewPool()
	p.SetNowFunc(func() time.Time { return now })
	return p
}

func TestPoolInsertLifecycle(t *testing.T) {
	p := newTestPool(base)
	p.BeginInsert("a", 100*time.Millisecond)

	require.True(t, p.IsAnimating("a"))
	e, ok := p.Get("a")
	require.True(t, ok)
	assert.Equal(t, KindEntering, e.Kind)

	done := p.Advance(base.Add(50 * time.Millisecond))
	assert.Empty(t, done)
	e, _ = p.Get("a")
	assert.InDelta(t, 0.5, e.Progress, 1e-9)

	done = p.Advance(base.Add(100 * time.Millisecond))
	require.Len(t, done, 1)
	assert.Equal(t, "a", done[0].Key)
	assert.Equal(t, KindEntering, done[0].Kind)
	assert.False(t, p.IsAnimating("a"))
}

func TestPoolRemoveCompletionFires(t *testing.T) {
	p := newTestPool(base)
	fired := 0
	p.BeginRemove("a", 100*time.Millisecond, func() { fired++ })

	p.Advance(base.Add(99 * time.Millisecond))
	assert.Equal(t, 0, fired)

	p.Advance(base.Add(100 * time.Millisecond))
	assert.Equal(t, 1, fired)

	// Completion fires exactly once; the entry is gone.
	p.Advance(base.Add(200 * time.Millisecond))
	assert.Equal(t, 1, fired)
}

func TestPoolCancelSuppressesCompletion(t *testing.T) {
	p := newTestPool(base)
	fired := false
	p.BeginRemove("a", 100*time.Millisecond, func() { fired = true })

	p.Cancel("a")
	p.Advance(base.Add(time.Second))
	assert.False(t, fired, "canceled remove must not fire its completion")
	assert.False(t, p.IsAnimating("a"))
}

func TestPoolLastWriterWins(t *testing.T) {
	p := newTestPool(base)
	fired := false
	p.BeginRemove("a", 100*time.Millisecond, func() { fired = true })

	// Replacing the remove with an insert cancels it: the item never leaves.
	p.BeginInsert("a", 100*time.Millisecond)
	done := p.Advance(base.Add(time.Second))
	require.Len(t, done, 1)
	assert.Equal(t, KindEntering, done[0].Kind)
	assert.False(t, fired)
}

func TestPoolMoveEntry(t *testing.T) {
	p := newTestPool(base)
	p.BeginMove("a", 2, 5, 200*time.Millisecond)

	e, ok := p.Get("a")
	require.True(t, ok)
	assert.Equal(t, KindMoving, e.Kind)
	assert.Equal(t, 2, e.FromPos)
	assert.Equal(t, 5, e.ToPos)

	p.Advance(base.Add(100 * time.Millisecond))
	e, _ = p.Get("a")
	assert.InDelta(t, 0.5, e.Progress, 1e-9)
}

func TestPoolZeroDurationCompletesImmediately(t *testing.T) {
	p := newTestPool(base)
	p.BeginInsert("a", 0)
	done := p.Advance(base)
	require.Len(t, done, 1)
	assert.Equal(t, "a", done[0].Key)
}

func TestPoolIndependentKeys(t *testing.T) {
	p := newTestPool(base)
	p.BeginInsert("a", 100*time.Millisecond)
	p.BeginInsert("b", 300*time.Millisecond)
	assert.Equal(t, 2, p.Active())

	done := p.Advance(base.Add(150 * time.Millisecond))
	require.Len(t, done, 1)
	assert.Equal(t, "a", done[0].Key)
	assert.True(t, p.IsAnimating("b"))
}

func TestPoolProgressClamped(t *testing.T) {
	p := newTestPool(base)
	p.BeginInsert("a", 100*time.Millisecond)

	// A clock that has not reached the start time yet reports zero progress.
	p.SetNowFunc(func() time.Time { return base.Add(-time.Second) })
	p.Advance(base.Add(-time.Second))
	e, ok := p.Get("a")
	require.True(t, ok)
	assert.Equal(t, 0.0, e.Progress)
}
