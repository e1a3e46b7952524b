package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewWallClock(2)
	c.now = func() time.Time { return now }

	assert.Equal(t, int64(0), c.Time(), "paused clock stands still")
	c.Play()
	now = now.Add(250 * time.Millisecond)
	assert.Equal(t, int64(500), c.Time())

	c.Pause()
	now = now.Add(time.Second)
	assert.Equal(t, int64(500), c.Time())

	c.Seek(3000)
	assert.Equal(t, int64(3000), c.Time())
	c.Play()
	now = now.Add(100 * time.Millisecond)
	assert.Equal(t, int64(3200), c.Time())

	c.Seek(0)
	now = now.Add(100 * time.Millisecond)
	assert.Equal(t, int64(200), c.Time(), "seek keeps a running clock running")
}

func TestClockFunc(t *testing.T) {
	var c Clock = ClockFunc(func() int64 { return 42 })
	assert.Equal(t, int64(42), c.Time())
}

func TestManualScheduler(t *testing.T) {
	s := &ManualScheduler{}
	assert.False(t, s.Step())

	runs := 0
	cancel := s.RequestFrame(func() { runs++ })
	assert.True(t, s.Pending())
	cancel()
	assert.False(t, s.Pending())

	stale := s.RequestFrame(func() { runs++ })
	s.RequestFrame(func() { runs += 10 })
	stale()
	assert.True(t, s.Pending(), "cancelling a replaced request is a no-op")
	assert.True(t, s.Step())
	assert.Equal(t, 10, runs)
}

func TestLoopScheduler(t *testing.T) {
	s := NewLoopScheduler(200)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	ran := make(chan struct{})
	s.RequestFrame(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("frame never ran")
	}

	skipped := false
	drop := s.RequestFrame(func() { skipped = true })
	drop()

	var inside bool
	require.NoError(t, s.Do(ctx, func() { inside = true }))
	assert.True(t, inside)

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, s.Do(ctx, func() {}))
	assert.False(t, skipped)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.ErrorIs(t, s.Do(ctx, func() {}), context.Canceled)
}
