package player

import (
	"sync"
	"time"
)

// Clock reports the playback position in milliseconds, normally the audio
// position.
type Clock interface {
	Time() int64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() int64

func (f ClockFunc) Time() int64 { return f() }

// WallClock stands in for an audio track: it advances with real time while
// playing, scaled by a rate.
type WallClock struct {
	mu      sync.Mutex
	now     func() time.Time
	rate    float64
	base    int64
	since   time.Time
	running bool
}

func NewWallClock(rate float64) *WallClock {
	if rate <= 0 {
		rate = 1
	}
	return &WallClock{now: time.Now, rate: rate}
}

func (c *WallClock) Time() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

func (c *WallClock) position() int64 {
	if !c.running {
		return c.base
	}
	return c.base + int64(float64(c.now().Sub(c.since).Milliseconds())*c.rate)
}

func (c *WallClock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.since = c.now()
}

func (c *WallClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = c.position()
	c.running = false
}

// Seek moves the clock to ms, keeping it running if it was.
func (c *WallClock) Seek(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = ms
	c.since = c.now()
}
