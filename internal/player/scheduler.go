package player

import (
	"context"
	"sync"
	"time"
)

// FrameScheduler runs a callback once on the next frame. The returned
// function cancels the request if it has not run yet.
type FrameScheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// LoopScheduler runs frames at a fixed rate on the goroutine calling Run.
// Work posted with Do runs on the same goroutine, so it never overlaps a
// frame.
type LoopScheduler struct {
	interval time.Duration
	work     chan func()

	mu    sync.Mutex
	frame func()
	seq   uint64
}

func NewLoopScheduler(fps int) *LoopScheduler {
	if fps <= 0 {
		fps = 30
	}
	return &LoopScheduler{
		interval: time.Second / time.Duration(fps),
		work:     make(chan func()),
	}
}

func (s *LoopScheduler) RequestFrame(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	seq := s.seq
	s.frame = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.seq == seq {
			s.frame = nil
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (s *LoopScheduler) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case s.work <- func() { defer close(done); fn() }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives frames until ctx is cancelled.
func (s *LoopScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.work:
			fn()
		case <-ticker.C:
			s.mu.Lock()
			fn := s.frame
			s.frame = nil
			s.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

// ManualScheduler runs frames only when stepped.
type ManualScheduler struct {
	frame func()
	seq   uint64
}

func (s *ManualScheduler) RequestFrame(fn func()) func() {
	s.seq++
	seq := s.seq
	s.frame = fn
	return func() {
		if s.seq == seq {
			s.frame = nil
		}
	}
}

// Pending reports whether a frame is waiting.
func (s *ManualScheduler) Pending() bool { return s.frame != nil }

// Step runs the pending frame, if any, and reports whether one ran.
func (s *ManualScheduler) Step() bool {
	fn := s.frame
	if fn == nil {
		return false
	}
	s.frame = nil
	fn()
	return true
}
