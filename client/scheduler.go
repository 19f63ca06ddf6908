package client

import (
	"time"

	"tankwar/game"
)

// frameScheduler adapts ebiten's fixed Update cadence to game.FrameScheduler.
// At most one callback is pending; Pump runs it once per Update.
type frameScheduler struct {
	start   time.Time
	nextID  game.FrameID
	pending game.FrameID
	fn      func(now float64)
}

func newFrameScheduler() *frameScheduler {
	return &frameScheduler{start: time.Now()}
}

// RequestFrame implements game.FrameScheduler
func (s *frameScheduler) RequestFrame(fn func(now float64)) game.FrameID {
	s.nextID++
	s.pending = s.nextID
	s.fn = fn
	return s.nextID
}

// CancelFrame implements game.FrameScheduler
func (s *frameScheduler) CancelFrame(id game.FrameID) {
	if id == s.pending {
		s.pending = 0
		s.fn = nil
	}
}

// Pump runs the pending callback with the time since startup in ms
func (s *frameScheduler) Pump() {
	fn := s.fn
	if fn == nil {
		return
	}
	s.fn = nil
	s.pending = 0
	fn(float64(time.Since(s.start).Microseconds()) / 1000)
}
