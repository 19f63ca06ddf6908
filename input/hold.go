package input

import "time"

// Control is a logical game control
type Control int

const (
	ControlForward Control = iota
	ControlBack
	ControlLeft
	ControlRight
	ControlFire
	controlCount
)

// DefaultHold is how long a key counts as held after its last press or
// repeat event.
const DefaultHold = 150 * time.Millisecond

// HoldTracker derives held state from key presses for terminals, which
// report presses and auto-repeats but never releases.
type HoldTracker struct {
	hold time.Duration
	last [controlCount]time.Time
}

// NewHoldTracker creates a tracker. A zero hold uses DefaultHold.
func NewHoldTracker(hold time.Duration) *HoldTracker {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &HoldTracker{hold: hold}
}

// Press records a press or repeat of c
func (h *HoldTracker) Press(c Control, now time.Time) {
	h.last[c] = now
}

// Release forgets c immediately
func (h *HoldTracker) Release(c Control) {
	h.last[c] = time.Time{}
}

// Held reports whether c was pressed within the hold window
func (h *HoldTracker) Held(c Control, now time.Time) bool {
	t := h.last[c]
	return !t.IsZero() && now.Sub(t) < h.hold
}

// Keys returns the movement keys held at now
func (h *HoldTracker) Keys(now time.Time) Keys {
	return Keys{
		Forward: h.Held(ControlForward, now),
		Back:    h.Held(ControlBack, now),
		Left:    h.Held(ControlLeft, now),
		Right:   h.Held(ControlRight, now),
	}
}
