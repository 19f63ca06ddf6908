package game

// FrameID identifies a pending frame request
type FrameID uint64

// FrameScheduler calls back once per display refresh. now is a monotonic
// timestamp in milliseconds.
type FrameScheduler interface {
	RequestFrame(fn func(now float64)) FrameID
	CancelFrame(id FrameID)
}

// TickObserver sees every round start and every tick in order. Observers
// must not mutate the state.
type TickObserver interface {
	RoundStarted(s *State)
	Ticked(dt float64, in Intent)
}

// Loop owns the current round and drives it from a FrameScheduler.
type Loop struct {
	cfg       Config
	scheduler FrameScheduler
	input     IntentProvider
	events    *Dispatcher
	observers []TickObserver

	state *State
	round int

	pending    FrameID
	hasPending bool
	lastTime   float64
	hasLast    bool
}

// NewLoop creates a loop. input and events may be nil.
func NewLoop(cfg Config, scheduler FrameScheduler, input IntentProvider, events *Dispatcher) *Loop {
	return &Loop{
		cfg:       cfg,
		scheduler: scheduler,
		input:     input,
		events:    events,
	}
}

// Observe registers a tick observer. Register before Start to see the
// first round.
func (l *Loop) Observe(o TickObserver) {
	l.observers = append(l.observers, o)
}

// State returns the current round, nil before Start
func (l *Loop) State() *State {
	return l.state
}

// Round returns the 1-based round counter
func (l *Loop) Round() int {
	return l.round
}

// Start begins the first round
func (l *Loop) Start() {
	l.Restart()
}

// Restart aborts the current round and starts a fresh one. The pending
// frame request is cancelled before the new state exists, so only one tick
// chain is ever live.
func (l *Loop) Restart() {
	l.Stop()

	l.round++
	cfg := l.cfg
	cfg.Seed = roundSeed(l.cfg.Seed, l.round)
	l.state = NewState(cfg, l.events)
	l.hasLast = false

	for _, o := range l.observers {
		o.RoundStarted(l.state)
	}
	l.events.Dispatch(Event{
		Type:  EventRoundStarted,
		Level: l.state.Level,
		Count: l.round,
	})

	l.request()
}

// roundSeed offsets a fixed base seed by the 1-based round number. Zero
// means "time based" to NewRand, so offsets step over it.
func roundSeed(base int64, round int) int64 {
	if base == 0 {
		return 0
	}
	seed := base + int64(round-1)
	if base < 0 && seed >= 0 {
		seed++
	}
	return seed
}

// Stop cancels the pending frame. The current state is kept for drawing.
func (l *Loop) Stop() {
	if l.hasPending {
		l.scheduler.CancelFrame(l.pending)
		l.hasPending = false
	}
}

// Frame is the scheduler callback: it computes the delta since the last
// frame, ticks the round once and schedules the next frame.
func (l *Loop) Frame(now float64) {
	l.hasPending = false

	dt := 0.0
	if l.hasLast {
		dt = now - l.lastTime
	}
	l.lastTime = now
	l.hasLast = true

	if dt < 0 {
		dt = 0
	}
	if l.cfg.MaxFrameDelta > 0 && dt > l.cfg.MaxFrameDelta {
		dt = l.cfg.MaxFrameDelta
	}

	var in Intent
	if l.input != nil {
		in = l.input.Intent()
	}

	l.state.Tick(dt, in)
	for _, o := range l.observers {
		o.Ticked(dt, in)
	}

	l.request()
}

func (l *Loop) request() {
	l.pending = l.scheduler.RequestFrame(l.Frame)
	l.hasPending = true
}
