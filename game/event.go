package game

// EventType identifies a simulation event
type EventType string

const (
	EventRoundStarted    EventType = "round_started"
	EventShot            EventType = "shot"
	EventEnemyDestroyed  EventType = "enemy_destroyed"
	EventPlayerDestroyed EventType = "player_destroyed"
	EventWaveSpawned     EventType = "wave_spawned"
	EventGameOver        EventType = "game_over"
	EventFirework        EventType = "firework"
)

// Event is emitted synchronously from inside a tick. Listeners must not
// mutate the state.
type Event struct {
	Type  EventType
	X, Y  float64
	Owner Owner
	Score int
	Level int
	Count int
}

// Listener receives events it subscribed to
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(e Event)

// OnEvent calls f
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// Dispatcher fans events out to subscribers
type Dispatcher struct {
	listeners map[EventType][]Listener
	all       []Listener
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers a listener for one event type
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeAll registers a listener for every event
func (d *Dispatcher) SubscribeAll(listener Listener) {
	d.all = append(d.all, listener)
}

// Dispatch delivers an event to its subscribers in registration order
func (d *Dispatcher) Dispatch(e Event) {
	if d == nil {
		return
	}
	for _, l := range d.listeners[e.Type] {
		l.OnEvent(e)
	}
	for _, l := range d.all {
		l.OnEvent(e)
	}
}
