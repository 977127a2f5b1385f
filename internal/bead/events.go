package bead

type EventType int

const (
	EventSound EventType = iota
	EventStatus
	EventGridResized
	EventTelemetry
)

type Event struct {
	Type   EventType
	X, Y   int     // grid size for EventGridResized
	Name   string  // sound name, or telemetry action
	Text   string  // status text, or telemetry team
	Volume float64 // sound volume
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
