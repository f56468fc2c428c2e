package event

// Handler consumes one event.
type Handler func(Event)

// Dispatcher fans consumed events out to registered handlers. Registration
// happens during setup; Dispatch is then called from the single consumer
// goroutine. Not safe for concurrent registration after dispatching begins.
type Dispatcher struct {
	handlers map[EventType][]Handler
	all      []Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventType][]Handler)}
}

// On registers a handler for one event type.
func (d *Dispatcher) On(t EventType, h Handler) {
	d.handlers[t] = append(d.handlers[t], h)
}

// OnAll registers a handler receiving every event, after typed handlers.
func (d *Dispatcher) OnAll(h Handler) {
	d.all = append(d.all, h)
}

// Dispatch routes a consumed batch in order.
func (d *Dispatcher) Dispatch(events []Event) {
	for _, e := range events {
		for _, h := range d.handlers[e.Type] {
			h(e)
		}
		for _, h := range d.all {
			h(e)
		}
	}
}
