package event

// Bus is a frame-drained publish/subscribe queue. Systems publish during
// their Execute; the drain step dispatches everything in FIFO order to the
// subscribers registered for each type. Single-threaded by design: the
// simulation runs on one goroutine and the bus inherits that model.
type Bus struct {
	queue    []Event
	handlers map[Type][]Handler
	all      []Handler
}

// Handler receives dispatched events.
type Handler func(Event)

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t Type, h Handler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(h Handler) {
	b.all = append(b.all, h)
}

// Publish appends an event to the queue. Nothing is dispatched until Drain.
func (b *Bus) Publish(e Event) {
	b.queue = append(b.queue, e)
}

// Emit is shorthand for Publish with a constructed Event.
func (b *Bus) Emit(t Type, payload any) {
	b.Publish(Event{Type: t, Payload: payload})
}

// Drain dispatches all queued events in FIFO order and clears the queue.
// Events published by handlers during a drain are delivered in the same
// drain, after everything already queued.
func (b *Bus) Drain() {
	for i := 0; i < len(b.queue); i++ {
		e := b.queue[i]
		for _, h := range b.handlers[e.Type] {
			h(e)
		}
		for _, h := range b.all {
			h(e)
		}
	}
	b.queue = b.queue[:0]
}

// Pending returns the number of undispatched events.
func (b *Bus) Pending() int {
	return len(b.queue)
}
