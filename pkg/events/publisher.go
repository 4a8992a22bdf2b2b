package events

import "sync"

// EventType represents the type of event
type EventType string

// Define event types
const (
	EventConnectionOpened EventType = "CONNECTION_OPENED"
	EventConnectionClosed EventType = "CONNECTION_CLOSED"

	allEvents EventType = "*"
)

// Event represents an event in the system
type Event struct {
	Type         EventType
	ConnectionID string
	Payload      interface{}
}

// Handler is a function that processes events
type Handler func(event Event)

type subscription struct {
	handler Handler
	sync    bool
}

// Publisher is the central event publisher
type Publisher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]subscription
}

// NewPublisher creates a new event publisher
func NewPublisher() *Publisher {
	return &Publisher{
		subscribers: make(map[EventType][]subscription),
	}
}

// Subscribe registers a handler for a specific event type. The handler runs
// on its own goroutine.
func (p *Publisher) Subscribe(eventType EventType, handler Handler) {
	p.add(eventType, subscription{handler: handler})
}

// SubscribeSync registers a handler that runs on the publishing goroutine
// before Publish returns, so it observes events in publish order.
func (p *Publisher) SubscribeSync(eventType EventType, handler Handler) {
	p.add(eventType, subscription{handler: handler, sync: true})
}

// SubscribeAll registers a handler for all event types
func (p *Publisher) SubscribeAll(handler Handler) {
	p.add(allEvents, subscription{handler: handler})
}

func (p *Publisher) add(eventType EventType, sub subscription) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.subscribers[eventType] = append(p.subscribers[eventType], sub)
}

// Publish hands the event to every matching subscriber. Synchronous
// handlers run first, in registration order; the rest run concurrently.
func (p *Publisher) Publish(event Event) {
	p.mu.RLock()
	subs := append([]subscription(nil), p.subscribers[event.Type]...)
	subs = append(subs, p.subscribers[allEvents]...)
	p.mu.RUnlock()

	for _, sub := range subs {
		if sub.sync {
			sub.handler(event)
		}
	}
	for _, sub := range subs {
		if !sub.sync {
			go sub.handler(event)
		}
	}
}
