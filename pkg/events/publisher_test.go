package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestPublishDeliversToTypeSubscribers(t *testing.T) {
	p := NewPublisher()
	opened := &recorder{}
	closed := &recorder{}

	p.Subscribe(EventConnectionOpened, opened.handle)
	p.Subscribe(EventConnectionClosed, closed.handle)

	p.Publish(Event{Type: EventConnectionOpened, ConnectionID: "abc"})

	assert.Eventually(t, func() bool { return opened.len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return closed.len() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	opened.mu.Lock()
	assert.Equal(t, "abc", opened.events[0].ConnectionID)
	opened.mu.Unlock()
}

func TestSubscribeAllReceivesEveryEvent(t *testing.T) {
	p := NewPublisher()
	all := &recorder{}
	p.SubscribeAll(all.handle)

	p.Publish(Event{Type: EventConnectionOpened})
	p.Publish(Event{Type: EventConnectionClosed})

	assert.Eventually(t, func() bool { return all.len() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	p := NewPublisher()

	assert.NotPanics(t, func() {
		p.Publish(Event{Type: EventConnectionClosed})
	})
}

func TestSubscribeSyncRunsInPublishOrder(t *testing.T) {
	p := NewPublisher()
	open := 0
	var seen []int

	p.SubscribeSync(EventConnectionOpened, func(Event) {
		open++
		seen = append(seen, open)
	})
	p.SubscribeSync(EventConnectionClosed, func(Event) {
		open--
		seen = append(seen, open)
	})

	for i := 0; i < 100; i++ {
		p.Publish(Event{Type: EventConnectionOpened})
		p.Publish(Event{Type: EventConnectionClosed})
	}

	// No handler is pending once Publish returns, and the count never dips below zero.
	assert.Len(t, seen, 200)
	for _, v := range seen {
		assert.GreaterOrEqual(t, v, 0)
	}
	assert.Equal(t, 0, open)
}
