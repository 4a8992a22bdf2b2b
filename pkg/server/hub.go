// Package server streams runtime snapshots to websocket clients.
package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tecu23/info-server/pkg/events"
	"github.com/tecu23/info-server/pkg/info"
	"github.com/tecu23/info-server/pkg/messages"
)

// RuntimeSource produces the snapshot broadcast to every connection.
type RuntimeSource interface {
	Runtime() info.RuntimeInfo
}

// InboundHubMessage are the messages that the hub receives
type InboundHubMessage struct {
	Conn    *Connection             // who sent it
	Message messages.InboundMessage // decoded envelope
}

// Hub keeps track of all active connections and is responsible for
// registering/unregistering them. Every interval it broadcasts the current
// runtime snapshot to all of them.
type Hub struct {
	mu          sync.RWMutex         // Mutex to protect direct access to the connections map.
	connections map[*Connection]bool // Registered connections

	register   chan *Connection       // Incoming registration
	unregister chan *Connection       // Incoming unregistration
	inbound    chan InboundHubMessage // Client messages routed by the hub
	done       chan struct{}          // Closed once Run returns

	source    RuntimeSource
	interval  time.Duration
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewHub creates a new hub
func NewHub(source RuntimeSource, interval time.Duration, publisher *events.Publisher, logger *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		inbound:     make(chan InboundHubMessage),
		done:        make(chan struct{}),
		source:      source,
		interval:    interval,
		publisher:   publisher,
		logger:      logger,
	}
}

// Run is the main execution of the hub. It returns when ctx is cancelled,
// after closing every connection.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer func() {
		ticker.Stop()
		h.closeAll()
		close(h.done)
	}()

	for {
		select {
		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case msg := <-h.inbound:
			h.handleInbound(msg)

		case <-ticker.C:
			h.broadcastRuntime()

		case <-ctx.Done():
			return
		}
	}
}

// Done is closed once the hub has stopped.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Register adds a connection. It reports false if the hub has stopped.
func (h *Hub) Register(conn *Connection) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a connection and closes its send buffer.
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Count returns the number of registered connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) deliver(msg InboundHubMessage) bool {
	select {
	case h.inbound <- msg:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	h.connections[conn] = true
	h.mu.Unlock()

	h.publisher.Publish(events.Event{Type: events.EventConnectionOpened, ConnectionID: conn.ID.String()})

	h.sendMessage(conn, messages.OutboundMessage{
		Event:   messages.EventConnected,
		Payload: messages.ConnectedPayload{ConnectionID: conn.ID.String()},
	})
}

func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()
	_, ok := h.connections[conn]
	if ok {
		delete(h.connections, conn)
		close(conn.send)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	h.publisher.Publish(events.Event{Type: events.EventConnectionClosed, ConnectionID: conn.ID.String()})
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		h.unregisterConnection(conn)
	}
}

// handleInbound routes a client message.
func (h *Hub) handleInbound(msg InboundHubMessage) {
	h.mu.RLock()
	registered := h.connections[msg.Conn]
	h.mu.RUnlock()
	if !registered {
		return
	}

	switch msg.Message.Event {
	case messages.EventPing:
		h.sendMessage(msg.Conn, messages.OutboundMessage{Event: messages.EventPong})
	case messages.EventSnapshot:
		h.sendMessage(msg.Conn, messages.OutboundMessage{
			Event:   messages.EventRuntime,
			Payload: h.source.Runtime(),
		})
	default:
		h.sendError(msg.Conn, "Unknown message type")
	}
}

func (h *Hub) broadcastRuntime() {
	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	if len(conns) == 0 {
		return
	}

	msg := messages.OutboundMessage{Event: messages.EventRuntime, Payload: h.source.Runtime()}
	for _, conn := range conns {
		h.sendMessage(conn, msg)
	}
}

func (h *Hub) sendError(conn *Connection, msg string) {
	h.sendMessage(conn, messages.OutboundMessage{
		Event:   messages.EventError,
		Payload: messages.ErrorPayload{Message: msg},
	})
}

// sendMessage drops connections whose send buffer is full.
func (h *Hub) sendMessage(conn *Connection, msg messages.OutboundMessage) {
	if !conn.enqueue(msg) {
		h.logger.Warn("send buffer full, dropping connection",
			zap.String("connection_id", conn.ID.String()))
		h.unregisterConnection(conn)
	}
}
