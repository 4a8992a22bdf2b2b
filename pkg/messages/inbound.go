package messages

import "encoding/json"

// Inbound events a client may send on the runtime stream.
const (
	EventPing     = "PING"
	EventSnapshot = "SNAPSHOT"
)

// InboundMessage is the envelope of every client message
type InboundMessage struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
