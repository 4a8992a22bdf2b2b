package messages

// Outbound events sent by the server.
const (
	EventConnected = "CONNECTED"
	EventRuntime   = "RUNTIME"
	EventPong      = "PONG"
	EventError     = "ERROR"
)

// OutboundMessage is how we wrap responses before sending
// them to the client
type OutboundMessage struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

type ConnectedPayload struct {
	ConnectionID string `json:"connection_id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
