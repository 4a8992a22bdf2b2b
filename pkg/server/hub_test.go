package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tecu23/info-server/pkg/events"
	"github.com/tecu23/info-server/pkg/info"
	"github.com/tecu23/info-server/pkg/messages"
)

type staticSource struct {
	calls atomic.Int64
}

func (s *staticSource) Runtime() info.RuntimeInfo {
	n := s.calls.Add(1)
	return info.RuntimeInfo{
		UptimeSeconds: n,
		UptimeHuman:   info.FormatUptime(n),
		CurrentTime:   "2024-01-01T00:00:00Z",
		Timezone:      info.Timezone,
	}
}

type outbound struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func startHub(t *testing.T, interval time.Duration) (*Hub, *events.Publisher, string, context.CancelFunc) {
	t.Helper()

	publisher := events.NewPublisher()
	hub := NewHub(&staticSource{}, interval, publisher, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConnection(ws, hub, zap.NewNop())
		if !hub.Register(conn) {
			ws.Close()
			return
		}
		go conn.WritePump()
		go conn.ReadPump()
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return hub, publisher, "ws" + strings.TrimPrefix(srv.URL, "http"), cancel
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) outbound {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg outbound
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}

func TestHubSendsConnectedThenRuntime(t *testing.T) {
	hub, _, url, _ := startHub(t, 20*time.Millisecond)
	ws := dial(t, url)

	connected := readMessage(t, ws)
	assert.Equal(t, messages.EventConnected, connected.Event)

	var payload messages.ConnectedPayload
	require.NoError(t, json.Unmarshal(connected.Payload, &payload))
	assert.Len(t, payload.ConnectionID, 36)

	runtime := readMessage(t, ws)
	assert.Equal(t, messages.EventRuntime, runtime.Event)

	var rt info.RuntimeInfo
	require.NoError(t, json.Unmarshal(runtime.Payload, &rt))
	assert.Equal(t, "UTC", rt.Timezone)
	assert.Positive(t, rt.UptimeSeconds)

	assert.Equal(t, 1, hub.Count())
}

func TestHubInboundMessages(t *testing.T) {
	// Long interval so only replies arrive.
	_, _, url, _ := startHub(t, time.Hour)
	ws := dial(t, url)
	assert.Equal(t, messages.EventConnected, readMessage(t, ws).Event)

	tests := []struct {
		send string
		want string
	}{
		{`{"event":"PING"}`, messages.EventPong},
		{`{"event":"SNAPSHOT"}`, messages.EventRuntime},
		{`{"event":"RESIGN"}`, messages.EventError},
		{`not json`, messages.EventError},
	}

	for _, tt := range tests {
		require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(tt.send)))
		assert.Equal(t, tt.want, readMessage(t, ws).Event, tt.send)
	}
}

func TestHubPublishesConnectionEvents(t *testing.T) {
	hub, publisher, url, _ := startHub(t, time.Hour)

	var opened, closed atomic.Int64
	publisher.Subscribe(events.EventConnectionOpened, func(events.Event) { opened.Add(1) })
	publisher.Subscribe(events.EventConnectionClosed, func(events.Event) { closed.Add(1) })

	ws := dial(t, url)
	readMessage(t, ws)
	assert.Eventually(t, func() bool { return opened.Load() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	ws.Close()

	assert.Eventually(t, func() bool { return closed.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubShutdownClosesConnections(t *testing.T) {
	hub, _, url, cancel := startHub(t, time.Hour)
	ws := dial(t, url)
	readMessage(t, ws)

	cancel()

	select {
	case <-hub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, hub.Count())

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := ws.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)

	assert.False(t, hub.Register(&Connection{}))
}
