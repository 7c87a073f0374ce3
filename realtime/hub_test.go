package realtime_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/infra-track/api-go/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

func newHubServer(t *testing.T) (*realtime.Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := realtime.NewHub()
	go hub.Run()

	r := gin.New()
	r.GET("/ws", realtime.ServeWS(hub))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readEvent keeps rebroadcasting until the client sees an event, since
// registration races with the first broadcast.
func readEvent(t *testing.T, hub *realtime.Hub, conn *websocket.Conn, event string, data map[string]interface{}) wireEvent {
	t.Helper()

	received := make(chan wireEvent, 1)
	go func() {
		var evt wireEvent
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.ReadJSON(&evt); err == nil {
			received <- evt
		}
	}()

	deadline := time.After(5 * time.Second)
	for {
		hub.Broadcast(event, data)
		select {
		case evt := <-received:
			return evt
		case <-deadline:
			t.Fatal("timed out waiting for broadcast event")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestHubBroadcastsToConnectedClient(t *testing.T) {
	hub, srv := newHubServer(t)
	conn := dial(t, srv)

	evt := readEvent(t, hub, conn, realtime.EventNewReport, map[string]interface{}{
		"id":    float64(7),
		"title": "Outage",
	})

	assert.Equal(t, realtime.EventNewReport, evt.Event)
	assert.Equal(t, "Outage", evt.Data["title"])
	assert.Equal(t, float64(7), evt.Data["id"])
}

func TestHubFansOutToEveryClient(t *testing.T) {
	hub, srv := newHubServer(t)
	first := dial(t, srv)
	second := dial(t, srv)

	evt := readEvent(t, hub, first, realtime.EventNewNotification, map[string]interface{}{
		"title":   "Maintenance",
		"message": "Tonight",
	})
	assert.Equal(t, realtime.EventNewNotification, evt.Event)

	// The same stream of events reaches the second client too.
	var fromSecond wireEvent
	second.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, second.ReadJSON(&fromSecond))
	assert.Equal(t, realtime.EventNewNotification, fromSecond.Event)
	assert.Equal(t, "Maintenance", fromSecond.Data["title"])
}

func TestHubSurvivesDisconnectedClient(t *testing.T) {
	hub, srv := newHubServer(t)
	gone := dial(t, srv)
	gone.Close()

	stays := dial(t, srv)
	evt := readEvent(t, hub, stays, realtime.EventReportUpdated, map[string]interface{}{
		"id": float64(1),
	})
	assert.Equal(t, realtime.EventReportUpdated, evt.Event)
}
