package progress

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHandlerServeRunStreamsPublishedEventsAndClosesOnFinished(t *testing.T) {
	broker := NewMemory()
	h := NewHandler(broker, 1000)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeRun(w, r, "run-1")
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	// Give ServeRun time to subscribe before publishing, since
	// Subscribe happens inside the handler goroutine after Upgrade.
	deadline := time.Now().Add(time.Second)
	for {
		broker.mu.Lock()
		n := len(broker.subs["run-1"])
		broker.mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("handler never subscribed")
		}
		time.Sleep(time.Millisecond)
	}

	broker.Publish("run-1", Event{Type: "snapshot", Data: map[string]any{"pass": float64(1)}})

	var got Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if got.Type != "snapshot" {
		t.Fatalf("expected snapshot frame, got %q", got.Type)
	}

	broker.Publish("run-1", Event{Type: "finished"})
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read finished: %v", err)
	}
	if got.Type != "finished" {
		t.Fatalf("expected finished frame, got %q", got.Type)
	}

	conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the server to close the connection after the finished frame")
	}
}
