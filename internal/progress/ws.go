package progress

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

// Handler streams a run's progress events over a WebSocket at
// /progress/{runID}, throttled so a fast worker loop can't flood a
// slow client with one frame per local-search pass.
type Handler struct {
	broker Broker
	limit  rate.Limit
	burst  int
}

// NewHandler builds a Handler that forwards at most ratePerSecond
// events per second per connection, delaying the rest; events that
// overflow the subscription's buffer meanwhile are dropped by the
// broker, not merged.
func NewHandler(broker Broker, ratePerSecond float64) *Handler {
	if ratePerSecond <= 0 {
		ratePerSecond = 5
	}
	return &Handler{broker: broker, limit: rate.Limit(ratePerSecond), burst: 1}
}

func (h *Handler) ServeRun(w http.ResponseWriter, r *http.Request, runID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(1 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ch := h.broker.Subscribe(runID)
	defer h.broker.Unsubscribe(runID, ch)

	limiter := rate.NewLimiter(h.limit, h.burst)
	ctx := r.Context()

	// Drain client reads (close frames, pings) so the connection dies
	// promptly if the peer goes away; we never expect inbound data.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
			if evt.Type == "finished" {
				return
			}
		}
	}
}
