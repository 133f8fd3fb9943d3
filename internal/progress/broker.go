// Package progress fans solver progress events out to subscribers, for
// a running solve to be watched live instead of only inspected after
// it finishes.
package progress

import "sync"

// Event is one progress update for a run: a worker reporting a new
// best-so-far cost, an operator application count, or the run
// finishing.
type Event struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// Broker fans Events published for a run ID out to every subscriber of
// that run ID.
type Broker interface {
	Subscribe(runID string) chan Event
	Unsubscribe(runID string, ch chan Event)
	Publish(runID string, evt Event)
}

// Memory is the in-process Broker used when no REDIS_URL is set.
type Memory struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func NewMemory() *Memory {
	return &Memory{subs: map[string]map[chan Event]struct{}{}}
}

func (b *Memory) Subscribe(runID string) chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	if b.subs[runID] == nil {
		b.subs[runID] = map[chan Event]struct{}{}
	}
	b.subs[runID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Memory) Unsubscribe(runID string, ch chan Event) {
	b.mu.Lock()
	if m := b.subs[runID]; m != nil {
		delete(m, ch)
		if len(m) == 0 {
			delete(b.subs, runID)
		}
	}
	b.mu.Unlock()
	close(ch)
}

func (b *Memory) Publish(runID string, evt Event) {
	b.mu.Lock()
	for ch := range b.subs[runID] {
		select {
		case ch <- evt:
		default:
		}
	}
	b.mu.Unlock()
}

// Open selects RedisBroker when redisURL is non-empty, mirroring the
// DATABASE_URL/REDIS_URL selection api.NewServer does for its own
// store and broker, falling back to Memory when redisURL is empty or
// fails to parse. No connection is attempted here, so an unreachable
// Redis still yields a RedisBroker.
func Open(redisURL string) Broker {
	if redisURL == "" {
		return NewMemory()
	}
	rb, err := NewRedisBroker(redisURL)
	if err != nil {
		return NewMemory()
	}
	return rb
}
