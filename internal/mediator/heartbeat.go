package mediator

import (
	"slices"
	"sync"
	"time"
)

// Tracks when each worker last showed signs of life.
type Heartbeats struct {
	mu   sync.Mutex
	now  func() time.Time
	last map[string]time.Time
}

// Creates an empty tracker.
func NewHeartbeats() *Heartbeats {
	return &Heartbeats{now: time.Now, last: make(map[string]time.Time)}
}

// Starts tracking a worker and returns its beat function.
//
// Registration counts as the first beat, so a worker has the full stale
// period to start up.
func (h *Heartbeats) Register(name string) func() {
	h.beat(name)
	return func() { h.beat(name) }
}

func (h *Heartbeats) beat(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last[name] = h.now()
}

// Returns the workers whose last beat is older than maxAge, sorted.
func (h *Heartbeats) Stale(maxAge time.Duration) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	var stale []string
	for name, t := range h.last {
		if now.Sub(t) > maxAge {
			stale = append(stale, name)
		}
	}
	slices.Sort(stale)
	return stale
}

// Returns the age of each worker's last beat.
func (h *Heartbeats) Ages() map[string]time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	ages := make(map[string]time.Duration, len(h.last))
	for name, t := range h.last {
		ages[name] = now.Sub(t)
	}
	return ages
}
