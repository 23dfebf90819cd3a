package auth

import (
	"sync"

	"github.com/google/uuid"
)

type EventKind string

const (
	SignedIn  EventKind = "SIGNED_IN"
	SignedOut EventKind = "SIGNED_OUT"
)

type Event struct {
	Kind    EventKind
	Session Session
}

// Hub fans session events out to in-process subscribers. Handlers run on the
// publishing goroutine.
type Hub struct {
	mu   sync.RWMutex
	next uint64
	subs map[uint64]func(Event)
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]func(Event))}
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (h *Hub) Subscribe(fn func(Event)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	fns := make([]func(Event), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// OwnerSignedOut is a convenience filter for subscribers that only react to
// sign-out of a given owner.
func OwnerSignedOut(fn func(ownerID uuid.UUID)) func(Event) {
	return func(ev Event) {
		if ev.Kind == SignedOut {
			fn(ev.Session.UserID)
		}
	}
}
