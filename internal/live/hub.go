// Package live fans vacation change events out to connected clients.
//
// Delivery is fire-and-forget: every subscriber connected at publish time
// receives every event in publish order, nothing is replayed for late
// joiners, and a subscriber that cannot keep up is disconnected rather than
// allowed to block publishers.
package live

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Actions announced on the live channel
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionFollow   = "follow"
	ActionUnfollow = "unfollow"
)

// Event announces that the vacation identified by VacationID changed
type Event struct {
	VacationID string `json:"vacationId"`
	Action     string `json:"action"`
}

// Subscriber receives events on C until it is unsubscribed or dropped
type Subscriber struct {
	C chan Event
}

// Hub maintains the set of active subscribers and broadcasts events to them.
// It is constructed once at process start and passed to every handler that
// publishes; there is no global instance.
type Hub struct {
	subscribers map[*Subscriber]struct{}

	subscribe   chan *Subscriber
	unsubscribe chan *Subscriber
	events      chan Event
	done        chan struct{}

	// Metrics
	active  atomic.Int64
	dropped atomic.Int64
}

const subscriberBuffer = 64

// NewHub creates a new Hub. Run must be started before publishing.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
		subscribe:   make(chan *Subscriber),
		unsubscribe: make(chan *Subscriber),
		events:      make(chan Event, 256),
		done:        make(chan struct{}),
	}
}

// Run starts the hub's event loop. Call it in its own goroutine.
func (h *Hub) Run() {
	logrus.Info("Live update hub started")
	for {
		select {
		case <-h.done:
			for sub := range h.subscribers {
				close(sub.C)
				delete(h.subscribers, sub)
			}
			logrus.Info("Live update hub stopped")
			return

		case sub := <-h.subscribe:
			h.subscribers[sub] = struct{}{}
			h.active.Store(int64(len(h.subscribers)))

		case sub := <-h.unsubscribe:
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.C)
			}
			h.active.Store(int64(len(h.subscribers)))

		case ev := <-h.events:
			for sub := range h.subscribers {
				select {
				case sub.C <- ev:
				default:
					// Slow subscriber, drop it; it has to reconnect
					// and re-fetch to resynchronize anyway
					delete(h.subscribers, sub)
					close(sub.C)
					h.dropped.Add(1)
				}
			}
			h.active.Store(int64(len(h.subscribers)))
		}
	}
}

// Shutdown stops the event loop and closes all subscriber channels
func (h *Hub) Shutdown() {
	close(h.done)
}

// Subscribe registers a new subscriber. Events published after this call
// are delivered; earlier events are not.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{C: make(chan Event, subscriberBuffer)}
	select {
	case h.subscribe <- sub:
	case <-h.done:
		close(sub.C)
	}
	return sub
}

// Unsubscribe removes a subscriber and closes its channel
func (h *Hub) Unsubscribe(sub *Subscriber) {
	select {
	case h.unsubscribe <- sub:
	case <-h.done:
	}
}

// Publish announces a vacation change to all connected subscribers. It
// never blocks on subscribers; callers publish after their store mutation
// commits.
func (h *Hub) Publish(vacationID, action string) {
	select {
	case h.events <- Event{VacationID: vacationID, Action: action}:
	case <-h.done:
	}
}

// ActiveSubscribers reports the current subscriber count
func (h *Hub) ActiveSubscribers() int64 {
	return h.active.Load()
}

// DroppedSubscribers reports how many slow subscribers have been dropped
func (h *Hub) DroppedSubscribers() int64 {
	return h.dropped.Load()
}
