// Package bus is the in-process fan-out for domain events. Delivery is
// at-least-once per subscriber with per-attendant emission order preserved;
// subscribers that fall behind lose events (they recover with a full-state
// query on reconnect, there is no replay).
package bus

import (
	"log"
	"sync"
	"time"
)

type EventType string

const (
	TypeAttendantRegistered EventType = "attendant.registered"
	TypeAttendantCheckedIn  EventType = "attendant.checked_in"
)

// AllEvents subscribes across every event id; used by process-internal
// bridges such as the AMQP forwarder.
const AllEvents = "*"

// AttendantSnapshot carries everything subscribers render, so they never have
// to join further data themselves.
type AttendantSnapshot struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	Code         string `json:"code"`
	FullName     string `json:"full_name"`
	Organization string `json:"organization,omitempty"`
	Position     string `json:"position,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	GroupName    string `json:"group_name,omitempty"`
	ZoneLabel    string `json:"zone_label,omitempty"`
	SeatLocation string `json:"seat_location,omitempty"`
	IsVIP        bool   `json:"is_vip"`
	CheckedInAt  string `json:"checked_in_at,omitempty"`
}

type Event struct {
	Type      EventType         `json:"type"`
	EventID   string            `json:"event_id"`
	Source    string            `json:"source,omitempty"`
	Attendant AttendantSnapshot `json:"attendant"`
	Timestamp int64             `json:"timestamp"`
}

type Subscription struct {
	C chan Event

	bus     *Bus
	eventID string
	id      int
}

// Cancel detaches the subscription and closes its channel.
func (s *Subscription) Cancel() {
	s.bus.unsubscribe(s)
}

type Bus struct {
	mu     sync.Mutex
	subs   map[string]map[int]*Subscription
	nextID int
}

func New() *Bus {
	return &Bus{
		subs: make(map[string]map[int]*Subscription),
	}
}

// Subscribe registers a listener scoped to one event id (or AllEvents).
// The buffer bounds how far a slow consumer may lag before losing events.
func (b *Bus) Subscribe(eventID string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 64
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		C:       make(chan Event, buffer),
		bus:     b,
		eventID: eventID,
		id:      b.nextID,
	}
	if b.subs[eventID] == nil {
		b.subs[eventID] = make(map[int]*Subscription)
	}
	b.subs[eventID][sub.id] = sub
	return sub
}

func (b *Bus) unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	group, ok := b.subs[s.eventID]
	if !ok {
		return
	}
	if _, ok := group[s.id]; !ok {
		return
	}
	delete(group, s.id)
	if len(group) == 0 {
		delete(b.subs, s.eventID)
	}
	close(s.C)
}

// Publish delivers to every subscriber of the event's id and to AllEvents
// listeners. Publishing under the lock keeps emission order stable for all
// subscribers, which gives the per-attendant ordering guarantee.
func (b *Bus) Publish(ev Event) {
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.deliverLocked(b.subs[ev.EventID], ev)
	b.deliverLocked(b.subs[AllEvents], ev)
}

func (b *Bus) deliverLocked(group map[int]*Subscription, ev Event) {
	for _, sub := range group {
		select {
		case sub.C <- ev:
		default:
			log.Printf("bus: dropping %s for attendant %s, subscriber buffer full", ev.Type, ev.Attendant.ID)
		}
	}
}
