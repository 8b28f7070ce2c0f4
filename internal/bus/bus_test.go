package bus

import (
	"testing"
	"time"
)

func recv(t *testing.T, c chan Event) Event {
	t.Helper()
	select {
	case ev := <-c:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublishScopedToEventID(t *testing.T) {
	b := New()
	subA := b.Subscribe("event-a", 8)
	subB := b.Subscribe("event-b", 8)
	defer subA.Cancel()
	defer subB.Cancel()

	b.Publish(Event{Type: TypeAttendantCheckedIn, EventID: "event-a", Attendant: AttendantSnapshot{ID: "x"}})

	ev := recv(t, subA.C)
	if ev.EventID != "event-a" {
		t.Fatalf("unexpected event %+v", ev)
	}

	select {
	case ev := <-subB.C:
		t.Fatalf("event leaked across event ids: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	b := New()
	subs := make([]*Subscription, 3)
	for i := range subs {
		subs[i] = b.Subscribe("event-a", 8)
		defer subs[i].Cancel()
	}

	b.Publish(Event{Type: TypeAttendantRegistered, EventID: "event-a"})

	for i, sub := range subs {
		if ev := recv(t, sub.C); ev.Type != TypeAttendantRegistered {
			t.Fatalf("subscriber %d got %+v", i, ev)
		}
	}
}

func TestWildcardSubscriberSeesEveryEvent(t *testing.T) {
	b := New()
	bridge := b.Subscribe(AllEvents, 8)
	defer bridge.Cancel()

	b.Publish(Event{Type: TypeAttendantCheckedIn, EventID: "event-a"})
	b.Publish(Event{Type: TypeAttendantCheckedIn, EventID: "event-b"})

	first := recv(t, bridge.C)
	second := recv(t, bridge.C)
	if first.EventID != "event-a" || second.EventID != "event-b" {
		t.Fatalf("wildcard subscriber missed or reordered events: %s then %s", first.EventID, second.EventID)
	}
}

func TestPerAttendantOrdering(t *testing.T) {
	b := New()
	sub := b.Subscribe("event-a", 16)
	defer sub.Cancel()

	b.Publish(Event{Type: TypeAttendantRegistered, EventID: "event-a", Attendant: AttendantSnapshot{ID: "att-1"}})
	b.Publish(Event{Type: TypeAttendantCheckedIn, EventID: "event-a", Attendant: AttendantSnapshot{ID: "att-1"}})

	if ev := recv(t, sub.C); ev.Type != TypeAttendantRegistered {
		t.Fatalf("expected registration first, got %s", ev.Type)
	}
	if ev := recv(t, sub.C); ev.Type != TypeAttendantCheckedIn {
		t.Fatalf("expected check-in second, got %s", ev.Type)
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := New()
	sub := b.Subscribe("event-a", 1)
	defer sub.Cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			b.Publish(Event{Type: TypeAttendantCheckedIn, EventID: "event-a"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber buffer")
	}

	// The buffer held exactly one event; the rest were dropped.
	recv(t, sub.C)
	select {
	case ev := <-sub.C:
		t.Fatalf("expected overflow to be dropped, got %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelClosesChannel(t *testing.T) {
	b := New()
	sub := b.Subscribe("event-a", 8)
	sub.Cancel()

	if _, open := <-sub.C; open {
		t.Fatal("channel still open after cancel")
	}

	// Publishing after cancel must not panic or deliver.
	b.Publish(Event{Type: TypeAttendantCheckedIn, EventID: "event-a"})

	// Double cancel is a no-op.
	sub.Cancel()
}

func TestPublishStampsTimestamp(t *testing.T) {
	b := New()
	sub := b.Subscribe("event-a", 8)
	defer sub.Cancel()

	b.Publish(Event{Type: TypeAttendantCheckedIn, EventID: "event-a"})
	if ev := recv(t, sub.C); ev.Timestamp == 0 {
		t.Fatal("publish did not stamp the event")
	}
}

func TestDedupeMarksAndEvicts(t *testing.T) {
	d := NewDedupe(2)

	if d.Seen(TypeAttendantCheckedIn, "a") {
		t.Fatal("first sighting reported as seen")
	}
	if !d.Seen(TypeAttendantCheckedIn, "a") {
		t.Fatal("second sighting not reported as seen")
	}

	// Same attendant under a different type is a distinct key.
	if d.Seen(TypeAttendantRegistered, "a") {
		t.Fatal("type should be part of the dedupe key")
	}

	// Capacity is 2, so "a"/checked_in is the FIFO evictee now.
	d.Seen(TypeAttendantCheckedIn, "b")
	if d.Seen(TypeAttendantCheckedIn, "a") {
		t.Fatal("evicted key still reported as seen")
	}
}
