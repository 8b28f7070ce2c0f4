package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"eventgate/internal/bus"
	"eventgate/internal/models/db_models"
	"eventgate/internal/models/request_models"
	"eventgate/pkg/utils"
)

type enrollFixture struct {
	attendants *fakeAttendantRepo
	groups     *fakeGroupRepo
	eventsRepo *fakeEventRepo
	bus        *bus.Bus
	svc        EnrollmentServiceInterface
	eventID    uuid.UUID
}

func newEnrollFixture() *enrollFixture {
	attendants := newFakeAttendantRepo()
	groups := newFakeGroupRepo()
	eventsRepo := newFakeEventRepo()
	b := bus.New()
	event := eventsRepo.add(&db_models.Event{Name: "Tech Summit"})
	svc := NewEnrollmentService(attendants, groups, eventsRepo, NewQuotaService(groups), b)
	return &enrollFixture{
		attendants: attendants,
		groups:     groups,
		eventsRepo: eventsRepo,
		bus:        b,
		svc:        svc,
		eventID:    event.ID,
	}
}

func TestEnrollNewAttendant(t *testing.T) {
	f := newEnrollFixture()
	sub := f.bus.Subscribe(f.eventID.String(), 8)
	defer sub.Cancel()

	att, err := f.svc.Enroll(context.Background(), f.eventID, request_models.EnrollRequest{
		FullName: "Lan Pham",
		Email:    "lan@example.com",
	}, testEmbedding(0.3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(att.Code) != attendantCodeLength {
		t.Fatalf("expected %d-digit code, got %q", attendantCodeLength, att.Code)
	}
	if att.Code[0] == '0' {
		t.Fatalf("code must not start with zero: %q", att.Code)
	}
	if att.FaceEmbedding == nil {
		t.Fatal("embedding was not stored")
	}

	select {
	case ev := <-sub.C:
		if ev.Type != bus.TypeAttendantRegistered {
			t.Fatalf("expected registration event, got %s", ev.Type)
		}
		if ev.Attendant.FullName != "Lan Pham" {
			t.Fatalf("snapshot missing attendant data: %+v", ev.Attendant)
		}
	case <-time.After(time.Second):
		t.Fatal("no registration event published")
	}
}

func TestEnrollMissingRequired(t *testing.T) {
	f := newEnrollFixture()

	_, err := f.svc.Enroll(context.Background(), f.eventID, request_models.EnrollRequest{
		FullName: "No Email",
	}, nil)
	if !errors.Is(err, utils.ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
}

func TestEnrollUnknownEvent(t *testing.T) {
	f := newEnrollFixture()

	_, err := f.svc.Enroll(context.Background(), uuid.New(), request_models.EnrollRequest{
		FullName: "Lan Pham",
		Email:    "lan@example.com",
	}, nil)
	if !errors.Is(err, utils.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEnrollWrongDimension(t *testing.T) {
	f := newEnrollFixture()

	_, err := f.svc.Enroll(context.Background(), f.eventID, request_models.EnrollRequest{
		FullName: "Lan Pham",
		Email:    "lan@example.com",
	}, make([]float32, 64))
	if !errors.Is(err, utils.ErrEmbeddingDimension) {
		t.Fatalf("expected ErrEmbeddingDimension, got %v", err)
	}
}

func TestReEnrollPreservesIdentityFields(t *testing.T) {
	f := newEnrollFixture()
	checkedIn := time.Now().UTC().Add(-time.Hour)
	f.attendants.add(&db_models.Attendant{
		EventID:      f.eventID,
		Code:         "123456",
		FullName:     "Lan Pham",
		Email:        "lan@example.com",
		IsVIP:        true,
		SeatLocation: "A-12",
		CheckedInAt:  &checkedIn,
	})

	att, err := f.svc.Enroll(context.Background(), f.eventID, request_models.EnrollRequest{
		FullName: "Lan T. Pham",
		Email:    "lan@example.com",
		Phone:    "0901234567",
	}, testEmbedding(0.4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if att.Code != "123456" {
		t.Fatalf("re-enrollment regenerated the code: %q", att.Code)
	}
	if !att.IsVIP {
		t.Fatal("re-enrollment dropped VIP status")
	}
	if att.SeatLocation != "A-12" {
		t.Fatalf("re-enrollment changed the seat: %q", att.SeatLocation)
	}
	if att.CheckedInAt == nil || !att.CheckedInAt.Equal(checkedIn) {
		t.Fatalf("re-enrollment reset checked_in_at: %v", att.CheckedInAt)
	}
	if att.FullName != "Lan T. Pham" || att.Phone != "0901234567" {
		t.Fatalf("contact fields were not updated: %+v", att)
	}

	if n, _ := f.attendants.CountByEvent(context.Background(), f.eventID); n != 1 {
		t.Fatalf("re-enrollment created a duplicate record, count %d", n)
	}
}

func TestEnrollIntoFullGroup(t *testing.T) {
	f := newEnrollFixture()
	g := f.groups.add(&db_models.EventGroup{EventID: f.eventID, Name: "VIP", LimitCount: 1, CurrentCount: 1})

	_, err := f.svc.Enroll(context.Background(), f.eventID, request_models.EnrollRequest{
		FullName: "Late Comer",
		Email:    "late@example.com",
		GroupID:  g.ID.String(),
	}, nil)
	if !errors.Is(err, utils.ErrGroupCapacityFull) {
		t.Fatalf("expected ErrGroupCapacityFull, got %v", err)
	}
	if got := f.groups.current(g.ID); got != 1 {
		t.Fatalf("denied enrollment changed the count: %d", got)
	}
}

func TestEnrollGroupFromOtherEvent(t *testing.T) {
	f := newEnrollFixture()
	foreign := f.groups.add(&db_models.EventGroup{EventID: uuid.New(), Name: "Other", LimitCount: 0})

	_, err := f.svc.Enroll(context.Background(), f.eventID, request_models.EnrollRequest{
		FullName: "Wanderer",
		Email:    "wanderer@example.com",
		GroupID:  foreign.ID.String(),
	}, nil)
	if !errors.Is(err, utils.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestEnrollReleasesSlotWhenPersistFails(t *testing.T) {
	f := newEnrollFixture()
	g := f.groups.add(&db_models.EventGroup{EventID: f.eventID, Name: "VIP", LimitCount: 3})
	f.attendants.failCreate = true

	_, err := f.svc.Enroll(context.Background(), f.eventID, request_models.EnrollRequest{
		FullName: "Unlucky",
		Email:    "unlucky@example.com",
		GroupID:  g.ID.String(),
	}, nil)
	if !errors.Is(err, utils.ErrDatabaseError) {
		t.Fatalf("expected ErrDatabaseError, got %v", err)
	}
	if got := f.groups.current(g.ID); got != 0 {
		t.Fatalf("failed enrollment leaked a slot, count %d", got)
	}
}

func TestGroupChangeMovesSlot(t *testing.T) {
	f := newEnrollFixture()
	old := f.groups.add(&db_models.EventGroup{EventID: f.eventID, Name: "General", LimitCount: 0, CurrentCount: 1})
	next := f.groups.add(&db_models.EventGroup{EventID: f.eventID, Name: "VIP", LimitCount: 2})

	oldID := old.ID
	f.attendants.add(&db_models.Attendant{
		EventID:  f.eventID,
		Code:     "555123",
		FullName: "Mover",
		Email:    "mover@example.com",
		GroupID:  &oldID,
	})

	att, err := f.svc.Enroll(context.Background(), f.eventID, request_models.EnrollRequest{
		FullName: "Mover",
		Email:    "mover@example.com",
		GroupID:  next.ID.String(),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att.GroupID == nil || *att.GroupID != next.ID {
		t.Fatalf("attendant not moved to the new group: %v", att.GroupID)
	}
	if got := f.groups.current(next.ID); got != 1 {
		t.Fatalf("new group count %d, want 1", got)
	}
	if got := f.groups.current(old.ID); got != 0 {
		t.Fatalf("old slot not released, count %d", got)
	}
}

func TestReEnrollSameGroupKeepsCount(t *testing.T) {
	f := newEnrollFixture()
	g := f.groups.add(&db_models.EventGroup{EventID: f.eventID, Name: "VIP", LimitCount: 1, CurrentCount: 1})

	gID := g.ID
	f.attendants.add(&db_models.Attendant{
		EventID:  f.eventID,
		Code:     "667788",
		FullName: "Steady",
		Email:    "steady@example.com",
		GroupID:  &gID,
	})

	// Same group on re-enrollment: no reserve, so a full group is fine.
	_, err := f.svc.Enroll(context.Background(), f.eventID, request_models.EnrollRequest{
		FullName: "Steady",
		Email:    "steady@example.com",
		GroupID:  g.ID.String(),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.groups.current(g.ID); got != 1 {
		t.Fatalf("count drifted on same-group re-enrollment: %d", got)
	}
}
