package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"eventgate/internal/bus"
	"eventgate/internal/models/db_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

type CheckinStatus string

const (
	CheckinAccepted  CheckinStatus = "accepted"
	CheckinDuplicate CheckinStatus = "already_checked_in"
)

const (
	SourceQR   = "qr"
	SourceFace = "face"
)

// CheckinOutcome is a definite result: a duplicate check-in is a normal
// outcome carrying the winner's timestamp, not an error.
type CheckinOutcome struct {
	Status      CheckinStatus
	Attendant   *db_models.Attendant
	CheckedInAt time.Time
	Distance    *float64
}

type CheckinServiceInterface interface {
	CheckInByCode(ctx context.Context, eventID uuid.UUID, code string) (*CheckinOutcome, error)
	CheckInByFace(ctx context.Context, eventID uuid.UUID, probe []float32) (*CheckinOutcome, error)
}

type CheckinService struct {
	attendants repositories.AttendantRepository
	logs       repositories.CheckinLogRepository
	matcher    MatcherServiceInterface
	events     *bus.Bus
}

func NewCheckinService(
	attendants repositories.AttendantRepository,
	logs repositories.CheckinLogRepository,
	matcher MatcherServiceInterface,
	events *bus.Bus,
) CheckinServiceInterface {
	return &CheckinService{
		attendants: attendants,
		logs:       logs,
		matcher:    matcher,
		events:     events,
	}
}

// CheckInByCode is the QR path: the decoded token is the attendant code,
// matched exactly within the event.
func (s *CheckinService) CheckInByCode(ctx context.Context, eventID uuid.UUID, code string) (*CheckinOutcome, error) {
	if code == "" {
		return nil, utils.ErrMissingRequired
	}

	attendant, err := s.attendants.GetByCode(ctx, eventID, code)
	if err != nil {
		log.Printf("Error resolving attendant code: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if attendant == nil {
		return nil, utils.ErrAttendantNotFound
	}

	return s.transition(ctx, attendant, SourceQR)
}

// CheckInByFace matches the probe first; an unknown face never reaches the
// ledger.
func (s *CheckinService) CheckInByFace(ctx context.Context, eventID uuid.UUID, probe []float32) (*CheckinOutcome, error) {
	match, err := s.matcher.Match(ctx, eventID, probe)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, utils.ErrUnknownFace
	}

	attendantID, err := uuid.Parse(match.AttendantID)
	if err != nil {
		log.Printf("Gallery returned malformed attendant id %q: %v", match.AttendantID, err)
		return nil, utils.ErrDatabaseError
	}

	attendant, err := s.attendants.GetByID(ctx, eventID, attendantID)
	if err != nil {
		log.Printf("Error loading matched attendant: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if attendant == nil {
		return nil, utils.ErrAttendantNotFound
	}

	outcome, err := s.transition(ctx, attendant, SourceFace)
	if err != nil {
		return nil, err
	}
	outcome.Distance = &match.Distance
	return outcome, nil
}

// transition performs the exactly-once state change. Once the compare-and-set
// starts the operation must reach a definite outcome, so it runs on a context
// that ignores caller cancellation.
func (s *CheckinService) transition(ctx context.Context, attendant *db_models.Attendant, source string) (*CheckinOutcome, error) {
	if attendant.CheckedInAt != nil {
		return &CheckinOutcome{
			Status:      CheckinDuplicate,
			Attendant:   attendant,
			CheckedInAt: *attendant.CheckedInAt,
		}, nil
	}

	ctx = context.WithoutCancel(ctx)
	now := time.Now().UTC()

	won, err := s.attendants.MarkCheckedIn(ctx, attendant.ID, now)
	if err != nil {
		log.Printf("Error during check-in transition: %v", err)
		return nil, utils.ErrDatabaseError
	}

	if !won {
		// Lost the race: report the winner's timestamp.
		reloaded, err := s.attendants.GetByID(ctx, attendant.EventID, attendant.ID)
		if err != nil {
			log.Printf("Error reloading attendant after lost check-in race: %v", err)
			return nil, utils.ErrDatabaseError
		}
		if reloaded == nil || reloaded.CheckedInAt == nil {
			return nil, utils.ErrDatabaseError
		}
		return &CheckinOutcome{
			Status:      CheckinDuplicate,
			Attendant:   reloaded,
			CheckedInAt: *reloaded.CheckedInAt,
		}, nil
	}

	attendant.CheckedInAt = &now

	if err := s.logs.Append(ctx, &db_models.CheckinLog{
		EventID:     attendant.EventID,
		AttendantID: attendant.ID,
		Source:      source,
		CheckedInAt: now,
	}); err != nil {
		// The transition is already committed; the attendant record remains
		// the idempotency witness.
		log.Printf("Error appending check-in log entry: %v", err)
	}

	s.events.Publish(bus.Event{
		Type:      bus.TypeAttendantCheckedIn,
		EventID:   attendant.EventID.String(),
		Source:    source,
		Attendant: attendantSnapshot(attendant),
	})

	return &CheckinOutcome{
		Status:      CheckinAccepted,
		Attendant:   attendant,
		CheckedInAt: now,
	}, nil
}
