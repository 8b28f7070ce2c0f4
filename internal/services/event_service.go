package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventgate/internal/models/db_models"
	"eventgate/internal/models/request_models"
	"eventgate/internal/models/response_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, accountID uuid.UUID, req request_models.CreateEventRequest) (response_models.Event, error)
	UpdateEvent(ctx context.Context, accountID, eventID uuid.UUID, req request_models.UpdateEventRequest) (response_models.Event, error)
	DeleteEvent(ctx context.Context, accountID, eventID uuid.UUID) error
	GetEvent(ctx context.Context, eventID uuid.UUID) (response_models.Event, error)
	ListEvents(ctx context.Context, accountID uuid.UUID) ([]response_models.Event, error)
}

type EventService struct {
	eventsRepo repositories.EventRepository
}

func NewEventService(eventsRepo repositories.EventRepository) EventServiceInterface {
	return &EventService{eventsRepo: eventsRepo}
}

func (s *EventService) CreateEvent(ctx context.Context, accountID uuid.UUID, req request_models.CreateEventRequest) (response_models.Event, error) {
	event := &db_models.Event{
		AccountID: accountID,
		EventCode: newEventCode(),
		Name:      req.Name,
		Location:  req.Location,
		Organizer: req.Organizer,
		ImageURL:  req.ImageURL,
		StartTime: parseEventTime(req.StartTime),
		EndTime:   parseEventTime(req.EndTime),
	}

	if err := s.eventsRepo.Create(ctx, event); err != nil {
		log.Printf("Error creating event: %v", err)
		return response_models.Event{}, utils.ErrDatabaseError
	}
	return eventResponse(event), nil
}

func (s *EventService) UpdateEvent(ctx context.Context, accountID, eventID uuid.UUID, req request_models.UpdateEventRequest) (response_models.Event, error) {
	event, err := s.ownedEvent(ctx, accountID, eventID)
	if err != nil {
		return response_models.Event{}, err
	}

	if req.Name != "" {
		event.Name = req.Name
	}
	event.Location = req.Location
	event.Organizer = req.Organizer
	event.ImageURL = req.ImageURL
	if req.StartTime != "" {
		event.StartTime = parseEventTime(req.StartTime)
	}
	if req.EndTime != "" {
		event.EndTime = parseEventTime(req.EndTime)
	}

	if err := s.eventsRepo.Update(ctx, event); err != nil {
		log.Printf("Error updating event: %v", err)
		return response_models.Event{}, utils.ErrDatabaseError
	}
	return eventResponse(event), nil
}

func (s *EventService) DeleteEvent(ctx context.Context, accountID, eventID uuid.UUID) error {
	if _, err := s.ownedEvent(ctx, accountID, eventID); err != nil {
		return err
	}
	if err := s.eventsRepo.Delete(ctx, eventID); err != nil {
		log.Printf("Error deleting event: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID uuid.UUID) (response_models.Event, error) {
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		log.Printf("Error fetching event: %v", err)
		return response_models.Event{}, utils.ErrDatabaseError
	}
	if event == nil {
		return response_models.Event{}, utils.ErrEventNotFound
	}
	return eventResponse(event), nil
}

func (s *EventService) ListEvents(ctx context.Context, accountID uuid.UUID) ([]response_models.Event, error) {
	events, err := s.eventsRepo.ListByAccount(ctx, accountID)
	if err != nil {
		log.Printf("Error listing events: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.Event, 0, len(events))
	for i := range events {
		responses = append(responses, eventResponse(&events[i]))
	}
	return responses, nil
}

func (s *EventService) ownedEvent(ctx context.Context, accountID, eventID uuid.UUID) (*db_models.Event, error) {
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		log.Printf("Error fetching event: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if event == nil || event.AccountID != accountID {
		return nil, utils.ErrEventNotFound
	}
	return event, nil
}

func eventResponse(event *db_models.Event) response_models.Event {
	resp := response_models.Event{
		ID:        event.ID.String(),
		EventCode: event.EventCode,
		Name:      event.Name,
		Location:  event.Location,
		Organizer: event.Organizer,
		ImageURL:  event.ImageURL,
	}
	if event.StartTime != nil {
		resp.StartTime = event.StartTime.Format(time.RFC3339)
	}
	if event.EndTime != nil {
		resp.EndTime = event.EndTime.Format(time.RFC3339)
	}
	return resp
}

func newEventCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

func parseEventTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &t
}
