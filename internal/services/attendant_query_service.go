package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"eventgate/internal/models/response_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

type AttendantQueryServiceInterface interface {
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]response_models.Attendant, error)
}

type AttendantQueryService struct {
	attendants repositories.AttendantRepository
}

func NewAttendantQueryService(attendants repositories.AttendantRepository) AttendantQueryServiceInterface {
	return &AttendantQueryService{attendants: attendants}
}

func (s *AttendantQueryService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]response_models.Attendant, error) {
	attendants, err := s.attendants.ListByEvent(ctx, eventID)
	if err != nil {
		log.Printf("Error listing attendants: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.Attendant, 0, len(attendants))
	for i := range attendants {
		responses = append(responses, AttendantResponse(&attendants[i]))
	}
	return responses, nil
}
