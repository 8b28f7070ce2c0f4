package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"eventgate/internal/bus"
	"eventgate/internal/models/db_models"
	"eventgate/internal/models/request_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

const attendantCodeLength = 6
const codeRetryAttempts = 5

type EnrollmentServiceInterface interface {
	// Enroll registers a new attendant or re-enrolls an existing one (matched
	// by email or phone within the event). Re-enrollment updates contact
	// fields and the embedding but never resets code, VIP status, seat or
	// checked_in_at.
	Enroll(ctx context.Context, eventID uuid.UUID, req request_models.EnrollRequest, embedding []float32) (*db_models.Attendant, error)
}

type EnrollmentService struct {
	attendants repositories.AttendantRepository
	groups     repositories.GroupRepository
	eventsRepo repositories.EventRepository
	quota      QuotaServiceInterface
	events     *bus.Bus
}

func NewEnrollmentService(
	attendants repositories.AttendantRepository,
	groups repositories.GroupRepository,
	eventsRepo repositories.EventRepository,
	quota QuotaServiceInterface,
	events *bus.Bus,
) EnrollmentServiceInterface {
	return &EnrollmentService{
		attendants: attendants,
		groups:     groups,
		eventsRepo: eventsRepo,
		quota:      quota,
		events:     events,
	}
}

func (s *EnrollmentService) Enroll(ctx context.Context, eventID uuid.UUID, req request_models.EnrollRequest, embedding []float32) (*db_models.Attendant, error) {
	if req.FullName == "" || req.Email == "" {
		return nil, utils.ErrMissingRequired
	}
	if embedding != nil && len(embedding) != db_models.EmbeddingDim {
		return nil, utils.ErrEmbeddingDimension
	}

	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		log.Printf("Error loading event for enrollment: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}

	var group *db_models.EventGroup
	if req.GroupID != "" {
		groupID, err := uuid.Parse(req.GroupID)
		if err != nil {
			return nil, utils.ErrGroupNotFound
		}
		group, err = s.groups.GetByID(ctx, groupID)
		if err != nil {
			log.Printf("Error loading group for enrollment: %v", err)
			return nil, utils.ErrDatabaseError
		}
		if group == nil || group.EventID != eventID {
			return nil, utils.ErrGroupNotFound
		}
	}

	existing, err := s.attendants.FindByContact(ctx, eventID, req.Email, req.Phone)
	if err != nil {
		log.Printf("Error matching attendant by contact: %v", err)
		return nil, utils.ErrDatabaseError
	}

	// Reserve the target group before touching the record; release the old
	// slot only after the move has been persisted.
	reserved := false
	var oldGroupID *uuid.UUID
	if existing != nil {
		oldGroupID = existing.GroupID
	}
	if group != nil && (oldGroupID == nil || *oldGroupID != group.ID) {
		if err := s.quota.Reserve(ctx, group.ID); err != nil {
			return nil, err
		}
		reserved = true
	}

	attendant, err := s.persist(ctx, eventID, req, embedding, existing, group)
	if err != nil {
		if reserved {
			// Compensate so capacity does not leak.
			if relErr := s.quota.Release(ctx, group.ID); relErr != nil {
				log.Printf("Error releasing reserved slot after failed enrollment: %v", relErr)
			}
		}
		return nil, err
	}

	groupChanged := group == nil && oldGroupID != nil ||
		group != nil && oldGroupID != nil && *oldGroupID != group.ID
	if groupChanged {
		if err := s.quota.Release(ctx, *oldGroupID); err != nil {
			log.Printf("Error releasing previous group slot: %v", err)
		}
	}

	attendant.Group = group
	s.events.Publish(bus.Event{
		Type:      bus.TypeAttendantRegistered,
		EventID:   eventID.String(),
		Attendant: attendantSnapshot(attendant),
	})

	return attendant, nil
}

func (s *EnrollmentService) persist(
	ctx context.Context,
	eventID uuid.UUID,
	req request_models.EnrollRequest,
	embedding []float32,
	existing *db_models.Attendant,
	group *db_models.EventGroup,
) (*db_models.Attendant, error) {

	organization := req.Organization
	if group != nil {
		organization = group.Name
	}

	var groupID *uuid.UUID
	if group != nil {
		id := group.ID
		groupID = &id
	}

	var vec *pgvector.Vector
	if embedding != nil {
		v := pgvector.NewVector(embedding)
		vec = &v
	}

	if existing != nil {
		existing.FullName = req.FullName
		existing.Email = req.Email
		existing.Phone = req.Phone
		existing.Organization = organization
		existing.Position = req.Position
		existing.GroupID = groupID
		if vec != nil {
			existing.FaceEmbedding = vec
		}
		// Code, IsVIP, SeatLocation and CheckedInAt are deliberately left
		// untouched on re-enrollment.

		if err := s.attendants.Update(ctx, existing); err != nil {
			log.Printf("Error updating attendant on re-enrollment: %v", err)
			return nil, utils.ErrDatabaseError
		}
		return existing, nil
	}

	code, err := s.uniqueCode(ctx, eventID)
	if err != nil {
		return nil, err
	}

	attendant := &db_models.Attendant{
		EventID:       eventID,
		Code:          code,
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Organization:  organization,
		Position:      req.Position,
		GroupID:       groupID,
		SeatLocation:  req.SeatLocation,
		IsVIP:         req.IsVIP,
		FaceEmbedding: vec,
	}

	if err := s.attendants.Create(ctx, attendant); err != nil {
		log.Printf("Error creating attendant: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return attendant, nil
}

func (s *EnrollmentService) uniqueCode(ctx context.Context, eventID uuid.UUID) (string, error) {
	for i := 0; i < codeRetryAttempts; i++ {
		code, err := utils.GenerateAttendantCode(attendantCodeLength)
		if err != nil {
			return "", utils.ErrDatabaseError
		}
		taken, err := s.attendants.GetByCode(ctx, eventID, code)
		if err != nil {
			log.Printf("Error checking code uniqueness: %v", err)
			return "", utils.ErrDatabaseError
		}
		if taken == nil {
			return code, nil
		}
	}
	return "", utils.ErrDatabaseError
}
