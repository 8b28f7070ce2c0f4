package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"eventgate/internal/models/db_models"
	"eventgate/internal/models/request_models"
	"eventgate/internal/models/response_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, eventID uuid.UUID, req request_models.CreateGroupRequest) (response_models.Group, error)
	DeleteGroup(ctx context.Context, eventID, groupID uuid.UUID) error
	ListGroups(ctx context.Context, eventID uuid.UUID) ([]response_models.Group, error)
}

type GroupService struct {
	groups     repositories.GroupRepository
	eventsRepo repositories.EventRepository
}

func NewGroupService(groups repositories.GroupRepository, eventsRepo repositories.EventRepository) GroupServiceInterface {
	return &GroupService{
		groups:     groups,
		eventsRepo: eventsRepo,
	}
}

func (s *GroupService) CreateGroup(ctx context.Context, eventID uuid.UUID, req request_models.CreateGroupRequest) (response_models.Group, error) {
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		log.Printf("Error fetching event for group creation: %v", err)
		return response_models.Group{}, utils.ErrDatabaseError
	}
	if event == nil {
		return response_models.Group{}, utils.ErrEventNotFound
	}

	group := &db_models.EventGroup{
		EventID:    eventID,
		Name:       req.Name,
		LimitCount: req.LimitCount,
		ZoneLabel:  req.ZoneLabel,
	}
	if group.LimitCount < 0 {
		group.LimitCount = 0
	}

	if err := s.groups.Create(ctx, group); err != nil {
		log.Printf("Error creating group: %v", err)
		return response_models.Group{}, utils.ErrDatabaseError
	}
	return groupResponse(group), nil
}

// DeleteGroup removes the group only; attendants referencing it keep their
// group_id and simply lose the resolved name.
func (s *GroupService) DeleteGroup(ctx context.Context, eventID, groupID uuid.UUID) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		log.Printf("Error fetching group: %v", err)
		return utils.ErrDatabaseError
	}
	if group == nil || group.EventID != eventID {
		return utils.ErrGroupNotFound
	}

	if err := s.groups.Delete(ctx, eventID, groupID); err != nil {
		log.Printf("Error deleting group: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *GroupService) ListGroups(ctx context.Context, eventID uuid.UUID) ([]response_models.Group, error) {
	groups, err := s.groups.ListByEvent(ctx, eventID)
	if err != nil {
		log.Printf("Error listing groups: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.Group, 0, len(groups))
	for i := range groups {
		responses = append(responses, groupResponse(&groups[i]))
	}
	return responses, nil
}

func groupResponse(group *db_models.EventGroup) response_models.Group {
	return response_models.Group{
		ID:           group.ID.String(),
		EventID:      group.EventID.String(),
		Name:         group.Name,
		LimitCount:   group.LimitCount,
		ZoneLabel:    group.ZoneLabel,
		CurrentCount: group.CurrentCount,
	}
}
