package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

type QuotaServiceInterface interface {
	// Reserve grants one slot in the group or fails with
	// ErrGroupCapacityFull / ErrGroupNotFound. Denials are not retried; the
	// caller tells the registrant to pick another group.
	Reserve(ctx context.Context, groupID uuid.UUID) error
	// Release compensates a reservation after a failed enrollment.
	Release(ctx context.Context, groupID uuid.UUID) error
}

type QuotaService struct {
	groups repositories.GroupRepository
}

func NewQuotaService(groups repositories.GroupRepository) QuotaServiceInterface {
	return &QuotaService{groups: groups}
}

func (q *QuotaService) Reserve(ctx context.Context, groupID uuid.UUID) error {
	granted, err := q.groups.TryReserve(ctx, groupID)
	if err != nil {
		log.Printf("Error reserving group slot: %v", err)
		return utils.ErrDatabaseError
	}
	if granted {
		return nil
	}

	// Zero rows updated: either the group is full or it does not exist.
	group, err := q.groups.GetByID(ctx, groupID)
	if err != nil {
		log.Printf("Error loading group after denied reservation: %v", err)
		return utils.ErrDatabaseError
	}
	if group == nil {
		return utils.ErrGroupNotFound
	}
	return utils.ErrGroupCapacityFull
}

func (q *QuotaService) Release(ctx context.Context, groupID uuid.UUID) error {
	if err := q.groups.ReleaseSlot(ctx, groupID); err != nil {
		log.Printf("Error releasing group slot: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}
