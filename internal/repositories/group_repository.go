package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventgate/internal/models/db_models"
)

type GroupRepository interface {
	Create(ctx context.Context, group *db_models.EventGroup) error
	Delete(ctx context.Context, eventID, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.EventGroup, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]db_models.EventGroup, error)

	// TryReserve grants one capacity slot with a single conditional update so
	// that no two concurrent callers can both pass a stale capacity check.
	TryReserve(ctx context.Context, id uuid.UUID) (bool, error)
	// ReleaseSlot compensates a reservation whose enrollment failed afterwards.
	ReleaseSlot(ctx context.Context, id uuid.UUID) error
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *db_models.EventGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) Delete(ctx context.Context, eventID, id uuid.UUID) error {
	// Attendants keep their group_id; the reference goes dangling on purpose.
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&db_models.EventGroup{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.EventGroup, error) {
	var group db_models.EventGroup
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]db_models.EventGroup, error) {
	var groups []db_models.EventGroup
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("name").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) TryReserve(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.EventGroup{}).
		Where("id = ? AND (limit_count = 0 OR current_count < limit_count)", id).
		UpdateColumn("current_count", gorm.Expr("current_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *groupRepository) ReleaseSlot(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.EventGroup{}).
		Where("id = ? AND current_count > 0", id).
		UpdateColumn("current_count", gorm.Expr("current_count - 1")).Error
}
