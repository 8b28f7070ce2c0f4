package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventgate/internal/models/db_models"
)

type AttendantRepository interface {
	Create(ctx context.Context, attendant *db_models.Attendant) error
	Update(ctx context.Context, attendant *db_models.Attendant) error

	GetByID(ctx context.Context, eventID, id uuid.UUID) (*db_models.Attendant, error)
	GetByCode(ctx context.Context, eventID uuid.UUID, code string) (*db_models.Attendant, error)
	FindByContact(ctx context.Context, eventID uuid.UUID, email, phone string) (*db_models.Attendant, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]db_models.Attendant, error)

	// MarkCheckedIn is the exactly-once transition: it sets checked_in_at only
	// when it is still null and reports whether this caller won the race.
	MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
	CountCheckedIn(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type attendantRepository struct {
	db *gorm.DB
}

func NewAttendantRepository(db *gorm.DB) AttendantRepository {
	return &attendantRepository{db: db}
}

func (r *attendantRepository) Create(ctx context.Context, attendant *db_models.Attendant) error {
	return r.db.WithContext(ctx).Create(attendant).Error
}

func (r *attendantRepository) Update(ctx context.Context, attendant *db_models.Attendant) error {
	result := r.db.WithContext(ctx).Save(attendant)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *attendantRepository) GetByID(ctx context.Context, eventID, id uuid.UUID) (*db_models.Attendant, error) {
	var attendant db_models.Attendant
	err := r.db.WithContext(ctx).
		Preload("Group").
		First(&attendant, "id = ? AND event_id = ?", id, eventID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attendant, nil
}

func (r *attendantRepository) GetByCode(ctx context.Context, eventID uuid.UUID, code string) (*db_models.Attendant, error) {
	var attendant db_models.Attendant
	err := r.db.WithContext(ctx).
		Preload("Group").
		First(&attendant, "event_id = ? AND code = ?", eventID, code).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attendant, nil
}

func (r *attendantRepository) FindByContact(ctx context.Context, eventID uuid.UUID, email, phone string) (*db_models.Attendant, error) {
	query := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if phone != "" {
		query = query.Where("email = ? OR phone = ?", email, phone)
	} else {
		query = query.Where("email = ?", email)
	}

	var attendant db_models.Attendant
	err := query.First(&attendant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attendant, nil
}

func (r *attendantRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]db_models.Attendant, error) {
	var attendants []db_models.Attendant
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("event_id = ?", eventID).
		Order("full_name").
		Find(&attendants).Error
	if err != nil {
		return nil, err
	}
	return attendants, nil
}

func (r *attendantRepository) MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.Attendant{}).
		Where("id = ? AND checked_in_at IS NULL", id).
		Update("checked_in_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *attendantRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Attendant{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *attendantRepository) CountCheckedIn(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Attendant{}).
		Where("event_id = ? AND checked_in_at IS NOT NULL", eventID).
		Count(&count).Error
	return count, err
}
