package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventgate/internal/models/db_models"
)

type CheckinLogRepository interface {
	Append(ctx context.Context, entry *db_models.CheckinLog) error
	ListRecent(ctx context.Context, eventID uuid.UUID, limit int) ([]RecentCheckinRow, error)
}

// RecentCheckinRow joins the log with the attendant name for dashboards.
type RecentCheckinRow struct {
	AttendantID string `gorm:"column:attendant_id"`
	FullName    string `gorm:"column:full_name"`
	Source      string `gorm:"column:source"`
	CheckedInAt string `gorm:"column:checked_in_at"`
}

type checkinLogRepository struct {
	db *gorm.DB
}

func NewCheckinLogRepository(db *gorm.DB) CheckinLogRepository {
	return &checkinLogRepository{db: db}
}

func (r *checkinLogRepository) Append(ctx context.Context, entry *db_models.CheckinLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *checkinLogRepository) ListRecent(ctx context.Context, eventID uuid.UUID, limit int) ([]RecentCheckinRow, error) {
	var rows []RecentCheckinRow

	query := `
        SELECT l.attendant_id::text AS attendant_id,
               a.full_name AS full_name,
               l.source AS source,
               to_char(l.checked_in_at, 'YYYY-MM-DD"T"HH24:MI:SSOF') AS checked_in_at
        FROM checkin_logs l
        JOIN attendants a ON a.id = l.attendant_id
        WHERE l.event_id = $1
        ORDER BY l.checked_in_at DESC
        LIMIT $2
    `

	err := r.db.WithContext(ctx).Raw(query, eventID, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
