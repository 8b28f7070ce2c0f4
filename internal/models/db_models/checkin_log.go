package db_models

import (
	"time"

	"github.com/google/uuid"
)

// CheckinLog is append-only: one row per successful check-in transition,
// never updated or deleted. Its existence is the idempotency witness for the
// attendant's checked_in_at field.
type CheckinLog struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	EventID     uuid.UUID `gorm:"type:uuid;index"`
	AttendantID uuid.UUID `gorm:"type:uuid;index"`
	Source      string
	CheckedInAt time.Time
}
