package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;index"`
	EventCode string    `gorm:"uniqueIndex"`
	Name      string
	Location  string
	Organizer string
	ImageURL  string
	StartTime *time.Time
	EndTime   *time.Time

	Groups []EventGroup `gorm:"foreignKey:EventID"`
}
