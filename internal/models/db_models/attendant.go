package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDim is the length of the face descriptors produced by the capture
// clients. Probes of any other length are rejected before touching storage.
const EmbeddingDim = 128

type Attendant struct {
	BaseModel
	EventID       uuid.UUID `gorm:"type:uuid;index:idx_attendants_event_code,unique,priority:1"`
	Code          string    `gorm:"index:idx_attendants_event_code,unique,priority:2"`
	FullName      string
	Email         string `gorm:"index"`
	Phone         string
	Organization  string
	Position      string
	AvatarURL     string
	GroupID       *uuid.UUID `gorm:"type:uuid;index"`
	SeatLocation  string
	IsVIP         bool             `gorm:"column:is_vip"`
	FaceEmbedding *pgvector.Vector `gorm:"type:vector(128)"`
	CheckedInAt   *time.Time

	Group *EventGroup `gorm:"foreignKey:GroupID"`
}

// HasEmbedding reports whether the attendant is part of the face gallery.
func (a *Attendant) HasEmbedding() bool {
	return a.FaceEmbedding != nil
}
