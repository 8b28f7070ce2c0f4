package db_models

import "github.com/google/uuid"

// EventGroup partitions an event's attendants (tables, delegations, zones).
// CurrentCount is maintained exclusively by the quota reservation statements;
// LimitCount == 0 means unlimited.
type EventGroup struct {
	BaseModel
	EventID      uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	LimitCount   int
	ZoneLabel    string
	CurrentCount int
}
