package services

import (
	"time"

	"eventgate/internal/bus"
	"eventgate/internal/models/db_models"
	"eventgate/internal/models/response_models"
)

func AttendantResponse(att *db_models.Attendant) response_models.Attendant {
	resp := response_models.Attendant{
		ID:           att.ID.String(),
		EventID:      att.EventID.String(),
		Code:         att.Code,
		FullName:     att.FullName,
		Email:        att.Email,
		Phone:        att.Phone,
		Organization: att.Organization,
		Position:     att.Position,
		AvatarURL:    att.AvatarURL,
		SeatLocation: att.SeatLocation,
		IsVIP:        att.IsVIP,
		HasFace:      att.HasEmbedding(),
	}
	if att.GroupID != nil {
		resp.GroupID = att.GroupID.String()
	}
	if att.Group != nil {
		resp.GroupName = att.Group.Name
		resp.ZoneLabel = att.Group.ZoneLabel
	}
	if att.CheckedInAt != nil {
		resp.CheckedInAt = att.CheckedInAt.Format(time.RFC3339)
	}
	return resp
}

func attendantSnapshot(att *db_models.Attendant) bus.AttendantSnapshot {
	snap := bus.AttendantSnapshot{
		ID:           att.ID.String(),
		EventID:      att.EventID.String(),
		Code:         att.Code,
		FullName:     att.FullName,
		Organization: att.Organization,
		Position:     att.Position,
		AvatarURL:    att.AvatarURL,
		SeatLocation: att.SeatLocation,
		IsVIP:        att.IsVIP,
	}
	if att.Group != nil {
		snap.GroupName = att.Group.Name
		snap.ZoneLabel = att.Group.ZoneLabel
	}
	if att.CheckedInAt != nil {
		snap.CheckedInAt = att.CheckedInAt.Format(time.RFC3339)
	}
	return snap
}
