package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"eventgate/internal/models/response_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

const recentCheckinLimit = 20

type DashboardServiceInterface interface {
	// EventStats feeds the admin dashboard and the monitor's snapshot on
	// (re)connect, which is how subscribers recover missed events.
	EventStats(ctx context.Context, eventID uuid.UUID) (response_models.EventStats, error)
}

type DashboardService struct {
	attendants repositories.AttendantRepository
	groups     repositories.GroupRepository
	logs       repositories.CheckinLogRepository
}

func NewDashboardService(
	attendants repositories.AttendantRepository,
	groups repositories.GroupRepository,
	logs repositories.CheckinLogRepository,
) DashboardServiceInterface {
	return &DashboardService{
		attendants: attendants,
		groups:     groups,
		logs:       logs,
	}
}

func (s *DashboardService) EventStats(ctx context.Context, eventID uuid.UUID) (response_models.EventStats, error) {
	total, err := s.attendants.CountByEvent(ctx, eventID)
	if err != nil {
		log.Printf("Error counting attendants: %v", err)
		return response_models.EventStats{}, utils.ErrDatabaseError
	}

	checkedIn, err := s.attendants.CountCheckedIn(ctx, eventID)
	if err != nil {
		log.Printf("Error counting checked-in attendants: %v", err)
		return response_models.EventStats{}, utils.ErrDatabaseError
	}

	groups, err := s.groups.ListByEvent(ctx, eventID)
	if err != nil {
		log.Printf("Error listing groups for stats: %v", err)
		return response_models.EventStats{}, utils.ErrDatabaseError
	}

	recent, err := s.logs.ListRecent(ctx, eventID, recentCheckinLimit)
	if err != nil {
		log.Printf("Error listing recent check-ins: %v", err)
		return response_models.EventStats{}, utils.ErrDatabaseError
	}

	stats := response_models.EventStats{
		EventID:         eventID.String(),
		TotalAttendants: total,
		CheckedIn:       checkedIn,
		Groups:          make([]response_models.GroupOccupancy, 0, len(groups)),
		RecentCheckins:  make([]response_models.RecentCheckin, 0, len(recent)),
	}

	for _, g := range groups {
		stats.Groups = append(stats.Groups, response_models.GroupOccupancy{
			GroupID:      g.ID.String(),
			Name:         g.Name,
			LimitCount:   g.LimitCount,
			CurrentCount: g.CurrentCount,
			ZoneLabel:    g.ZoneLabel,
		})
	}

	for _, r := range recent {
		stats.RecentCheckins = append(stats.RecentCheckins, response_models.RecentCheckin{
			AttendantID: r.AttendantID,
			FullName:    r.FullName,
			Source:      r.Source,
			CheckedInAt: r.CheckedInAt,
		})
	}

	return stats, nil
}
