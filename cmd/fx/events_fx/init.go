package eventsfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"eventgate/internal/repositories"
	"eventgate/internal/services"
)

var Module = fx.Provide(
	provideEventRepo, provideEventService,
	provideGroupRepo, provideGroupService,
	provideCheckinLogRepo, provideDashboardService)

func provideEventRepo(db *gorm.DB) repositories.EventRepository {
	return repositories.NewEventRepository(db)
}

func provideEventService(eventRepo repositories.EventRepository) services.EventServiceInterface {
	return services.NewEventService(eventRepo)
}

func provideGroupRepo(db *gorm.DB) repositories.GroupRepository {
	return repositories.NewGroupRepository(db)
}

func provideGroupService(groupRepo repositories.GroupRepository, eventRepo repositories.EventRepository) services.GroupServiceInterface {
	return services.NewGroupService(groupRepo, eventRepo)
}

func provideCheckinLogRepo(db *gorm.DB) repositories.CheckinLogRepository {
	return repositories.NewCheckinLogRepository(db)
}

func provideDashboardService(
	attendantRepo repositories.AttendantRepository,
	groupRepo repositories.GroupRepository,
	logRepo repositories.CheckinLogRepository,
) services.DashboardServiceInterface {
	return services.NewDashboardService(attendantRepo, groupRepo, logRepo)
}
