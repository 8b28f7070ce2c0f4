package enrollmentfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"eventgate/internal/bus"
	"eventgate/internal/embedder"
	"eventgate/internal/repositories"
	"eventgate/internal/services"
)

var Module = fx.Provide(
	provideAttendantRepo, provideQuotaService,
	provideEnrollmentService, provideAttendantQueryService,
	provideEmbedderClient)

func provideAttendantRepo(db *gorm.DB) repositories.AttendantRepository {
	return repositories.NewAttendantRepository(db)
}

func provideQuotaService(groupRepo repositories.GroupRepository) services.QuotaServiceInterface {
	return services.NewQuotaService(groupRepo)
}

func provideEnrollmentService(
	attendantRepo repositories.AttendantRepository,
	groupRepo repositories.GroupRepository,
	eventRepo repositories.EventRepository,
	quota services.QuotaServiceInterface,
	events *bus.Bus,
) services.EnrollmentServiceInterface {
	return services.NewEnrollmentService(attendantRepo, groupRepo, eventRepo, quota, events)
}

func provideAttendantQueryService(attendantRepo repositories.AttendantRepository) services.AttendantQueryServiceInterface {
	return services.NewAttendantQueryService(attendantRepo)
}

func provideEmbedderClient() embedder.ClientInterface {
	return embedder.NewClient()
}
