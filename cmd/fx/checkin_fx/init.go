package checkinfx

import (
	"log"
	"os"
	"strconv"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"eventgate/internal/bus"
	"eventgate/internal/repositories"
	"eventgate/internal/services"
)

var Module = fx.Provide(
	provideGalleryRepo, provideMatcherService, provideCheckinService)

func provideGalleryRepo(db *gorm.DB) repositories.GalleryRepository {
	return repositories.NewGalleryRepository(db)
}

func provideMatcherService(galleryRepo repositories.GalleryRepository) services.MatcherServiceInterface {
	threshold := services.DefaultMatchThreshold
	if raw := os.Getenv("MATCH_THRESHOLD"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			log.Printf("Invalid MATCH_THRESHOLD %q, using default %v", raw, services.DefaultMatchThreshold)
		} else {
			threshold = parsed
		}
	}
	return services.NewMatcherService(galleryRepo, threshold)
}

func provideCheckinService(
	attendantRepo repositories.AttendantRepository,
	logRepo repositories.CheckinLogRepository,
	matcher services.MatcherServiceInterface,
	events *bus.Bus,
) services.CheckinServiceInterface {
	return services.NewCheckinService(attendantRepo, logRepo, matcher, events)
}
