package dbfx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"eventgate/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideDB, provideRedis),
	fx.Invoke(registerShutdown),
)

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}

func provideRedis() *redis.Client {
	return infra.InitRedis()
}

func registerShutdown(lc fx.Lifecycle, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
}
