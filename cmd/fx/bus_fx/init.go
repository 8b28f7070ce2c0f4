package busfx

import (
	"context"

	"go.uber.org/fx"

	"eventgate/internal/bus"
	"eventgate/internal/queue"
	"eventgate/internal/realtime"
	"eventgate/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideBus, provideHub, provideBridge),
	fx.Invoke(runBridge),
)

func provideBus() *bus.Bus {
	return bus.New()
}

func provideHub(events *bus.Bus, dashboard services.DashboardServiceInterface) *realtime.Hub {
	return realtime.NewHub(events, dashboard)
}

func provideBridge(events *bus.Bus) *queue.Bridge {
	return queue.NewBridge(events)
}

func runBridge(lc fx.Lifecycle, bridge *queue.Bridge) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			bridge.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			bridge.Stop()
			return nil
		},
	})
}
