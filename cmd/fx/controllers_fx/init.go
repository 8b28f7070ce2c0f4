package controllersfx

import (
	"go.uber.org/fx"

	"eventgate/internal/api/controllers"
)

var Module = fx.Provide(
	controllers.NewAccountController,
	controllers.NewEventsController,
	controllers.NewGroupsController,
	controllers.NewEnrollController,
	controllers.NewCheckinController,
	controllers.NewDashboardController,
)
