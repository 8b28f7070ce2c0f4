package controllers

import (
	"github.com/gin-gonic/gin"

	"eventgate/internal/services"
	"eventgate/pkg/utils"
)

type DashboardController struct {
	dashboard services.DashboardServiceInterface
}

func NewDashboardController(dashboard services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{
		dashboard: dashboard,
	}
}

func (d *DashboardController) EventStats(c *gin.Context) {
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	stats, err := d.dashboard.EventStats(c.Request.Context(), eventID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "Stats fetched")
}
