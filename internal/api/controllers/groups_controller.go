package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventgate/internal/models/request_models"
	"eventgate/internal/services"
	"eventgate/pkg/utils"
)

type GroupsController struct {
	groupService services.GroupServiceInterface
}

func NewGroupsController(groupService services.GroupServiceInterface) *GroupsController {
	return &GroupsController{
		groupService: groupService,
	}
}

func (g *GroupsController) CreateGroup(c *gin.Context) {
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	var req request_models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid group payload")
		return
	}

	group, err := g.groupService.CreateGroup(c.Request.Context(), eventID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, group, "Group created")
}

func (g *GroupsController) ListGroups(c *gin.Context) {
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	groups, err := g.groupService.ListGroups(c.Request.Context(), eventID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, groups, "Groups fetched")
}

func (g *GroupsController) DeleteGroup(c *gin.Context) {
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid group id")
		return
	}

	if err := g.groupService.DeleteGroup(c.Request.Context(), eventID, groupID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Group deleted")
}
