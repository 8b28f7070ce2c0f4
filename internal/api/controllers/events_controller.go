package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventgate/internal/models/request_models"
	"eventgate/internal/services"
	"eventgate/pkg/utils"
)

type EventsController struct {
	eventService services.EventServiceInterface
}

func NewEventsController(eventService services.EventServiceInterface) *EventsController {
	return &EventsController{
		eventService: eventService,
	}
}

func accountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return uuid.Nil, false
	}
	return id, true
}

func eventParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event id")
		return uuid.Nil, false
	}
	return id, true
}

func (e *EventsController) CreateEvent(c *gin.Context) {
	owner, ok := accountID(c)
	if !ok {
		return
	}

	var req request_models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event payload")
		return
	}

	event, err := e.eventService.CreateEvent(c.Request.Context(), owner, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event created")
}

func (e *EventsController) ListEvents(c *gin.Context) {
	owner, ok := accountID(c)
	if !ok {
		return
	}

	events, err := e.eventService.ListEvents(c.Request.Context(), owner)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, events, "Events fetched")
}

func (e *EventsController) GetEvent(c *gin.Context) {
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	event, err := e.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event fetched")
}

func (e *EventsController) UpdateEvent(c *gin.Context) {
	owner, ok := accountID(c)
	if !ok {
		return
	}
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	var req request_models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event payload")
		return
	}

	event, err := e.eventService.UpdateEvent(c.Request.Context(), owner, eventID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event updated")
}

func (e *EventsController) DeleteEvent(c *gin.Context) {
	owner, ok := accountID(c)
	if !ok {
		return
	}
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	if err := e.eventService.DeleteEvent(c.Request.Context(), owner, eventID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Event deleted")
}
