package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eventgate/internal/embedder"
	"eventgate/internal/models/request_models"
	"eventgate/internal/models/response_models"
	"eventgate/internal/services"
	"eventgate/pkg/utils"
)

type CheckinController struct {
	checkin  services.CheckinServiceInterface
	matcher  services.MatcherServiceInterface
	embedder embedder.ClientInterface
}

func NewCheckinController(
	checkin services.CheckinServiceInterface,
	matcher services.MatcherServiceInterface,
	embedderClient embedder.ClientInterface,
) *CheckinController {
	return &CheckinController{
		checkin:  checkin,
		matcher:  matcher,
		embedder: embedderClient,
	}
}

func (ct *CheckinController) CheckInQR(c *gin.Context) {
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	var req request_models.QRCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid check-in payload")
		return
	}

	outcome, err := ct.checkin.CheckInByCode(c.Request.Context(), eventID, req.Code)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	respondCheckin(c, outcome)
}

func (ct *CheckinController) CheckInFace(c *gin.Context) {
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	var req request_models.FaceCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid check-in payload")
		return
	}

	probe := req.Embedding
	if len(probe) == 0 {
		if req.ImageBase64 == "" {
			utils.RespondError(c, http.StatusBadRequest, "Either embedding or image_base64 is required")
			return
		}
		image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid image encoding")
			return
		}
		probe, err = ct.embedder.Embed(c.Request.Context(), image)
		if err != nil {
			if errors.Is(err, utils.ErrNoFaceFound) {
				utils.HandleServiceError(c, err)
			} else {
				utils.RespondError(c, http.StatusBadGateway, "Face service unavailable, please retry later")
			}
			return
		}
	}

	outcome, err := ct.checkin.CheckInByFace(c.Request.Context(), eventID, probe)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	respondCheckin(c, outcome)
}

// Match is the read-only diagnostics endpoint for organizers tuning their
// gallery; it never transitions anyone.
func (ct *CheckinController) Match(c *gin.Context) {
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	var req request_models.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid match payload")
		return
	}

	match, err := ct.matcher.Match(c.Request.Context(), eventID, req.Embedding)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result := response_models.MatchResult{Found: match != nil}
	if match != nil {
		result.AttendantID = match.AttendantID
		result.Distance = &match.Distance
	}

	utils.RespondSuccess(c, result, "Match evaluated")
}

func respondCheckin(c *gin.Context, outcome *services.CheckinOutcome) {
	result := response_models.CheckinResult{
		Status:      string(outcome.Status),
		CheckedInAt: outcome.CheckedInAt.UTC().Format(time.RFC3339),
		Distance:    outcome.Distance,
		Attendant:   services.AttendantResponse(outcome.Attendant),
	}

	message := "Welcome, " + outcome.Attendant.FullName + "!"
	if outcome.Status == services.CheckinDuplicate {
		message = "Already checked in at " + result.CheckedInAt
	}

	utils.RespondSuccess(c, result, message)
}
