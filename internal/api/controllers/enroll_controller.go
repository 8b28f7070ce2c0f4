package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventgate/internal/embedder"
	"eventgate/internal/models/request_models"
	"eventgate/internal/services"
	"eventgate/pkg/utils"
)

type EnrollController struct {
	enrollment services.EnrollmentServiceInterface
	attendants services.AttendantQueryServiceInterface
	embedder   embedder.ClientInterface
}

func NewEnrollController(
	enrollment services.EnrollmentServiceInterface,
	attendants services.AttendantQueryServiceInterface,
	embedderClient embedder.ClientInterface,
) *EnrollController {
	return &EnrollController{
		enrollment: enrollment,
		attendants: attendants,
		embedder:   embedderClient,
	}
}

// resolveEmbedding prefers a descriptor computed on the capture device and
// falls back to the embedder sidecar when only an image was sent.
func (e *EnrollController) resolveEmbedding(c *gin.Context, embedding []float32, imageBase64 string) ([]float32, bool) {
	if len(embedding) > 0 {
		return embedding, true
	}
	if imageBase64 == "" {
		return nil, true
	}

	image, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid image encoding")
		return nil, false
	}

	computed, err := e.embedder.Embed(c.Request.Context(), image)
	if err != nil {
		if errors.Is(err, utils.ErrNoFaceFound) {
			utils.HandleServiceError(c, err)
		} else {
			utils.RespondError(c, http.StatusBadGateway, "Face service unavailable, please retry later")
		}
		return nil, false
	}
	return computed, true
}

func (e *EnrollController) Enroll(c *gin.Context) {
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	var req request_models.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid enrollment payload")
		return
	}

	embedding, ok := e.resolveEmbedding(c, req.Embedding, req.ImageBase64)
	if !ok {
		return
	}

	attendant, err := e.enrollment.Enroll(c.Request.Context(), eventID, req, embedding)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, services.AttendantResponse(attendant), "Enrollment completed")
}

func (e *EnrollController) ListAttendants(c *gin.Context) {
	eventID, ok := eventParam(c)
	if !ok {
		return
	}

	attendants, err := e.attendants.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, attendants, "Attendants fetched")
}
