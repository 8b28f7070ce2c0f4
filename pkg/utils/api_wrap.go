package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinel errors onto HTTP statuses.
// Recoverable outcomes get an informative message; database failures get a
// generic retry-later message.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		RespondError(c, http.StatusNotFound, "Event not found")
	case errors.Is(err, ErrGroupNotFound):
		RespondError(c, http.StatusNotFound, "Group not found")
	case errors.Is(err, ErrAttendantNotFound):
		RespondError(c, http.StatusNotFound, "Attendant not found")
	case errors.Is(err, ErrGroupCapacityFull):
		RespondError(c, http.StatusConflict, "Group is full, please choose another group")
	case errors.Is(err, ErrUnknownFace):
		RespondError(c, http.StatusNotFound, "Face not recognized")
	case errors.Is(err, ErrEmbeddingDimension):
		RespondError(c, http.StatusBadRequest, "Embedding has the wrong dimension")
	case errors.Is(err, ErrMissingRequired):
		RespondError(c, http.StatusBadRequest, "Missing required field")
	case errors.Is(err, ErrNoFaceFound):
		RespondError(c, http.StatusBadRequest, "No face detected in image")
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error, please retry later")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
