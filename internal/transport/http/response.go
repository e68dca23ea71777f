package http

import (
	"errors"
	"net/http"

	"trivia-service/internal/domain"
	"trivia-service/internal/play"

	"github.com/gin-gonic/gin"
)

type successBody struct {
	Data any `json:"data"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, successBody{Data: data})
}

func writeCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, successBody{Data: data})
}

func badRequest(c *gin.Context, message string) {
	writeError(c, http.StatusBadRequest, "BAD_REQUEST", message, "")
}

func writeError(c *gin.Context, status int, code, message, field string) {
	c.AbortWithStatusJSON(status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   message,
		Field:     field,
		RequestID: GetRequestID(c),
	}})
}

// fromError maps domain errors to HTTP responses.
func fromError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", verr.Message, verr.Field)
	case domain.IsNotFound(err):
		writeError(c, http.StatusNotFound, "NOT_FOUND", err.Error(), "")
	case errors.Is(err, domain.ErrInvalidEndReason), errors.Is(err, domain.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, "BAD_REQUEST", err.Error(), "")
	case errors.Is(err, domain.ErrSessionEnded), errors.Is(err, play.ErrSessionStarted):
		writeError(c, http.StatusConflict, "CONFLICT", err.Error(), "")
	default:
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", "")
	}
}
