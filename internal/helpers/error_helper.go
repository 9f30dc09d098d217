package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventsphere/backend/internal/apperrors"
	"github.com/eventsphere/backend/internal/logger"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// HandleServiceError maps a service error onto its HTTP status. Anything
// outside the known taxonomy is logged and surfaced as a 500 without the
// underlying cause.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		RespondWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrAccountInactive):
		RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		RespondWithError(c, http.StatusConflict, err.Error())
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled service error")
		RespondWithError(c, http.StatusInternalServerError, "something went wrong")
	}
}
