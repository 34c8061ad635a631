package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"photo-delivery-backend/internal/models"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateFolder):
		return http.StatusConflict
	case errors.Is(err, models.ErrRevisionsExhausted):
		return http.StatusConflict
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a store/service error to its stable wire code.
func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), models.ErrorResponse{
		Error:   models.ErrorCode(err),
		Message: err.Error(),
	})
}

// respondPublicError is the token-route variant: authorization failures
// are reported as not_found so an unauthenticated caller can't probe
// which resources exist.
func respondPublicError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrForbidden) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not_found"})
		return
	}
	respondError(c, err)
}
