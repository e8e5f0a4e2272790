package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"model-inference-app/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Service unavailable errors
	case errors.Is(err, domain.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrMissingFeature):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
