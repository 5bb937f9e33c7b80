package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Store
// failures are reported generically; their detail belongs in the logs.
func respondError(c *gin.Context, err error) {
	var (
		validation *rental.ValidationError
		notFound   *rental.NotFoundError
		conflict   *rental.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
