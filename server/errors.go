package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
)

// writeError maps a domain error onto the HTTP taxonomy. Unexpected
// failures surface their message as-is with a 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
	case errors.Is(err, models.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, models.ErrAlreadyReviewed):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product already reviewed"})
	case errors.Is(err, models.ErrNoOrderItems):
		c.JSON(http.StatusBadRequest, gin.H{"message": "No order items"})
	case errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
