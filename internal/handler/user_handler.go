package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-rentals/service-rental/internal/application"
	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// UserHandler handles HTTP requests for account registration.
type UserHandler struct {
	service *application.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers all user routes on the given router group.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/users", h.RegisterUser)
}

// RegisterUser handles POST /users.
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var user rental.User
	if err := c.ShouldBindJSON(&user); err != nil {
		badRequest(c, "invalid user document")
		return
	}

	id, err := h.service.RegisterUser(c.Request.Context(), &user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id.Hex()})
}
