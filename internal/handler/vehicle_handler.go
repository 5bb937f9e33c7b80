package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smart-rentals/service-rental/internal/application"
	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// VehicleHandler handles HTTP requests for vehicle listings.
type VehicleHandler struct {
	service *application.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(service *application.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// RegisterRoutes registers all vehicle routes on the given router group.
func (h *VehicleHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/vehicles", h.ListVehicles)
	r.GET("/latest-vehicles", h.LatestVehicles)
	r.GET("/vehicles/:id", h.GetVehicle)
	r.POST("/vehicles", h.CreateVehicle)
	r.PATCH("/vehicles/:id", h.UpdateVehicle)
	r.DELETE("/vehicles/:id", h.DeleteVehicle)
	r.PATCH("/fix-prices", h.FixPrices)
}

// ListVehicles handles GET /vehicles with optional filter/sort/limit params.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	filter := rental.VehicleFilter{
		Category:     c.Query("category"),
		Location:     c.Query("location"),
		OwnerEmail:   c.Query("email"),
		Availability: c.Query("availability"),
		SortBy:       c.Query("sortBy"),
		Order:        c.Query("order"),
		Limit:        limit,
	}

	vehicles, err := h.service.ListVehicles(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// LatestVehicles handles GET /latest-vehicles.
func (h *VehicleHandler) LatestVehicles(c *gin.Context) {
	vehicles, err := h.service.LatestVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle handles GET /vehicles/:id.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.service.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// CreateVehicle handles POST /vehicles.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var vehicle rental.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		badRequest(c, "invalid vehicle document")
		return
	}

	id, err := h.service.CreateVehicle(c.Request.Context(), &vehicle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id.Hex()})
}

// UpdateVehicle handles PATCH /vehicles/:id. The availability field is
// rejected here; it is owned by the booking lifecycle.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, "invalid update document")
		return
	}

	matched, modified, err := h.service.UpdateVehicle(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchedCount": matched, "modifiedCount": modified})
}

// DeleteVehicle handles DELETE /vehicles/:id.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.service.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}

// FixPrices handles PATCH /fix-prices, the one-off price normalization pass.
func (h *VehicleHandler) FixPrices(c *gin.Context) {
	if _, err := h.service.NormalizePrices(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All vehicle prices converted to numbers"})
}
