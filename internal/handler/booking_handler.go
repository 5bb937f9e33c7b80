package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-rentals/service-rental/internal/application"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bookings", h.CreateBooking)
	r.DELETE("/bookings", h.CancelBooking)
	r.GET("/bookings", h.ListBookings)
	r.GET("/my-bookings-details", h.BookingDetails)
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "vehicleId, userEmail, and bookFor are required")
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking successful",
		"booking": booking,
	})
}

// CancelBooking handles DELETE /bookings?vehicleId=&userEmail=.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	vehicleID := c.Query("vehicleId")
	userEmail := c.Query("userEmail")

	if err := h.service.CancelBooking(c.Request.Context(), vehicleID, userEmail); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// ListBookings handles GET /bookings?email=.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// BookingDetails handles GET /my-bookings-details?email=.
func (h *BookingHandler) BookingDetails(c *gin.Context) {
	details, err := h.service.BookingDetails(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
