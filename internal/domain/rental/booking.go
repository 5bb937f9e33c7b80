package rental

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a time-bounded reservation of a single vehicle by a renter.
// VehicleID is a reference, not ownership: the vehicle record outlives and is
// independent of any booking.
type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	VehicleID   primitive.ObjectID `bson:"vehicleId" json:"vehicleId"`
	VehicleName string             `bson:"vehicleName" json:"vehicleName"`
	UserEmail   string             `bson:"userEmail" json:"userEmail"`
	BookingDate time.Time          `bson:"bookingDate" json:"bookingDate"`
	BookFor     int                `bson:"bookFor" json:"bookFor"`
	ReturnDate  time.Time          `bson:"returnDate" json:"returnDate"`
	Status      BookingStatus      `bson:"status" json:"status"`
}

// NewBooking builds a booking for the given vehicle with status Booked and a
// return deadline of bookFor whole days after now.
func NewBooking(vehicle *Vehicle, userEmail string, bookFor int, now time.Time) (*Booking, error) {
	if userEmail == "" {
		return nil, NewValidationError("userEmail is required")
	}
	if bookFor <= 0 {
		return nil, NewValidationError("bookFor must be a positive number of days")
	}
	return &Booking{
		VehicleID:   vehicle.ID,
		VehicleName: vehicle.VehicleName,
		UserEmail:   userEmail,
		BookingDate: now,
		BookFor:     bookFor,
		ReturnDate:  now.Add(time.Duration(bookFor) * 24 * time.Hour),
		Status:      StatusBooked,
	}, nil
}

// Expired reports whether the booking's return deadline has passed. A Booked
// booking past its deadline is an expected transient state until the sweeper
// observes it.
func (b *Booking) Expired(now time.Time) bool {
	return !b.ReturnDate.After(now)
}

// BookingDetails is a booking joined with the projected summary of its
// referenced vehicle.
type BookingDetails struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	VehicleID   primitive.ObjectID `bson:"vehicleId" json:"vehicleId"`
	VehicleName string             `bson:"vehicleName" json:"vehicleName"`
	UserEmail   string             `bson:"userEmail" json:"userEmail"`
	BookingDate time.Time          `bson:"bookingDate" json:"bookingDate"`
	BookFor     int                `bson:"bookFor" json:"bookFor"`
	ReturnDate  time.Time          `bson:"returnDate" json:"returnDate"`
	Status      BookingStatus      `bson:"status" json:"status"`
	VehicleInfo VehicleInfo        `bson:"vehicleInfo" json:"vehicleInfo"`
}
