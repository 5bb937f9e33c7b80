package rental

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle is a rental listing. All descriptive fields are opaque to the
// booking lifecycle; only Availability participates in its invariants.
type Vehicle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	VehicleName  string             `bson:"vehicleName" json:"vehicleName"`
	Owner        string             `bson:"owner" json:"owner"`
	UserEmail    string             `bson:"userEmail" json:"userEmail"`
	Category     string             `bson:"category" json:"category"`
	Location     string             `bson:"location" json:"location"`
	PricePerDay  float64            `bson:"pricePerDay" json:"pricePerDay"`
	FuelType     string             `bson:"fuelType" json:"fuelType"`
	SeatCapacity int                `bson:"seatCapacity" json:"seatCapacity"`
	CoverImage   string             `bson:"coverImage" json:"coverImage"`
	Availability Availability       `bson:"availability" json:"availability"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// VehicleFilter describes the optional query parameters for listing vehicles.
type VehicleFilter struct {
	Category     string
	Location     string
	OwnerEmail   string
	Availability string
	SortBy       string
	Order        string
	Limit        int
}

// VehicleInfo is the projected subset of vehicle fields embedded in a
// booking-details result.
type VehicleInfo struct {
	CoverImage   string `bson:"coverImage" json:"coverImage"`
	Owner        string `bson:"owner" json:"owner"`
	UserEmail    string `bson:"userEmail" json:"userEmail"`
	Category     string `bson:"category" json:"category"`
	FuelType     string `bson:"fuelType" json:"fuelType"`
	SeatCapacity int    `bson:"seatCapacity" json:"seatCapacity"`
}
