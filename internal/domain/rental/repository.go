package rental

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleRepository defines the persistence contract for vehicle listings.
// SetAvailability is the single-document atomic update the booking lifecycle
// relies on; there is no multi-document transaction anywhere in the contract.
type VehicleRepository interface {
	// FindByID retrieves a vehicle by its identifier.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Vehicle, error)

	// List retrieves vehicles matching the filter, sorted and limited as requested.
	List(ctx context.Context, filter VehicleFilter) ([]Vehicle, error)

	// Latest retrieves the most recently created vehicles, newest first.
	Latest(ctx context.Context, limit int) ([]Vehicle, error)

	// Insert persists a new vehicle and returns its assigned identifier.
	Insert(ctx context.Context, vehicle *Vehicle) (primitive.ObjectID, error)

	// Update applies a field-update document to a vehicle and reports how many
	// documents matched and were modified.
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (matched, modified int64, err error)

	// Delete removes a vehicle.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// SetAvailability atomically updates a vehicle's availability field.
	SetAvailability(ctx context.Context, id primitive.ObjectID, availability Availability) error

	// NormalizePrices coerces every vehicle's pricePerDay to a numeric value
	// and returns the number of vehicles visited.
	NormalizePrices(ctx context.Context) (int64, error)
}

// BookingRepository defines the persistence contract for bookings.
type BookingRepository interface {
	// Insert persists a new booking and returns its assigned identifier.
	Insert(ctx context.Context, booking *Booking) (primitive.ObjectID, error)

	// FindByVehicleAndUser retrieves the booking for a (vehicle, renter) pair.
	// If a data anomaly left multiple matches, the first result wins.
	FindByVehicleAndUser(ctx context.Context, vehicleID primitive.ObjectID, userEmail string) (*Booking, error)

	// Delete removes a booking record.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ListByEmail retrieves bookings, optionally filtered by renter email.
	ListByEmail(ctx context.Context, email string) ([]Booking, error)

	// ListDetailsByEmail retrieves a renter's bookings joined with the
	// projected summary of each referenced vehicle.
	ListDetailsByEmail(ctx context.Context, email string) ([]BookingDetails, error)

	// FindExpired retrieves bookings whose return deadline has passed and
	// whose status is still Booked.
	FindExpired(ctx context.Context, now time.Time) ([]Booking, error)

	// SetStatus atomically updates a booking's status field.
	SetStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) error
}

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// FindByEmail retrieves a user by email, returning NotFoundError if absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Insert persists a new user and returns its assigned identifier.
	Insert(ctx context.Context, user *User) (primitive.ObjectID, error)
}

// ReconciliationRepository records detected booking/vehicle inconsistencies
// for out-of-band repair.
type ReconciliationRepository interface {
	// Save persists a reconciliation record.
	Save(ctx context.Context, rec *Reconciliation) error
}
