//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/smart-rentals/service-rental/internal/application"
	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// TestBookingLifecycle walks a booking through creation, a rejected
// double-booking, and cancellation against a real document store, checking
// the vehicle availability invariant at each step.
func TestBookingLifecycle(t *testing.T) {
	infra := setupMongo(t)
	defer infra.Cleanup()
	stack := setupRentalStack(infra.DB)
	ctx := context.Background()

	vehicle := seedVehicle(t, infra.DB, "Toyota Premio")

	booking, err := stack.Bookings.CreateBooking(ctx, application.CreateBookingRequest{
		VehicleID: vehicle.ID.Hex(),
		UserEmail: "a@x.com",
		BookFor:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, rental.StatusBooked, booking.Status)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 2), booking.ReturnDate, time.Minute)

	// Vehicle flips to Booked.
	var stored rental.Vehicle
	require.NoError(t, infra.DB.Collection("vehicles").
		FindOne(ctx, bson.M{"_id": vehicle.ID}).Decode(&stored))
	assert.Equal(t, rental.AvailabilityBooked, stored.Availability)

	// A second renter is rejected and writes nothing.
	_, err = stack.Bookings.CreateBooking(ctx, application.CreateBookingRequest{
		VehicleID: vehicle.ID.Hex(),
		UserEmail: "b@y.com",
		BookFor:   1,
	})
	assert.ErrorAs(t, err, new(*rental.ConflictError))
	count, err := infra.DB.Collection("bookings").CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Cancellation deletes the booking and releases the vehicle.
	require.NoError(t, stack.Bookings.CancelBooking(ctx, vehicle.ID.Hex(), "a@x.com"))

	count, err = infra.DB.Collection("bookings").CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	require.NoError(t, infra.DB.Collection("vehicles").
		FindOne(ctx, bson.M{"_id": vehicle.ID}).Decode(&stored))
	assert.Equal(t, rental.AvailabilityAvailable, stored.Availability)

	// A second cancel for the same pair finds nothing.
	err = stack.Bookings.CancelBooking(ctx, vehicle.ID.Hex(), "a@x.com")
	assert.ErrorAs(t, err, new(*rental.NotFoundError))
}

// TestSweepCompletesExpiredBookings seeds a booking already past its return
// deadline and verifies one sweep cycle completes it and releases the
// vehicle, and that a second cycle is a no-op.
func TestSweepCompletesExpiredBookings(t *testing.T) {
	infra := setupMongo(t)
	defer infra.Cleanup()
	stack := setupRentalStack(infra.DB)
	ctx := context.Background()

	vehicle := seedVehicle(t, infra.DB, "Honda Fit")

	booking, err := stack.Bookings.CreateBooking(ctx, application.CreateBookingRequest{
		VehicleID: vehicle.ID.Hex(),
		UserEmail: "a@x.com",
		BookFor:   1,
	})
	require.NoError(t, err)

	// Backdate the return deadline one minute into the past.
	_, err = infra.DB.Collection("bookings").UpdateOne(ctx,
		bson.M{"_id": booking.ID},
		bson.M{"$set": bson.M{"returnDate": time.Now().UTC().Add(-time.Minute)}},
	)
	require.NoError(t, err)

	stack.Sweeper.SweepOnce(ctx)

	var sweptBooking rental.Booking
	require.NoError(t, infra.DB.Collection("bookings").
		FindOne(ctx, bson.M{"_id": booking.ID}).Decode(&sweptBooking))
	assert.Equal(t, rental.StatusCompleted, sweptBooking.Status)

	var sweptVehicle rental.Vehicle
	require.NoError(t, infra.DB.Collection("vehicles").
		FindOne(ctx, bson.M{"_id": vehicle.ID}).Decode(&sweptVehicle))
	assert.Equal(t, rental.AvailabilityAvailable, sweptVehicle.Availability)

	// Second cycle: no error, no state change.
	stack.Sweeper.SweepOnce(ctx)
	require.NoError(t, infra.DB.Collection("bookings").
		FindOne(ctx, bson.M{"_id": booking.ID}).Decode(&sweptBooking))
	assert.Equal(t, rental.StatusCompleted, sweptBooking.Status)
}

// TestBookingDetailsJoin verifies the aggregation join projects the vehicle
// summary into each booking.
func TestBookingDetailsJoin(t *testing.T) {
	infra := setupMongo(t)
	defer infra.Cleanup()
	stack := setupRentalStack(infra.DB)
	ctx := context.Background()

	vehicle := seedVehicle(t, infra.DB, "Toyota Allion")

	_, err := stack.Bookings.CreateBooking(ctx, application.CreateBookingRequest{
		VehicleID: vehicle.ID.Hex(),
		UserEmail: "a@x.com",
		BookFor:   3,
	})
	require.NoError(t, err)

	details, err := stack.Bookings.BookingDetails(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, details, 1)

	d := details[0]
	assert.Equal(t, vehicle.ID, d.VehicleID)
	assert.Equal(t, "Toyota Allion", d.VehicleName)
	assert.Equal(t, "a@x.com", d.UserEmail)
	assert.Equal(t, vehicle.CoverImage, d.VehicleInfo.CoverImage)
	assert.Equal(t, vehicle.Owner, d.VehicleInfo.Owner)
	assert.Equal(t, vehicle.UserEmail, d.VehicleInfo.UserEmail)
	assert.Equal(t, vehicle.Category, d.VehicleInfo.Category)
	assert.Equal(t, vehicle.FuelType, d.VehicleInfo.FuelType)
	assert.Equal(t, vehicle.SeatCapacity, d.VehicleInfo.SeatCapacity)
}

// TestVehicleFiltering exercises the listing filters against a real store.
func TestVehicleFiltering(t *testing.T) {
	infra := setupMongo(t)
	defer infra.Cleanup()
	stack := setupRentalStack(infra.DB)
	ctx := context.Background()

	seedVehicle(t, infra.DB, "Sedan One")
	suv := seedVehicle(t, infra.DB, "SUV One")
	_, err := infra.DB.Collection("vehicles").UpdateOne(ctx,
		bson.M{"_id": suv.ID},
		bson.M{"$set": bson.M{"category": "SUV", "location": "Chattogram"}},
	)
	require.NoError(t, err)

	byCategory, err := stack.Vehicles.ListVehicles(ctx, rental.VehicleFilter{Category: "SUV"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "SUV One", byCategory[0].VehicleName)

	// Location matching is a case-insensitive substring.
	byLocation, err := stack.Vehicles.ListVehicles(ctx, rental.VehicleFilter{Location: "chatto"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, "SUV One", byLocation[0].VehicleName)

	available, err := stack.Vehicles.ListVehicles(ctx, rental.VehicleFilter{Availability: "Available"})
	require.NoError(t, err)
	assert.Len(t, available, 2)
}
