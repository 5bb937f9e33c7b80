//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	mongodbcontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/smart-rentals/service-rental/internal/application"
	"github.com/smart-rentals/service-rental/internal/domain/rental"
	"github.com/smart-rentals/service-rental/internal/repository"
	"github.com/smart-rentals/service-rental/internal/sweep"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	Client  *mongo.Client
	DB      *mongo.Database
	Cleanup func()
}

// rentalStack holds wired-up rental service components.
type rentalStack struct {
	Bookings *application.BookingService
	Vehicles *application.VehicleService
	Users    *application.UserService
	Sweeper  *sweep.Sweeper
}

// setupMongo starts a MongoDB testcontainer and returns a connected database.
func setupMongo(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	container, err := mongodbcontainer.Run(ctx, "mongo:7")
	require.NoError(t, err, "failed to start MongoDB container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	var client *mongo.Client
	require.Eventually(t, func() bool {
		var connErr error
		client, connErr = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if connErr != nil {
			return false
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx, nil) == nil
	}, 30*time.Second, time.Second, "MongoDB not ready for connections")

	db := client.Database("test_rentals")

	cleanup := func() {
		_ = client.Disconnect(ctx)
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate MongoDB container: %v", err)
		}
	}

	return &testInfra{Client: client, DB: db, Cleanup: cleanup}
}

// setupRentalStack wires up the full rental service stack over a database.
func setupRentalStack(db *mongo.Database) *rentalStack {
	logger := zap.NewNop()

	vehicleRepo := repository.NewMongoVehicleRepository(db)
	bookingRepo := repository.NewMongoBookingRepository(db)
	userRepo := repository.NewMongoUserRepository(db)
	reconRepo := repository.NewMongoReconciliationRepository(db)

	return &rentalStack{
		Bookings: application.NewBookingService(bookingRepo, vehicleRepo, reconRepo, nil, logger),
		Vehicles: application.NewVehicleService(vehicleRepo, logger),
		Users:    application.NewUserService(userRepo, logger),
		Sweeper:  sweep.New(bookingRepo, vehicleRepo, reconRepo, nil, logger, time.Minute),
	}
}

// seedVehicle inserts an Available vehicle directly and returns it.
func seedVehicle(t *testing.T, db *mongo.Database, name string) *rental.Vehicle {
	t.Helper()
	vehicle := &rental.Vehicle{
		VehicleName:  name,
		Owner:        "Owner Person",
		UserEmail:    "owner@example.com",
		Category:     "Sedan",
		Location:     "Dhaka",
		PricePerDay:  45,
		FuelType:     "Petrol",
		SeatCapacity: 4,
		CoverImage:   "https://example.com/car.jpg",
		Availability: rental.AvailabilityAvailable,
		CreatedAt:    time.Now().UTC(),
	}
	result, err := db.Collection("vehicles").InsertOne(context.Background(), vehicle)
	require.NoError(t, err)
	vehicle.ID = result.InsertedID.(primitive.ObjectID)
	return vehicle
}
