package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// MongoBookingRepository is the mongo-backed implementation of BookingRepository.
type MongoBookingRepository struct {
	coll *mongo.Collection
}

// NewMongoBookingRepository creates a new MongoBookingRepository.
func NewMongoBookingRepository(db *mongo.Database) *MongoBookingRepository {
	return &MongoBookingRepository{coll: db.Collection(bookingsCollection)}
}

// Insert persists a new booking.
func (r *MongoBookingRepository) Insert(ctx context.Context, booking *rental.Booking) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return primitive.NilObjectID, rental.NewStoreError("insert booking", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByVehicleAndUser retrieves the booking for a (vehicle, renter) pair.
// FindOne takes the first match, so if a data anomaly left multiple bookings
// for the pair, precedence is whatever the store returns first.
func (r *MongoBookingRepository) FindByVehicleAndUser(ctx context.Context, vehicleID primitive.ObjectID, userEmail string) (*rental.Booking, error) {
	var booking rental.Booking
	err := r.coll.FindOne(ctx, bson.M{
		"vehicleId": vehicleID,
		"userEmail": userEmail,
	}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, rental.NewNotFoundError("booking")
	}
	if err != nil {
		return nil, rental.NewStoreError("find booking", err)
	}
	return &booking, nil
}

// Delete removes a booking record.
func (r *MongoBookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return rental.NewStoreError("delete booking", err)
	}
	if result.DeletedCount == 0 {
		return rental.NewNotFoundError("booking")
	}
	return nil
}

// ListByEmail retrieves bookings, all of them when email is empty.
func (r *MongoBookingRepository) ListByEmail(ctx context.Context, email string) ([]rental.Booking, error) {
	query := bson.M{}
	if email != "" {
		query["userEmail"] = email
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, rental.NewStoreError("list bookings", err)
	}
	defer cursor.Close(ctx)

	bookings := []rental.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, rental.NewStoreError("decode bookings", err)
	}
	return bookings, nil
}

// ListDetailsByEmail joins a renter's bookings with the projected summary of
// each referenced vehicle.
func (r *MongoBookingRepository) ListDetailsByEmail(ctx context.Context, email string) ([]rental.BookingDetails, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userEmail": email}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         vehiclesCollection,
			"localField":   "vehicleId",
			"foreignField": "_id",
			"as":           "vehicleInfo",
		}}},
		{{Key: "$unwind", Value: "$vehicleInfo"}},
		{{Key: "$project", Value: bson.M{
			"vehicleId":   1,
			"vehicleName": 1,
			"userEmail":   1,
			"bookingDate": 1,
			"bookFor":     1,
			"returnDate":  1,
			"status":      1,
			"vehicleInfo.coverImage":   1,
			"vehicleInfo.owner":        1,
			"vehicleInfo.userEmail":    1,
			"vehicleInfo.category":     1,
			"vehicleInfo.fuelType":     1,
			"vehicleInfo.seatCapacity": 1,
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, rental.NewStoreError("aggregate booking details", err)
	}
	defer cursor.Close(ctx)

	details := []rental.BookingDetails{}
	if err := cursor.All(ctx, &details); err != nil {
		return nil, rental.NewStoreError("decode booking details", err)
	}
	return details, nil
}

// FindExpired retrieves bookings past their return deadline that are still
// Booked. Already-completed bookings never match, which is what makes the
// sweep idempotent.
func (r *MongoBookingRepository) FindExpired(ctx context.Context, now time.Time) ([]rental.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.M{
		"returnDate": bson.M{"$lte": now},
		"status":     rental.StatusBooked,
	})
	if err != nil {
		return nil, rental.NewStoreError("find expired bookings", err)
	}
	defer cursor.Close(ctx)

	bookings := []rental.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, rental.NewStoreError("decode bookings", err)
	}
	return bookings, nil
}

// SetStatus atomically updates a booking's status field.
func (r *MongoBookingRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status rental.BookingStatus) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return rental.NewStoreError("set booking status", err)
	}
	if result.MatchedCount == 0 {
		return rental.NewNotFoundError("booking")
	}
	return nil
}
