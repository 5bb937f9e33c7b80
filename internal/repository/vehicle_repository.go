package repository

import (
	"context"
	"errors"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// MongoVehicleRepository is the mongo-backed implementation of VehicleRepository.
type MongoVehicleRepository struct {
	coll *mongo.Collection
}

// NewMongoVehicleRepository creates a new MongoVehicleRepository.
func NewMongoVehicleRepository(db *mongo.Database) *MongoVehicleRepository {
	return &MongoVehicleRepository{coll: db.Collection(vehiclesCollection)}
}

// FindByID retrieves a vehicle by its identifier.
func (r *MongoVehicleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*rental.Vehicle, error) {
	var vehicle rental.Vehicle
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, rental.NewNotFoundError("vehicle")
	}
	if err != nil {
		return nil, rental.NewStoreError("find vehicle", err)
	}
	return &vehicle, nil
}

// List retrieves vehicles matching the filter. Location matches are a
// case-insensitive substring; everything else is an exact match.
func (r *MongoVehicleRepository) List(ctx context.Context, filter rental.VehicleFilter) ([]rental.Vehicle, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Location != "" {
		query["location"] = bson.M{"$regex": filter.Location, "$options": "i"}
	}
	if filter.OwnerEmail != "" {
		query["userEmail"] = filter.OwnerEmail
	}
	if filter.Availability != "" {
		query["availability"] = filter.Availability
	}

	opts := options.Find()
	if filter.SortBy != "" {
		dir := -1
		if filter.Order == "asc" {
			dir = 1
		}
		opts.SetSort(bson.D{{Key: filter.SortBy, Value: dir}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, rental.NewStoreError("list vehicles", err)
	}
	defer cursor.Close(ctx)

	vehicles := []rental.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, rental.NewStoreError("decode vehicles", err)
	}
	return vehicles, nil
}

// Latest retrieves the most recently created vehicles, newest first.
func (r *MongoVehicleRepository) Latest(ctx context.Context, limit int) ([]rental.Vehicle, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, rental.NewStoreError("list latest vehicles", err)
	}
	defer cursor.Close(ctx)

	vehicles := []rental.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, rental.NewStoreError("decode vehicles", err)
	}
	return vehicles, nil
}

// Insert persists a new vehicle.
func (r *MongoVehicleRepository) Insert(ctx context.Context, vehicle *rental.Vehicle) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, vehicle)
	if err != nil {
		return primitive.NilObjectID, rental.NewStoreError("insert vehicle", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// Update applies a field-update document to a vehicle.
func (r *MongoVehicleRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (int64, int64, error) {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, 0, rental.NewStoreError("update vehicle", err)
	}
	if result.MatchedCount == 0 {
		return 0, 0, rental.NewNotFoundError("vehicle")
	}
	return result.MatchedCount, result.ModifiedCount, nil
}

// Delete removes a vehicle.
func (r *MongoVehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return rental.NewStoreError("delete vehicle", err)
	}
	if result.DeletedCount == 0 {
		return rental.NewNotFoundError("vehicle")
	}
	return nil
}

// SetAvailability atomically updates a vehicle's availability field. This is
// the only write to availability anywhere in the service.
func (r *MongoVehicleRepository) SetAvailability(ctx context.Context, id primitive.ObjectID, availability rental.Availability) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"availability": availability}},
	)
	if err != nil {
		return rental.NewStoreError("set vehicle availability", err)
	}
	if result.MatchedCount == 0 {
		return rental.NewNotFoundError("vehicle")
	}
	return nil
}

// NormalizePrices coerces every vehicle's pricePerDay to a double. Vehicles
// imported before price validation existed may carry string prices.
func (r *MongoVehicleRepository) NormalizePrices(ctx context.Context) (int64, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return 0, rental.NewStoreError("list vehicles", err)
	}
	defer cursor.Close(ctx)

	var visited int64
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return visited, rental.NewStoreError("decode vehicle", err)
		}
		id, ok := doc["_id"].(primitive.ObjectID)
		if !ok {
			continue
		}
		price := toFloat(doc["pricePerDay"])
		if _, err := r.coll.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"pricePerDay": price}},
		); err != nil {
			return visited, rental.NewStoreError("normalize vehicle price", err)
		}
		visited++
	}
	if err := cursor.Err(); err != nil {
		return visited, rental.NewStoreError("iterate vehicles", err)
	}
	return visited, nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		// Malformed strings normalize to zero rather than failing the pass.
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}
