package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// MongoUserRepository is the mongo-backed implementation of UserRepository.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

// FindByEmail retrieves a user by email.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*rental.User, error) {
	var user rental.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, rental.NewNotFoundError("user")
	}
	if err != nil {
		return nil, rental.NewStoreError("find user", err)
	}
	return &user, nil
}

// Insert persists a new user.
func (r *MongoUserRepository) Insert(ctx context.Context, user *rental.User) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, rental.NewStoreError("insert user", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}
