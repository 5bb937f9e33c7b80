package application

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// UserService handles account registration. Email uniqueness is enforced
// here, not by a store-level index.
type UserService struct {
	users  rental.UserRepository
	logger *zap.Logger
	now    nowFunc
}

// NewUserService creates a new UserService.
func NewUserService(users rental.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
		now:    defaultNow,
	}
}

// RegisterUser inserts a new user unless the email is already taken.
func (s *UserService) RegisterUser(ctx context.Context, user *rental.User) (primitive.ObjectID, error) {
	if user.Email == "" {
		return primitive.NilObjectID, rental.NewValidationError("email is required")
	}

	_, err := s.users.FindByEmail(ctx, user.Email)
	if err == nil {
		return primitive.NilObjectID, rental.NewConflictError("user already exists")
	}
	var notFound *rental.NotFoundError
	if !errors.As(err, &notFound) {
		return primitive.NilObjectID, err
	}

	user.ID = primitive.NilObjectID
	user.CreatedAt = s.now()
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.logger.Info("user registered",
		zap.String("user_id", id.Hex()),
		zap.String("email", user.Email),
	)
	return id, nil
}
