package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

const latestVehiclesLimit = 6

// VehicleService handles the listing side of the marketplace. Listings are
// plain data access; the one rule enforced here is that the availability
// field belongs to the booking lifecycle and cannot be written directly.
type VehicleService struct {
	vehicles rental.VehicleRepository
	logger   *zap.Logger
	now      nowFunc
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicles rental.VehicleRepository, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		vehicles: vehicles,
		logger:   logger,
		now:      defaultNow,
	}
}

// ListVehicles retrieves vehicles matching the filter.
func (s *VehicleService) ListVehicles(ctx context.Context, filter rental.VehicleFilter) ([]rental.Vehicle, error) {
	return s.vehicles.List(ctx, filter)
}

// LatestVehicles retrieves the newest listings for the landing page.
func (s *VehicleService) LatestVehicles(ctx context.Context) ([]rental.Vehicle, error) {
	return s.vehicles.Latest(ctx, latestVehiclesLimit)
}

// GetVehicle retrieves a single vehicle by its hex identifier.
func (s *VehicleService) GetVehicle(ctx context.Context, idHex string) (*rental.Vehicle, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, rental.NewValidationError("invalid vehicle id")
	}
	return s.vehicles.FindByID(ctx, id)
}

// CreateVehicle persists a new listing. New vehicles start Available with a
// fresh creation timestamp regardless of what the client sent.
func (s *VehicleService) CreateVehicle(ctx context.Context, vehicle *rental.Vehicle) (primitive.ObjectID, error) {
	if vehicle.VehicleName == "" {
		return primitive.NilObjectID, rental.NewValidationError("vehicleName is required")
	}
	vehicle.ID = primitive.NilObjectID
	vehicle.Availability = rental.AvailabilityAvailable
	vehicle.CreatedAt = s.now()

	id, err := s.vehicles.Insert(ctx, vehicle)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.logger.Info("vehicle created",
		zap.String("vehicle_id", id.Hex()),
		zap.String("vehicle_name", vehicle.VehicleName),
	)
	return id, nil
}

// UpdateVehicle applies a field-update document to a listing. Writes to
// availability are rejected: the field is derived from bookings, and an
// unconstrained update path here would bypass that invariant.
func (s *VehicleService) UpdateVehicle(ctx context.Context, idHex string, fields map[string]any) (int64, int64, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return 0, 0, rental.NewValidationError("invalid vehicle id")
	}
	if len(fields) == 0 {
		return 0, 0, rental.NewValidationError("update document is empty")
	}
	if _, ok := fields["availability"]; ok {
		return 0, 0, rental.NewValidationError("availability is managed by the booking lifecycle and cannot be updated directly")
	}
	if _, ok := fields["_id"]; ok {
		return 0, 0, rental.NewValidationError("_id cannot be updated")
	}
	return s.vehicles.Update(ctx, id, fields)
}

// DeleteVehicle removes a listing.
func (s *VehicleService) DeleteVehicle(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return rental.NewValidationError("invalid vehicle id")
	}
	return s.vehicles.Delete(ctx, id)
}

// NormalizePrices runs the one-off price cleanup over every listing.
func (s *VehicleService) NormalizePrices(ctx context.Context) (int64, error) {
	visited, err := s.vehicles.NormalizePrices(ctx)
	if err != nil {
		return visited, err
	}
	s.logger.Info("vehicle prices normalized", zap.Int64("visited", visited))
	return visited, nil
}
