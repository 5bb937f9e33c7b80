package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
	"github.com/smart-rentals/service-rental/internal/events"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	VehicleID string `json:"vehicleId"`
	UserEmail string `json:"userEmail"`
	BookFor   int    `json:"bookFor"`
}

// BookingService orchestrates the booking lifecycle: creation, cancellation,
// and the read paths. Each state transition is two single-document writes with
// no transaction around them; a failure between the writes is recorded as a
// reconciliation for out-of-band repair, never auto-corrected here.
type BookingService struct {
	bookings        rental.BookingRepository
	vehicles        rental.VehicleRepository
	reconciliations rental.ReconciliationRepository
	producer        *events.Producer
	logger          *zap.Logger
	now             nowFunc
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings rental.BookingRepository,
	vehicles rental.VehicleRepository,
	reconciliations rental.ReconciliationRepository,
	producer *events.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:        bookings,
		vehicles:        vehicles,
		reconciliations: reconciliations,
		producer:        producer,
		logger:          logger,
		now:             defaultNow,
	}
}

// CreateBooking books a vehicle for the requested number of days. The vehicle
// must exist and be Available; on success the booking is inserted with status
// Booked and the vehicle's availability flips to Booked.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*rental.Booking, error) {
	if req.VehicleID == "" || req.UserEmail == "" || req.BookFor == 0 {
		return nil, rental.NewValidationError("vehicleId, userEmail, and bookFor are required")
	}
	vehicleID, err := primitive.ObjectIDFromHex(req.VehicleID)
	if err != nil {
		return nil, rental.NewValidationError("invalid vehicleId")
	}

	vehicle, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Availability != rental.AvailabilityAvailable {
		return nil, rental.NewConflictError("vehicle is not available")
	}

	booking, err := rental.NewBooking(vehicle, req.UserEmail, req.BookFor, s.now())
	if err != nil {
		return nil, err
	}

	bookingID, err := s.bookings.Insert(ctx, booking)
	if err != nil {
		return nil, err
	}
	booking.ID = bookingID

	if err := s.vehicles.SetAvailability(ctx, vehicle.ID, rental.AvailabilityBooked); err != nil {
		// The booking exists but the vehicle still reads Available. Record the
		// divergence for out-of-band repair and surface the failure.
		s.recordInconsistency(ctx, &rental.Reconciliation{
			VehicleID:            vehicle.ID,
			BookingID:            bookingID,
			ExpectedAvailability: rental.AvailabilityBooked,
			ExpectedStatus:       rental.StatusBooked,
			Reason:               "vehicle availability update failed after booking insert",
		})
		return nil, err
	}

	s.producer.PublishBooking(ctx, events.BookingCreated, booking)

	s.logger.Info("booking created",
		zap.String("booking_id", bookingID.Hex()),
		zap.String("vehicle_id", vehicle.ID.Hex()),
		zap.String("user_email", booking.UserEmail),
		zap.Time("return_date", booking.ReturnDate),
	)
	return booking, nil
}

// CancelBooking removes the booking for a (vehicle, renter) pair and releases
// the vehicle. Cancellation deletes the record; a second call for the same
// pair finds nothing and returns NotFoundError, which is the intended
// terminal behavior.
func (s *BookingService) CancelBooking(ctx context.Context, vehicleIDHex, userEmail string) error {
	if vehicleIDHex == "" || userEmail == "" {
		return rental.NewValidationError("vehicleId and userEmail are required")
	}
	vehicleID, err := primitive.ObjectIDFromHex(vehicleIDHex)
	if err != nil {
		return rental.NewValidationError("invalid vehicleId")
	}

	booking, err := s.bookings.FindByVehicleAndUser(ctx, vehicleID, userEmail)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, booking.ID); err != nil {
		return err
	}

	if err := s.vehicles.SetAvailability(ctx, vehicleID, rental.AvailabilityAvailable); err != nil {
		// The booking is gone but the vehicle still reads Booked.
		s.recordInconsistency(ctx, &rental.Reconciliation{
			VehicleID:            vehicleID,
			BookingID:            booking.ID,
			ExpectedAvailability: rental.AvailabilityAvailable,
			Reason:               "vehicle release failed after booking delete",
		})
		return err
	}

	s.producer.PublishBooking(ctx, events.BookingCancelled, booking)

	s.logger.Info("booking cancelled",
		zap.String("booking_id", booking.ID.Hex()),
		zap.String("vehicle_id", vehicleID.Hex()),
		zap.String("user_email", userEmail),
	)
	return nil
}

// ListBookings retrieves bookings, optionally filtered by renter email.
func (s *BookingService) ListBookings(ctx context.Context, email string) ([]rental.Booking, error) {
	return s.bookings.ListByEmail(ctx, email)
}

// BookingDetails retrieves a renter's bookings joined with their vehicle
// summaries. Email is required.
func (s *BookingService) BookingDetails(ctx context.Context, email string) ([]rental.BookingDetails, error) {
	if email == "" {
		return nil, rental.NewValidationError("email is required")
	}
	return s.bookings.ListDetailsByEmail(ctx, email)
}

func (s *BookingService) recordInconsistency(ctx context.Context, rec *rental.Reconciliation) {
	rec.RecordedAt = s.now()

	s.logger.Error("booking/vehicle state divergence detected",
		zap.String("booking_id", rec.BookingID.Hex()),
		zap.String("vehicle_id", rec.VehicleID.Hex()),
		zap.String("expected_availability", rec.ExpectedAvailability.String()),
		zap.String("reason", rec.Reason),
	)

	if err := s.reconciliations.Save(ctx, rec); err != nil {
		s.logger.Error("failed to persist reconciliation record",
			zap.String("booking_id", rec.BookingID.Hex()),
			zap.Error(err),
		)
	}
	s.producer.PublishReconciliation(ctx, rec)
}
