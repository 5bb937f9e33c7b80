// Package sweep owns the recurring task that completes expired bookings and
// releases their vehicles. The sweeper is the only writer that moves a
// booking from Booked to Completed.
package sweep

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
	"github.com/smart-rentals/service-rental/internal/events"
)

// Sweeper periodically scans for bookings past their return deadline and
// completes them. It owns its own schedule: Run drives the timer, SweepOnce
// performs a single cycle and is what tests call directly.
type Sweeper struct {
	bookings        rental.BookingRepository
	vehicles        rental.VehicleRepository
	reconciliations rental.ReconciliationRepository
	producer        *events.Producer
	logger          *zap.Logger
	interval        time.Duration
	now             func() time.Time
}

// New creates a Sweeper that runs a cycle every interval.
func New(
	bookings rental.BookingRepository,
	vehicles rental.VehicleRepository,
	reconciliations rental.ReconciliationRepository,
	producer *events.Producer,
	logger *zap.Logger,
	interval time.Duration,
) *Sweeper {
	return &Sweeper{
		bookings:        bookings,
		vehicles:        vehicles,
		reconciliations: reconciliations,
		producer:        producer,
		logger:          logger,
		interval:        interval,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Run executes sweep cycles on the configured interval until the context is
// cancelled. Errors within a cycle are logged, never fatal: the next tick
// retries whatever the previous cycle left behind.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("expiry sweeper starting", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("expiry sweeper shutting down")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce performs one scan-and-complete cycle. Each expired booking is a
// pair of single-document updates: release the vehicle, then complete the
// booking. A failure on one booking is isolated; the rest of the batch still
// runs. Re-running against already-completed bookings is a no-op because the
// query filters on status Booked.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	now := s.now()

	expired, err := s.bookings.FindExpired(ctx, now)
	if err != nil {
		s.logger.Error("failed to query expired bookings", zap.Error(err))
		return
	}
	if len(expired) == 0 {
		return
	}

	s.logger.Info("sweeping expired bookings", zap.Int("count", len(expired)))

	for i := range expired {
		s.sweepBooking(ctx, &expired[i], now)
	}
}

func (s *Sweeper) sweepBooking(ctx context.Context, booking *rental.Booking, now time.Time) {
	if err := s.vehicles.SetAvailability(ctx, booking.VehicleID, rental.AvailabilityAvailable); err != nil {
		// Leave the booking Booked so the next cycle retries the whole pair.
		s.logger.Error("failed to release vehicle for expired booking",
			zap.String("booking_id", booking.ID.Hex()),
			zap.String("vehicle_id", booking.VehicleID.Hex()),
			zap.Error(err),
		)
		s.recordInconsistency(ctx, booking, now, "vehicle release failed during sweep")
		return
	}

	if err := s.bookings.SetStatus(ctx, booking.ID, rental.StatusCompleted); err != nil {
		// Vehicle is already released; the booking stays Booked and past due,
		// so the next cycle picks it up again and the release is idempotent.
		s.logger.Error("failed to complete expired booking",
			zap.String("booking_id", booking.ID.Hex()),
			zap.Error(err),
		)
		s.recordInconsistency(ctx, booking, now, "booking completion failed during sweep")
		return
	}

	booking.Status = rental.StatusCompleted
	s.producer.PublishBooking(ctx, events.BookingCompleted, booking)

	s.logger.Info("booking completed, vehicle released",
		zap.String("booking_id", booking.ID.Hex()),
		zap.String("vehicle_id", booking.VehicleID.Hex()),
		zap.Time("return_date", booking.ReturnDate),
	)
}

func (s *Sweeper) recordInconsistency(ctx context.Context, booking *rental.Booking, now time.Time, reason string) {
	rec := &rental.Reconciliation{
		VehicleID:            booking.VehicleID,
		BookingID:            booking.ID,
		ExpectedAvailability: rental.AvailabilityAvailable,
		ExpectedStatus:       rental.StatusCompleted,
		Reason:               reason,
		RecordedAt:           now,
	}
	if err := s.reconciliations.Save(ctx, rec); err != nil {
		s.logger.Error("failed to persist reconciliation record",
			zap.String("booking_id", booking.ID.Hex()),
			zap.Error(err),
		)
	}
	s.producer.PublishReconciliation(ctx, rec)
}
