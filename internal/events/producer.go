package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// TopicBookingEvents carries booking lifecycle and reconciliation events.
const TopicBookingEvents = "rental.booking.events"

// Booking lifecycle event types.
const (
	BookingCreated         = "booking.created"
	BookingCancelled       = "booking.cancelled"
	BookingCompleted       = "booking.completed"
	ReconciliationRequired = "reconciliation.required"
)

// Event is the envelope written to the booking events topic.
type Event struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// BookingEvent is the payload for booking lifecycle events.
type BookingEvent struct {
	BookingID  string `json:"booking_id"`
	VehicleID  string `json:"vehicle_id"`
	UserEmail  string `json:"user_email"`
	Status     string `json:"status,omitempty"`
	ReturnDate string `json:"return_date,omitempty"`
}

// Producer publishes booking lifecycle events. Publishing is best-effort:
// failures are logged and never surfaced to the caller. A nil Producer is
// valid and publishes nothing, which is how event publishing is disabled.
type Producer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewProducer creates a Producer writing to the booking events topic, or nil
// when no brokers are configured.
func NewProducer(brokers []string, logger *zap.Logger) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        TopicBookingEvents,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer, logger: logger}
}

// Close closes the underlying Kafka writer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

// PublishBooking publishes a booking lifecycle event keyed by booking id.
func (p *Producer) PublishBooking(ctx context.Context, eventType string, booking *rental.Booking) {
	p.publish(ctx, eventType, booking.ID.Hex(), BookingEvent{
		BookingID:  booking.ID.Hex(),
		VehicleID:  booking.VehicleID.Hex(),
		UserEmail:  booking.UserEmail,
		Status:     booking.Status.String(),
		ReturnDate: booking.ReturnDate.UTC().Format(time.RFC3339),
	})
}

// PublishReconciliation publishes a reconciliation.required event so the
// repair process can react without polling the reconciliations collection.
func (p *Producer) PublishReconciliation(ctx context.Context, rec *rental.Reconciliation) {
	p.publish(ctx, ReconciliationRequired, rec.BookingID.Hex(), rec)
}

func (p *Producer) publish(ctx context.Context, eventType, key string, data any) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		p.logger.Error("failed to marshal event payload",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	event := Event{
		ID:         uuid.New().String(),
		Source:     "service-rental",
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       payload,
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event envelope",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: value,
	}); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
