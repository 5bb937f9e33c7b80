package rental

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reconciliation records a detected inconsistency between a booking and its
// vehicle, left behind when the second write of a two-step transition failed.
// Records are written for an out-of-band repair process; this service never
// corrects them itself.
type Reconciliation struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	VehicleID            primitive.ObjectID `bson:"vehicleId" json:"vehicleId"`
	BookingID            primitive.ObjectID `bson:"bookingId" json:"bookingId"`
	ExpectedAvailability Availability       `bson:"expectedAvailability" json:"expectedAvailability"`
	ExpectedStatus       BookingStatus      `bson:"expectedStatus,omitempty" json:"expectedStatus,omitempty"`
	Reason               string             `bson:"reason" json:"reason"`
	RecordedAt           time.Time          `bson:"recordedAt" json:"recordedAt"`
}
