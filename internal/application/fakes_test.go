package application

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/smart-rentals/service-rental/internal/domain/rental"
)

// fakeVehicleRepo is an in-memory VehicleRepository with per-method failure
// injection.
type fakeVehicleRepo struct {
	vehicles map[primitive.ObjectID]*rental.Vehicle

	setAvailabilityErr   error
	setAvailabilityCalls int
}

func newFakeVehicleRepo(vehicles ...*rental.Vehicle) *fakeVehicleRepo {
	repo := &fakeVehicleRepo{vehicles: map[primitive.ObjectID]*rental.Vehicle{}}
	for _, v := range vehicles {
		repo.vehicles[v.ID] = v
	}
	return repo
}

func (r *fakeVehicleRepo) FindByID(_ context.Context, id primitive.ObjectID) (*rental.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, rental.NewNotFoundError("vehicle")
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVehicleRepo) List(_ context.Context, filter rental.VehicleFilter) ([]rental.Vehicle, error) {
	out := []rental.Vehicle{}
	for _, v := range r.vehicles {
		if filter.Category != "" && v.Category != filter.Category {
			continue
		}
		if filter.Availability != "" && string(v.Availability) != filter.Availability {
			continue
		}
		if filter.OwnerEmail != "" && v.UserEmail != filter.OwnerEmail {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeVehicleRepo) Latest(_ context.Context, limit int) ([]rental.Vehicle, error) {
	out := []rental.Vehicle{}
	for _, v := range r.vehicles {
		if len(out) == limit {
			break
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeVehicleRepo) Insert(_ context.Context, vehicle *rental.Vehicle) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	vehicle.ID = id
	copied := *vehicle
	r.vehicles[id] = &copied
	return id, nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, id primitive.ObjectID, fields map[string]any) (int64, int64, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return 0, 0, rental.NewNotFoundError("vehicle")
	}
	if name, ok := fields["vehicleName"].(string); ok {
		v.VehicleName = name
	}
	return 1, 1, nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.vehicles[id]; !ok {
		return rental.NewNotFoundError("vehicle")
	}
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) SetAvailability(_ context.Context, id primitive.ObjectID, availability rental.Availability) error {
	r.setAvailabilityCalls++
	if r.setAvailabilityErr != nil {
		return r.setAvailabilityErr
	}
	v, ok := r.vehicles[id]
	if !ok {
		return rental.NewNotFoundError("vehicle")
	}
	v.Availability = availability
	return nil
}

func (r *fakeVehicleRepo) NormalizePrices(_ context.Context) (int64, error) {
	return int64(len(r.vehicles)), nil
}

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	bookings map[primitive.ObjectID]*rental.Booking

	insertErr error
	deleteErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[primitive.ObjectID]*rental.Booking{}}
}

func (r *fakeBookingRepo) Insert(_ context.Context, booking *rental.Booking) (primitive.ObjectID, error) {
	if r.insertErr != nil {
		return primitive.NilObjectID, r.insertErr
	}
	id := primitive.NewObjectID()
	copied := *booking
	copied.ID = id
	r.bookings[id] = &copied
	return id, nil
}

func (r *fakeBookingRepo) FindByVehicleAndUser(_ context.Context, vehicleID primitive.ObjectID, userEmail string) (*rental.Booking, error) {
	for _, b := range r.bookings {
		if b.VehicleID == vehicleID && b.UserEmail == userEmail {
			copied := *b
			return &copied, nil
		}
	}
	return nil, rental.NewNotFoundError("booking")
}

func (r *fakeBookingRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.bookings[id]; !ok {
		return rental.NewNotFoundError("booking")
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) ListByEmail(_ context.Context, email string) ([]rental.Booking, error) {
	out := []rental.Booking{}
	for _, b := range r.bookings {
		if email == "" || b.UserEmail == email {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListDetailsByEmail(_ context.Context, email string) ([]rental.BookingDetails, error) {
	out := []rental.BookingDetails{}
	for _, b := range r.bookings {
		if b.UserEmail != email {
			continue
		}
		out = append(out, rental.BookingDetails{
			ID:          b.ID,
			VehicleID:   b.VehicleID,
			VehicleName: b.VehicleName,
			UserEmail:   b.UserEmail,
			BookingDate: b.BookingDate,
			BookFor:     b.BookFor,
			ReturnDate:  b.ReturnDate,
			Status:      b.Status,
		})
	}
	return out, nil
}

func (r *fakeBookingRepo) FindExpired(_ context.Context, now time.Time) ([]rental.Booking, error) {
	out := []rental.Booking{}
	for _, b := range r.bookings {
		if b.Status == rental.StatusBooked && !b.ReturnDate.After(now) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) SetStatus(_ context.Context, id primitive.ObjectID, status rental.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return rental.NewNotFoundError("booking")
	}
	b.Status = status
	return nil
}

// fakeReconciliationRepo records saved reconciliation records.
type fakeReconciliationRepo struct {
	records []rental.Reconciliation
}

func (r *fakeReconciliationRepo) Save(_ context.Context, rec *rental.Reconciliation) error {
	r.records = append(r.records, *rec)
	return nil
}

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	users map[string]*rental.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*rental.User{}}
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*rental.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, rental.NewNotFoundError("user")
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Insert(_ context.Context, user *rental.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	user.ID = id
	copied := *user
	r.users[user.Email] = &copied
	return id, nil
}
