package bookingRepo

import (
	"context"

	"medibook/database/repository"
	"medibook/models"
)

// StaticBookingRepo serves a fixed in-memory collection.
type StaticBookingRepo struct {
	bookings []models.Booking
}

// NewStaticBookingRepo copies the given bookings; later changes to the slice are not seen.
func NewStaticBookingRepo(bookings []models.Booking) *StaticBookingRepo {
	cp := make([]models.Booking, len(bookings))
	copy(cp, bookings)
	return &StaticBookingRepo{bookings: cp}
}

func (r *StaticBookingRepo) GetAll(_ context.Context) ([]models.Booking, error) {
	out := make([]models.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *StaticBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}
