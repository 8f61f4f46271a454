package bookingRepo

import (
	"context"

	"medibook/models"
)

// BookingRepository defines read access to the booking history.
type BookingRepository interface {
	// GetAll returns every booking in stored order.
	GetAll(ctx context.Context) ([]models.Booking, error)
	// GetByID returns a single booking or repository.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}
