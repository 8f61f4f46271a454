package booking

import (
	"context"

	"medibook/models"
)

// HistoryService serves the booking history screen.
type HistoryService interface {
	History(ctx context.Context, status models.BookingStatus) (*HistoryView, error)
	Get(ctx context.Context, id string) (*Detail, error)
	Cancel(ctx context.Context, id, reason string) (*models.Booking, error)
	Reschedule(ctx context.Context, id, date, at string) (*models.Booking, error)
}

// HistoryView is one status tab of the booking history.
type HistoryView struct {
	Status       models.BookingStatus         `json:"status"`
	Bookings     []models.Booking             `json:"bookings"`
	Counts       map[models.BookingStatus]int `json:"counts"`
	EmptyMessage string                       `json:"emptyMessage,omitempty"`
}

// Detail is a booking with the actions its status allows.
type Detail struct {
	Booking models.Booking         `json:"booking"`
	Actions []models.BookingAction `json:"actions"`
}
