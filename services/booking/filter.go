package booking

import (
	"fmt"

	"medibook/models"
)

// Filter returns the bookings with the given status, in their original order.
func Filter(bookings []models.Booking, status models.BookingStatus) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// Partition splits bookings by status. Every known status has an entry.
func Partition(bookings []models.Booking) map[models.BookingStatus][]models.Booking {
	parts := make(map[models.BookingStatus][]models.Booking, len(models.BookingStatuses))
	for _, s := range models.BookingStatuses {
		parts[s] = Filter(bookings, s)
	}
	return parts
}

// EmptyMessage is shown when a status tab has no bookings.
func EmptyMessage(status models.BookingStatus) string {
	return fmt.Sprintf("No %s bookings", status)
}
