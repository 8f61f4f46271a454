package booking

import "medibook/models"

// Actions lists what the user may do with a booking in the given status.
func Actions(status models.BookingStatus) []models.BookingAction {
	switch status {
	case models.BookingUpcoming:
		return []models.BookingAction{models.ActionCancel, models.ActionReschedule}
	case models.BookingCompleted, models.BookingCancelled:
		return []models.BookingAction{models.ActionReview}
	}
	return nil
}

// Allows reports whether action is valid for status.
func Allows(status models.BookingStatus, action models.BookingAction) bool {
	for _, a := range Actions(status) {
		if a == action {
			return true
		}
	}
	return false
}
