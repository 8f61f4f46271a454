package booking

import (
	"errors"
	"fmt"

	"medibook/models"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrScheduleRequired = errors.New("date and time are required")
)

// ActionError reports an action the booking's status does not allow.
type ActionError struct {
	BookingID string
	Action    models.BookingAction
	Status    models.BookingStatus
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("cannot %s a %s booking (%s)", e.Action, e.Status, e.BookingID)
}
