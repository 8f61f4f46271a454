package models

import "fmt"

// BookingStatus is the lifecycle state of an appointment.
type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists the statuses in tab order.
var BookingStatuses = []BookingStatus{BookingUpcoming, BookingCompleted, BookingCancelled}

func ParseBookingStatus(raw string) (BookingStatus, error) {
	for _, s := range BookingStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown booking status %q", raw)
}

// BookingAction is something the user can do with a booking.
type BookingAction string

const (
	ActionCancel     BookingAction = "cancel"
	ActionReschedule BookingAction = "reschedule"
	ActionReview     BookingAction = "review"
)

// Doctor is embedded by value in every booking.
type Doctor struct {
	ID             string  `bson:"id" json:"id"`
	Name           string  `bson:"name" json:"name"`
	Specialization string  `bson:"specialization" json:"specialization"`
	Avatar         string  `bson:"avatar" json:"avatar"`
	Rating         float64 `bson:"rating" json:"rating"`
}

// Booking represents a scheduled or past appointment.
type Booking struct {
	ID       string        `bson:"id" json:"id"`
	Date     string        `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time     string        `bson:"time" json:"time"` // display time, e.g. "10:30 AM"
	Doctor   Doctor        `bson:"doctor" json:"doctor"`
	Location string        `bson:"location" json:"location"`
	Status   BookingStatus `bson:"status" json:"status"`
	Type     string        `bson:"type,omitempty" json:"type,omitempty"`
	Notes    string        `bson:"notes,omitempty" json:"notes,omitempty"`
}
