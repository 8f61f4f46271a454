// Package seed holds the static collections the app serves until a real
// backend is configured. Callers get fresh copies, never the shared slices.
package seed

import (
	"time"

	"medibook/models"
)

var doctors = map[string]models.Doctor{
	"d1": {ID: "d1", Name: "Dr. Sarah Johnson", Specialization: "Cardiologist", Avatar: "/images/doctors/sarah-johnson.jpg", Rating: 4.9},
	"d2": {ID: "d2", Name: "Dr. Michael Chen", Specialization: "Dermatologist", Avatar: "/images/doctors/michael-chen.jpg", Rating: 4.7},
	"d3": {ID: "d3", Name: "Dr. Emily Rodriguez", Specialization: "Pediatrician", Avatar: "/images/doctors/emily-rodriguez.jpg", Rating: 4.8},
	"d4": {ID: "d4", Name: "Dr. James Wilson", Specialization: "Orthopedic Surgeon", Avatar: "/images/doctors/james-wilson.jpg", Rating: 4.6},
}

// Bookings returns the booking history in display order.
func Bookings() []models.Booking {
	return []models.Booking{
		{ID: "b1", Date: "2026-11-02", Time: "10:30 AM", Doctor: doctors["d1"], Location: "Heart Care Center, Room 204", Status: models.BookingUpcoming, Type: "Consultation"},
		{ID: "b2", Date: "2026-11-09", Time: "02:00 PM", Doctor: doctors["d2"], Location: "Skin Health Clinic", Status: models.BookingUpcoming, Type: "Follow-up", Notes: "Bring previous prescriptions"},
		{ID: "b3", Date: "2026-09-21", Time: "09:00 AM", Doctor: doctors["d3"], Location: "Children's Wellness Center", Status: models.BookingCompleted, Type: "Check-up"},
		{ID: "b4", Date: "2026-08-14", Time: "11:15 AM", Doctor: doctors["d4"], Location: "City Orthopedics, Wing B", Status: models.BookingCompleted, Type: "Consultation"},
		{ID: "b5", Date: "2026-07-30", Time: "04:45 PM", Doctor: doctors["d1"], Location: "Heart Care Center, Room 204", Status: models.BookingCancelled, Type: "Consultation", Notes: "Cancelled by patient"},
	}
}

var chatBase = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

// Chats returns the conversation list, most recent first.
func Chats() []models.Chat {
	return []models.Chat{
		{ID: "c1", Name: "Dr. Sarah Johnson", Avatar: "/images/doctors/sarah-johnson.jpg", LastMessage: "Please remember to take your medication before the visit.", LastMessageTime: chatBase.Add(5 * time.Hour), UnreadCount: 2, IsOnline: true, Specialty: "Cardiologist"},
		{ID: "c2", Name: "Dr. Michael Chen", Avatar: "/images/doctors/michael-chen.jpg", LastMessage: "The results look good.", LastMessageTime: chatBase.Add(2 * time.Hour), UnreadCount: 0, IsOnline: false, Specialty: "Dermatologist"},
		{ID: "c3", Name: "Dr. Emily Rodriguez", Avatar: "/images/doctors/emily-rodriguez.jpg", LastMessage: "See you next week!", LastMessageTime: chatBase.Add(-20 * time.Hour), UnreadCount: 1, IsOnline: true, Specialty: "Pediatrician"},
		{ID: "c4", Name: "City Clinic Support", Avatar: "", LastMessage: "Your appointment has been confirmed.", LastMessageTime: chatBase.Add(-48 * time.Hour), UnreadCount: 0, IsOnline: false},
	}
}

// Messages returns every stored message keyed by chat id.
func Messages() map[string][]models.Message {
	return map[string][]models.Message{
		"c1": {
			{ID: "m1", ChatID: "c1", SenderID: "d1", Content: "Hello! How are you feeling today?", Timestamp: chatBase.Add(4 * time.Hour), IsFromMe: false},
			{ID: "m2", ChatID: "c1", SenderID: "me", Content: "Much better, thank you.", Timestamp: chatBase.Add(4*time.Hour + 10*time.Minute), IsFromMe: true},
			{ID: "m3", ChatID: "c1", SenderID: "d1", Content: "Please remember to take your medication before the visit.", Timestamp: chatBase.Add(5 * time.Hour), IsFromMe: false},
		},
		"c2": {
			{ID: "m4", ChatID: "c2", SenderID: "me", Content: "Did you get a chance to look at my results?", Timestamp: chatBase.Add(time.Hour), IsFromMe: true},
			{ID: "m5", ChatID: "c2", SenderID: "d2", Content: "The results look good.", Timestamp: chatBase.Add(2 * time.Hour), IsFromMe: false},
		},
		"c3": {
			{ID: "m6", ChatID: "c3", SenderID: "d3", Content: "See you next week!", Timestamp: chatBase.Add(-20 * time.Hour), IsFromMe: false},
		},
		"c4": {
			{ID: "m7", ChatID: "c4", SenderID: "support", Content: "Your appointment has been confirmed.", Timestamp: chatBase.Add(-48 * time.Hour), IsFromMe: false},
		},
	}
}

// OnlineUsers returns the people shown as online above the chat list.
func OnlineUsers() []models.OnlineUser {
	return []models.OnlineUser{
		{ID: "d1", Name: "Dr. Sarah Johnson", Avatar: "/images/doctors/sarah-johnson.jpg"},
		{ID: "d3", Name: "Dr. Emily Rodriguez", Avatar: "/images/doctors/emily-rodriguez.jpg"},
		{ID: "d5", Name: "Dr. Aisha Patel", Avatar: ""},
	}
}

// Steps returns the onboarding screens for a role.
func Steps(role models.Role) []models.Step {
	if role == models.RoleProvider {
		return []models.Step{
			{ID: 1, Title: "Grow your practice", Subtitle: "Reach more patients", Description: "List your services and let patients nearby find and book you.", Image: "/images/onboarding/provider-1.png", Alt: "Doctor reviewing a schedule"},
			{ID: 2, Title: "Manage your schedule", Subtitle: "Stay in control", Description: "Accept, reschedule or cancel appointments from one place.", Image: "/images/onboarding/provider-2.png", Alt: "Calendar with appointments"},
			{ID: 3, Title: "Talk to patients", Subtitle: "Secure messaging", Description: "Answer questions and share documents before and after visits.", Image: "/images/onboarding/provider-3.png", Alt: "Doctor chatting on a phone"},
		}
	}
	return []models.Step{
		{ID: 1, Title: "Find trusted doctors", Subtitle: "Care near you", Description: "Search specialists by name, specialty or location.", Image: "/images/onboarding/patient-1.png", Alt: "Patient searching for a doctor"},
		{ID: 2, Title: "Book in seconds", Subtitle: "No waiting on the phone", Description: "Pick a time that works for you and get instant confirmation.", Image: "/images/onboarding/patient-2.png", Alt: "Booking an appointment on a phone"},
		{ID: 3, Title: "Stay connected", Subtitle: "Chat with your doctor", Description: "Message your care team and keep your documents in one place.", Image: "/images/onboarding/patient-3.png", Alt: "Patient messaging a doctor"},
	}
}
