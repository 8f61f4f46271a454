package models

// Settings are the toggles on the settings screen.
type Settings struct {
	PushNotifications    bool   `json:"pushNotifications"`
	EmailNotifications   bool   `json:"emailNotifications"`
	AppointmentReminders bool   `json:"appointmentReminders"`
	Language             string `json:"language"`
	DarkMode             bool   `json:"darkMode"`
}
