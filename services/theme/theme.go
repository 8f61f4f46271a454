// Package theme resolves the copy and palette for each account role.
package theme

import (
	"errors"

	"medibook/models"
)

var ErrUnknownRole = errors.New("unknown role")

// Palette is the role's color set, as hex strings.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

// Variant is everything role-specific the screens render.
type Variant struct {
	Role        models.Role `json:"role"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Description string      `json:"description"`
	AuthPath    string      `json:"authPath"`
	HomePath    string      `json:"homePath"`
	Palette     Palette     `json:"palette"`
}

var (
	patient = Variant{
		Role:        models.RolePatient,
		Title:       "I'm a Patient",
		Subtitle:    "Book appointments with trusted doctors",
		Description: "Find specialists, book visits and chat with your care team.",
		AuthPath:    "/auth?type=patient",
		HomePath:    "/patient/home",
		Palette:     Palette{Primary: "#2563EB", Secondary: "#DBEAFE", Accent: "#10B981", Background: "#F8FAFC"},
	}
	provider = Variant{
		Role:        models.RoleProvider,
		Title:       "I'm a Healthcare Provider",
		Subtitle:    "Manage your practice and patients",
		Description: "Publish availability, manage bookings and message patients.",
		AuthPath:    "/auth?type=provider",
		HomePath:    "/provider/home",
		Palette:     Palette{Primary: "#059669", Secondary: "#D1FAE5", Accent: "#2563EB", Background: "#F0FDF4"},
	}
)

// For returns the variant for role.
func For(role models.Role) (Variant, error) {
	switch role {
	case models.RolePatient:
		return patient, nil
	case models.RoleProvider:
		return provider, nil
	}
	return Variant{}, ErrUnknownRole
}

// All returns the variants in the order the login selection screen shows them.
func All() []Variant {
	return []Variant{patient, provider}
}
