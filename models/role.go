package models

import (
	"fmt"
	"strings"
)

// Role is the kind of account a person signs in with.
type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
)

// ParseRole accepts "patient" or "provider" in any case.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RolePatient:
		return RolePatient, nil
	case RoleProvider:
		return RoleProvider, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

func (r Role) String() string { return string(r) }
