package userRepo

import (
	"context"
	"errors"

	"medibook/models"
)

var (
	// ErrDuplicateUser is returned by Create when the email is already taken.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrDuplicatePhone is returned by Create when the phone number is already taken.
	ErrDuplicatePhone = errors.New("phone number already registered")
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByPhone retrieves a user by phone number.
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// Update modifies an existing user record.
	Update(ctx context.Context, user *models.User) error
}
