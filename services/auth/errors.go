package auth

import "errors"

const (
	// InvalidCredentialsMessage is what the identity backend reports on a bad login.
	InvalidCredentialsMessage = "Invalid login credentials"
	// FriendlyCredentialsMessage replaces it for display.
	FriendlyCredentialsMessage = "Incorrect email or password. Please check your details and try again."
	// DuplicateUserMessage is reported when an email is already registered.
	DuplicateUserMessage = "User already registered"
	// DuplicatePhoneMessage is reported when a phone number belongs to another account.
	DuplicatePhoneMessage = "Phone number already registered"
	// PasswordAccountMessage is reported when a Google identity matches a password account.
	PasswordAccountMessage = "An account with this email already exists. Sign in with your password."
	// UnverifiedEmailMessage is reported for Google accounts whose email is not verified.
	UnverifiedEmailMessage = "Your Google email address is not verified"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("invalid or expired sign-in state")
)

// ValidationError blocks a form submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError carries the identity backend's message. Conflict marks errors
// caused by an existing account.
type AuthError struct {
	Message  string
	Conflict bool
}

func (e *AuthError) Error() string { return e.Message }

func invalidCredentials() error { return &AuthError{Message: InvalidCredentialsMessage} }

// FriendlyMessage returns the text to show for err.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *AuthError
	if errors.As(err, &ae) && ae.Message == InvalidCredentialsMessage {
		return FriendlyCredentialsMessage
	}
	return err.Error()
}
