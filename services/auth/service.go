package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"medibook/database/repository"
	sessionRepo "medibook/database/repository/session"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6

	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// Options configures token lifetimes and the Google client.
type Options struct {
	TokenTTL          time.Duration
	StateTTL          time.Duration
	GoogleClientID    string
	GoogleAuthURL     string
	GoogleRedirectURL string
}

// Service is the authentication collaborator: accounts, token sessions and
// Google sign-in.
type Service struct {
	Users    userRepo.UserRepository
	Sessions sessionRepo.Store
	Google   IDTokenVerifier
	Clock    utils.Clock
	Opts     Options
}

func NewService(users userRepo.UserRepository, sessions sessionRepo.Store, google IDTokenVerifier, opts Options) *Service {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = utils.AuthCacheTTL
	}
	if opts.StateTTL <= 0 {
		opts.StateTTL = 10 * time.Minute
	}
	return &Service{Users: users, Sessions: sessions, Google: google, Clock: utils.SystemClock(), Opts: opts}
}

// SignUpInput is the registration form.
type SignUpInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
}

// Session is a signed-in user and their access token.
type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      models.User    `json:"user"`
	Profile   models.Profile `json:"profile"`
}

// Principal is the identity attached to an authenticated request.
type Principal struct {
	UserID string
	Email  string
	Role   models.Role
}

type tokenSession struct {
	UserID   string    `json:"userId"`
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issuedAt"`
}

func sessionKey(userID, token string) string {
	return utils.AuthCachePrefix + userID + ":" + utils.HashToken(token)
}

// NormalizePhone drops spaces, dashes and parentheses.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

// ProfileOf projects a user for display.
func ProfileOf(u models.User) models.Profile {
	return models.Profile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Initials:    utils.Initials(u.Name),
	}
}

func validateSignUp(in *SignUpInput) (models.Role, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = NormalizePhone(in.Phone)

	switch {
	case in.Email == "":
		return "", &ValidationError{Field: "email", Message: "Email is required"}
	case in.Password == "":
		return "", &ValidationError{Field: "password", Message: "Password is required"}
	case in.Name == "":
		return "", &ValidationError{Field: "name", Message: "Full name is required"}
	case in.Password != in.ConfirmPassword:
		return "", &ValidationError{Field: "confirmPassword", Message: "Passwords do not match"}
	case len(in.Password) < MinPasswordLength:
		return "", &ValidationError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)}
	}
	role, err := models.ParseRole(in.Role)
	if err != nil {
		return "", &ValidationError{Field: "role", Message: "Please choose patient or provider"}
	}
	return role, nil
}

// SignUp registers a password account and signs it in.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*Session, error) {
	role, err := validateSignUp(&in)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u := &models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Name:         in.Name,
		PhoneNumber:  in.Phone,
		Role:         role,
		PasswordHash: string(hash),
		AuthProvider: ProviderPassword,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, userRepo.ErrDuplicateUser):
			return nil, &AuthError{Message: DuplicateUserMessage, Conflict: true}
		case errors.Is(err, userRepo.ErrDuplicatePhone):
			return nil, &AuthError{Message: DuplicatePhoneMessage, Conflict: true}
		}
		utils.GetLogger().Error("SignUp: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	utils.GetLogger().Info("user registered", zap.String("userID", u.ID), zap.String("role", string(role)))
	return s.issue(ctx, u)
}

// SignIn checks an email and password.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	return s.checkPassword(ctx, u, err, password)
}

// SignInWithPhone checks a phone number and password.
func (s *Service) SignInWithPhone(ctx context.Context, phone, password string) (*Session, error) {
	phone = NormalizePhone(phone)
	if phone == "" {
		return nil, &ValidationError{Field: "phone", Message: "Phone number is required"}
	}
	u, err := s.Users.GetByPhone(ctx, phone)
	return s.checkPassword(ctx, u, err, password)
}

func (s *Service) checkPassword(ctx context.Context, u *models.User, lookupErr error, password string) (*Session, error) {
	if lookupErr != nil {
		if errors.Is(lookupErr, repository.ErrNotFound) {
			return nil, invalidCredentials()
		}
		utils.GetLogger().Error("sign-in lookup failed", zap.Error(lookupErr))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if u.PasswordHash == "" {
		return nil, invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}
	return s.issue(ctx, u)
}

func (s *Service) issue(ctx context.Context, u *models.User) (*Session, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, string(u.Role), s.Opts.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	now := s.Clock.Now()
	ts := tokenSession{UserID: u.ID, Role: string(u.Role), IssuedAt: now}
	if err := s.Sessions.Set(ctx, sessionKey(u.ID, token), ts, s.Opts.TokenTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &Session{
		Token:     token,
		ExpiresAt: now.Add(s.Opts.TokenTTL),
		User:      *u,
		Profile:   ProfileOf(*u),
	}, nil
}

// Authenticate resolves a bearer token to its principal. Signed-out tokens
// are rejected even before they expire.
func (s *Service) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := utils.ExtractClaims(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	var ts tokenSession
	if err := s.Sessions.Get(ctx, sessionKey(claims.Subject, token), &ts); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			utils.GetLogger().Error("token session lookup failed", zap.Error(err))
		}
		return nil, ErrUnauthorized
	}
	return &Principal{UserID: claims.Subject, Email: claims.Email, Role: models.Role(ts.Role)}, nil
}

// SignOut ends the token's session.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := utils.ExtractClaims(token)
	if err != nil {
		return ErrUnauthorized
	}
	if err := s.Sessions.Delete(ctx, sessionKey(claims.Subject, token)); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	utils.GetLogger().Info("user signed out", zap.String("userID", claims.Subject))
	return nil
}

// Current loads the signed-in user and their profile.
func (s *Service) Current(ctx context.Context, userID string) (*models.User, *models.Profile, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, err
	}
	p := ProfileOf(*u)
	return u, &p, nil
}

// BeginGoogleSignIn returns the Google authorization URL. The chosen role
// travels in the signed state parameter and comes back on the callback.
func (s *Service) BeginGoogleSignIn(role string) (authURL, state string, err error) {
	r, err := models.ParseRole(role)
	if err != nil {
		return "", "", &ValidationError{Field: "type", Message: "Please choose patient or provider"}
	}
	nonce := uuid.New().String()
	state, err = utils.SignState(map[string]string{"role": string(r), "nonce": nonce}, s.Opts.StateTTL)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign state: %w", err)
	}

	q := url.Values{}
	q.Set("client_id", s.Opts.GoogleClientID)
	q.Set("redirect_uri", s.Opts.GoogleRedirectURL)
	q.Set("response_type", "id_token")
	q.Set("scope", "openid email profile")
	q.Set("state", state)
	q.Set("nonce", nonce)
	return s.Opts.GoogleAuthURL + "?" + q.Encode(), state, nil
}

// CompleteGoogleSignIn verifies the echoed state and the ID token, creates
// the account on first sign-in and issues a session. The token must carry
// the state's nonce and a verified email.
func (s *Service) CompleteGoogleSignIn(ctx context.Context, state, idToken string) (*Session, error) {
	fields, err := utils.ParseState(state)
	if err != nil {
		return nil, ErrInvalidState
	}
	role, err := models.ParseRole(fields["role"])
	if err != nil {
		return nil, ErrInvalidState
	}
	if s.Google == nil {
		return nil, &AuthError{Message: "Google sign-in is not configured"}
	}

	id, err := s.Google.Verify(ctx, idToken, s.Opts.GoogleClientID)
	if err != nil {
		utils.GetLogger().Warn("google token rejected", zap.Error(err))
		return nil, &AuthError{Message: "Google sign-in failed"}
	}
	if fields["nonce"] == "" || id.Nonce != fields["nonce"] {
		return nil, ErrInvalidState
	}
	if !id.EmailVerified {
		return nil, &AuthError{Message: UnverifiedEmailMessage}
	}

	u, err := s.Users.GetByEmail(ctx, id.Email)
	switch {
	case err == nil:
		// Password accounts are never taken over by a matching Google email.
		if u.AuthProvider != ProviderGoogle {
			utils.GetLogger().Warn("google sign-in matched a password account", zap.String("userID", u.ID))
			return nil, &AuthError{Message: PasswordAccountMessage, Conflict: true}
		}
		if id.Name != "" && id.Name != u.Name {
			u.Name = id.Name
			if err := s.Users.Update(ctx, u); err != nil {
				utils.GetLogger().Warn("failed to refresh name from google", zap.String("userID", u.ID), zap.Error(err))
			}
		}
	case errors.Is(err, repository.ErrNotFound):
		u = &models.User{
			ID:           uuid.New().String(),
			Email:        id.Email,
			Name:         id.Name,
			Role:         role,
			AuthProvider: ProviderGoogle,
		}
		if err := s.Users.Create(ctx, u); err != nil {
			if errors.Is(err, userRepo.ErrDuplicateUser) {
				return nil, &AuthError{Message: DuplicateUserMessage, Conflict: true}
			}
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		utils.GetLogger().Info("user registered via google", zap.String("userID", u.ID), zap.String("role", string(role)))
	default:
		return nil, err
	}
	return s.issue(ctx, u)
}
