package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	sessionRepo "medibook/database/repository/session"
	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/utils"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	identity *GoogleIdentity
	err      error
	calls    int
}

func (v *stubVerifier) Verify(context.Context, string, string) (*GoogleIdentity, error) {
	v.calls++
	return v.identity, v.err
}

func newTestService(verifier IDTokenVerifier) *Service {
	utils.SetSigningSecret("test-secret")
	return NewService(userRepo.NewMemoryUserRepo(), sessionRepo.NewMemoryStore(nil), verifier, Options{
		TokenTTL:          time.Hour,
		StateTTL:          time.Minute,
		GoogleClientID:    "client-123",
		GoogleAuthURL:     "https://accounts.example.com/auth",
		GoogleRedirectURL: "http://localhost/api/auth/google/callback",
	})
}

func validSignUp() SignUpInput {
	return SignUpInput{
		Email:           "Jane@Example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            "patient",
		Name:            "Jane Doe",
		Phone:           "+1 (555) 010-2000",
	}
}

func TestSignUpValidation(t *testing.T) {
	svc := newTestService(nil)
	cases := map[string]func(in *SignUpInput){
		"email":           func(in *SignUpInput) { in.Email = " " },
		"password":        func(in *SignUpInput) { in.Password, in.ConfirmPassword = "", "" },
		"name":            func(in *SignUpInput) { in.Name = "" },
		"confirmPassword": func(in *SignUpInput) { in.ConfirmPassword = "other1" },
		"role":            func(in *SignUpInput) { in.Role = "admin" },
	}
	for field, mutate := range cases {
		in := validSignUp()
		mutate(&in)
		_, err := svc.SignUp(context.Background(), in)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, field)
		require.Equal(t, field, ve.Field)
	}

	in := validSignUp()
	in.Password, in.ConfirmPassword = "abc", "abc"
	_, err := svc.SignUp(context.Background(), in)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Password must be at least 6 characters", ve.Message)
}

func TestSignUpThenSignIn(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	sess, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", sess.User.Email)
	require.Equal(t, "JD", sess.Profile.Initials)
	require.Equal(t, models.RolePatient, sess.User.Role)

	_, err = svc.SignUp(ctx, validSignUp())
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, DuplicateUserMessage, ae.Message)

	signedIn, err := svc.SignIn(ctx, "JANE@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, signedIn.User.ID)

	byPhone, err := svc.SignInWithPhone(ctx, "+15550102000", "secret1")
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, byPhone.User.ID)
}

func TestBadCredentialsGetFriendlyMessage(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	_, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	for _, attempt := range []func() error{
		func() error { _, err := svc.SignIn(ctx, "jane@example.com", "wrong12"); return err },
		func() error { _, err := svc.SignIn(ctx, "nobody@example.com", "secret1"); return err },
		func() error { _, err := svc.SignInWithPhone(ctx, "999", "secret1"); return err },
	} {
		err := attempt()
		require.Error(t, err)
		require.Equal(t, InvalidCredentialsMessage, err.Error())
		require.Equal(t, FriendlyCredentialsMessage, FriendlyMessage(err))
	}
	require.Equal(t, "boom", FriendlyMessage(errors.New("boom")))
}

func TestAuthenticateAndSignOut(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	sess, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	p, err := svc.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, p.UserID)
	require.Equal(t, models.RolePatient, p.Role)

	require.NoError(t, svc.SignOut(ctx, sess.Token))
	_, err = svc.Authenticate(ctx, sess.Token)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, ErrUnauthorized)

	u, profile, err := svc.Current(ctx, sess.User.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, profile.ID)
}

func TestGoogleStateCarriesRole(t *testing.T) {
	verifier := &stubVerifier{}
	svc := newTestService(verifier)

	authURL, state, err := svc.BeginGoogleSignIn("Provider")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(authURL, "https://accounts.example.com/auth?"))
	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	require.Equal(t, state, parsed.Query().Get("state"))
	require.Equal(t, "client-123", parsed.Query().Get("client_id"))

	fields, err := utils.ParseState(state)
	require.NoError(t, err)
	verifier.identity = &GoogleIdentity{Email: "doc@example.com", EmailVerified: true, Name: "Dr. Ann Lee", Nonce: fields["nonce"]}

	sess, err := svc.CompleteGoogleSignIn(context.Background(), state, "id-token")
	require.NoError(t, err)
	require.Equal(t, models.RoleProvider, sess.User.Role)
	require.Equal(t, ProviderGoogle, sess.User.AuthProvider)
	require.Equal(t, "AL", sess.Profile.Initials)

	verifier.identity.Name = "Dr. Ann Lee-Park"
	again, err := svc.CompleteGoogleSignIn(context.Background(), state, "id-token")
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, again.User.ID)
	require.Equal(t, "Dr. Ann Lee-Park", again.User.Name)
	_, profile, err := svc.Current(context.Background(), sess.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Dr. Ann Lee-Park", profile.Name)

	_, _, err = svc.BeginGoogleSignIn("admin")
	require.Error(t, err)
}

func TestGoogleRejectsTamperedState(t *testing.T) {
	verifier := &stubVerifier{identity: &GoogleIdentity{Email: "a@b.c"}}
	svc := newTestService(verifier)

	_, err := svc.CompleteGoogleSignIn(context.Background(), "not-a-state", "id-token")
	require.ErrorIs(t, err, ErrInvalidState)

	access, err := utils.GenerateToken("u1", "a@b.c", "patient", time.Minute)
	require.NoError(t, err)
	_, err = svc.CompleteGoogleSignIn(context.Background(), access, "id-token")
	require.ErrorIs(t, err, ErrInvalidState)
	require.Zero(t, verifier.calls)

	_, state, err := svc.BeginGoogleSignIn("patient")
	require.NoError(t, err)
	verifier.identity = &GoogleIdentity{Email: "a@b.c", EmailVerified: true, Nonce: "other"}
	_, err = svc.CompleteGoogleSignIn(context.Background(), state, "id-token")
	require.ErrorIs(t, err, ErrInvalidState)

	verifier.identity = &GoogleIdentity{Email: "a@b.c", EmailVerified: true}
	_, err = svc.CompleteGoogleSignIn(context.Background(), state, "id-token")
	require.ErrorIs(t, err, ErrInvalidState)
}

func googleState(t *testing.T, svc *Service, role string) (state, nonce string) {
	t.Helper()
	_, state, err := svc.BeginGoogleSignIn(role)
	require.NoError(t, err)
	fields, err := utils.ParseState(state)
	require.NoError(t, err)
	return state, fields["nonce"]
}

func TestGoogleRequiresVerifiedEmail(t *testing.T) {
	verifier := &stubVerifier{}
	svc := newTestService(verifier)
	state, nonce := googleState(t, svc, "patient")

	verifier.identity = &GoogleIdentity{Email: "new@example.com", Nonce: nonce}
	_, err := svc.CompleteGoogleSignIn(context.Background(), state, "id-token")
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, UnverifiedEmailMessage, ae.Message)

	_, err = svc.Users.GetByEmail(context.Background(), "new@example.com")
	require.Error(t, err)
}

func TestGoogleDoesNotSignIntoPasswordAccount(t *testing.T) {
	verifier := &stubVerifier{}
	svc := newTestService(verifier)
	ctx := context.Background()
	_, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	state, nonce := googleState(t, svc, "patient")
	verifier.identity = &GoogleIdentity{Email: "jane@example.com", EmailVerified: true, Nonce: nonce}
	sess, err := svc.CompleteGoogleSignIn(ctx, state, "id-token")
	require.Nil(t, sess)
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	require.True(t, ae.Conflict)
	require.Equal(t, PasswordAccountMessage, ae.Message)

	signedIn, err := svc.SignIn(ctx, "jane@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, ProviderPassword, signedIn.User.AuthProvider)
}

func TestSignUpRejectsTakenPhone(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	first, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	second := validSignUp()
	second.Email = "someone@example.com"
	second.Password, second.ConfirmPassword = "other99", "other99"
	second.Phone = "+1 555 010 2000"
	_, err = svc.SignUp(ctx, second)
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	require.True(t, ae.Conflict)
	require.Equal(t, DuplicatePhoneMessage, ae.Message)

	for i := 0; i < 20; i++ {
		sess, err := svc.SignInWithPhone(ctx, "+15550102000", "secret1")
		require.NoError(t, err)
		require.Equal(t, first.User.ID, sess.User.ID)
	}

	noPhone := validSignUp()
	noPhone.Email = "nophone@example.com"
	noPhone.Phone = ""
	_, err = svc.SignUp(ctx, noPhone)
	require.NoError(t, err)
	noPhone.Email = "nophone2@example.com"
	_, err = svc.SignUp(ctx, noPhone)
	require.NoError(t, err)
}

func TestIdentityFromClaims(t *testing.T) {
	claims := jwt.MapClaims{
		"aud":   "client-123",
		"iss":   "https://accounts.google.com",
		"email": "Person@Gmail.com",
		"name":  "Person",
	}
	id, err := identityFromClaims(claims, "client-123")
	require.NoError(t, err)
	require.Equal(t, "person@gmail.com", id.Email)
	require.False(t, id.EmailVerified)

	for _, verified := range []interface{}{true, "true"} {
		claims["email_verified"] = verified
		id, err = identityFromClaims(claims, "client-123")
		require.NoError(t, err)
		require.True(t, id.EmailVerified)
	}
	claims["email_verified"] = "false"
	id, err = identityFromClaims(claims, "client-123")
	require.NoError(t, err)
	require.False(t, id.EmailVerified)

	_, err = identityFromClaims(claims, "other-client")
	require.Error(t, err)

	claims["iss"] = "evil.example.com"
	_, err = identityFromClaims(claims, "client-123")
	require.Error(t, err)
}
