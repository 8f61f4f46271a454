package navigation

import (
	"context"
	"testing"
	"time"

	sessionRepo "medibook/database/repository/session"
	"medibook/models"

	"github.com/stretchr/testify/require"
)

func TestTabFromPath(t *testing.T) {
	cases := map[string]models.Tab{
		"/":                  models.TabHome,
		"/patient/home":      models.TabHome,
		"/search":            models.TabSearch,
		"/patient/bookings":  models.TabBooking,
		"/provider/messages": models.TabMessage,
		"/patient/profile":   models.TabProfile,
		"/settings":          models.TabHome,
		"/login-selection":   models.TabHome,
	}
	for path, want := range cases {
		require.Equal(t, want, TabFromPath(path), path)
	}
}

func TestGuardRedirectsAnonymous(t *testing.T) {
	for _, tab := range []models.Tab{models.TabBooking, models.TabMessage, models.TabProfile} {
		route := Resolve(tab, Actor{})
		require.Equal(t, LoginSelectionPath, route.Path)
		require.True(t, route.Redirected)
	}
}

func TestGuardRoutesAuthenticated(t *testing.T) {
	want := map[models.Tab]string{
		models.TabBooking: "/patient/bookings",
		models.TabMessage: "/patient/messages",
		models.TabProfile: "/patient/profile",
	}
	for tab, path := range want {
		route := Resolve(tab, Actor{Authenticated: true, Role: models.RolePatient})
		require.Equal(t, path, route.Path)
		require.False(t, route.Redirected)
	}
	require.Equal(t, "/provider/bookings",
		Resolve(models.TabBooking, Actor{Authenticated: true, Role: models.RoleProvider}).Path)
}

func TestPublicTabsForAnonymous(t *testing.T) {
	require.Equal(t, "/", Resolve(models.TabHome, Actor{}).Path)
	require.Equal(t, "/search", Resolve(models.TabSearch, Actor{}).Path)
}

func TestControllerSelectThenSync(t *testing.T) {
	c := NewController()
	route := c.Select(models.TabMessage, Actor{})
	require.Equal(t, models.TabMessage, c.Active)
	require.Equal(t, LoginSelectionPath, route.Path)

	// The router lands on the login selection screen and the bar follows it.
	require.Equal(t, models.TabHome, c.Sync(route.Path))
	require.Equal(t, models.TabHome, c.Active)
}

func TestIndicators(t *testing.T) {
	c := NewController()
	c.Select(models.TabSearch, Actor{})
	ind := c.Indicators(Actor{})
	require.Len(t, ind, len(models.Tabs))
	for _, i := range ind {
		require.Equal(t, i.Tab == models.TabSearch, i.Active)
		require.Equal(t, RequiresAuth(i.Tab), i.Locked)
	}
}

func TestServiceKeepsStatePerSession(t *testing.T) {
	svc := NewService(sessionRepo.NewMemoryStore(nil), time.Minute)
	ctx := context.Background()
	actor := Actor{Authenticated: true, Role: models.RolePatient}

	_, err := svc.Select(ctx, "s1", models.TabBooking, actor)
	require.NoError(t, err)

	st, err := svc.Current(ctx, "s1", actor)
	require.NoError(t, err)
	require.Equal(t, models.TabBooking, st.Active)
	require.Equal(t, "/patient/bookings", st.Location)

	other, err := svc.Current(ctx, "s2", actor)
	require.NoError(t, err)
	require.Equal(t, models.TabHome, other.Active)

	st, err = svc.Sync(ctx, "s1", "/patient/profile", actor)
	require.NoError(t, err)
	require.Equal(t, models.TabProfile, st.Active)
}
