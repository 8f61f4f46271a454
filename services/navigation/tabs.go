package navigation

import (
	"strings"

	"medibook/models"
)

// LoginSelectionPath is where guarded tabs send anonymous visitors.
const LoginSelectionPath = "/login-selection"

// pathMatchOrder is the order in which path segments are tried when deriving
// the active tab from a location. Home is the fallback.
var pathMatchOrder = []models.Tab{models.TabSearch, models.TabBooking, models.TabMessage, models.TabProfile}

// TabFromPath derives the active tab from a location by substring match.
func TabFromPath(path string) models.Tab {
	for _, tab := range pathMatchOrder {
		if strings.Contains(path, string(tab)) {
			return tab
		}
	}
	return models.TabHome
}

// RequiresAuth reports whether a tab is only reachable when signed in.
func RequiresAuth(tab models.Tab) bool {
	switch tab {
	case models.TabBooking, models.TabMessage, models.TabProfile:
		return true
	}
	return false
}

var publicPaths = map[models.Tab]string{
	models.TabHome:   "/",
	models.TabSearch: "/search",
}

var authSegments = map[models.Tab]string{
	models.TabHome:    "home",
	models.TabSearch:  "search",
	models.TabBooking: "bookings",
	models.TabMessage: "messages",
	models.TabProfile: "profile",
}

// Actor is who is navigating.
type Actor struct {
	Authenticated bool
	Role          models.Role
}

// Route is the outcome of a tab lookup.
type Route struct {
	Tab        models.Tab `json:"tab"`
	Path       string     `json:"path"`
	Redirected bool       `json:"redirected"`
}

// Resolve maps a tab to a path for actor. Guarded tabs send anonymous actors
// to the login selection screen; everything else goes to the tab's
// authenticated or public path.
func Resolve(tab models.Tab, actor Actor) Route {
	if !actor.Authenticated {
		if RequiresAuth(tab) {
			return Route{Tab: tab, Path: LoginSelectionPath, Redirected: true}
		}
		return Route{Tab: tab, Path: publicPaths[tab]}
	}
	role := actor.Role
	if role == "" {
		role = models.RolePatient
	}
	return Route{Tab: tab, Path: "/" + string(role) + "/" + authSegments[tab]}
}
