// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for token session keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the fallback lifetime of a token session.
const AuthCacheTTL = 24 * time.Hour

// Session key prefixes.
const (
	OnboardingSessionPrefix = "onboarding:"
	NavigationSessionPrefix = "nav:"
)

// SessionHeader carries the client's screen session id.
const SessionHeader = "X-Session-ID"
