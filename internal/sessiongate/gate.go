// Package sessiongate decides, per navigation, whether a requested path must
// redirect based only on token presence and route classification.
package sessiongate

import (
	"strings"
)

// Decision is the access-control outcome for one navigation.
type Decision int

const (
	// Allow lets the navigation proceed
	Allow Decision = iota

	// RedirectLogin sends an unauthenticated user to the login entry point
	RedirectLogin

	// RedirectFeed sends an already authenticated user away from auth pages
	RedirectFeed
)

const (
	LoginPath = "/login"
	FeedPath  = "/feed"
)

// Route classification. The two sets are disjoint; everything else is
// unrestricted.
var (
	protectedPrefixes = []string{"/feed", "/profile", "/settings", "/notifications", "/messages"}
	authPrefixes      = []string{"/login", "/signup", "/register"}
)

// Target returns the redirect path for a decision, or empty for Allow.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectFeed:
		return FeedPath
	default:
		return ""
	}
}

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectFeed:
		return "redirect-feed"
	default:
		return "unknown"
	}
}

// Decide evaluates the gate for one requested path. Pure and stateless; it is
// called before any protected content is produced.
func Decide(path string, hasToken bool) Decision {
	switch {
	case hasPrefix(path, protectedPrefixes) && !hasToken:
		return RedirectLogin
	case hasPrefix(path, authPrefixes) && hasToken:
		return RedirectFeed
	default:
		return Allow
	}
}

// IsStaticAsset reports paths exempt from gate evaluation entirely.
func IsStaticAsset(path string) bool {
	if path == "/favicon.ico" {
		return true
	}
	return hasPrefix(path, []string{"/static/", "/assets/"})
}

func hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
