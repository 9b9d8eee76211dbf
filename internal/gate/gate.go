// Package gate decides whether a navigation to a protected view may
// proceed. Pure; the caller performs the redirect.
package gate

// Decision is the outcome of an access check.
type Decision int

const (
	// Allow lets the navigation through.
	Allow Decision = iota
	// RedirectToLogin sends an anonymous session to the login view.
	RedirectToLogin
	// RedirectToFallback sends an authenticated non-admin to the
	// public fallback view.
	RedirectToFallback
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect to login"
	case RedirectToFallback:
		return "redirect to fallback"
	default:
		return "unknown"
	}
}

// Decide evaluates the session flags against the view's admin
// requirement. Evaluated on every guarded navigation.
func Decide(isAuthenticated, isAdmin, requireAdmin bool) Decision {
	if !isAuthenticated {
		return RedirectToLogin
	}
	if requireAdmin && !isAdmin {
		return RedirectToFallback
	}
	return Allow
}
