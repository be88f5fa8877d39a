package api

import (
	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie the route gate looks for. The gate checks
// presence only; it never verifies the credential, so it is a pre-filter
// and not authorization.
const SessionCookieName = "session"

// GateDecision is the outcome of the route gate for a page request.
type GateDecision int

const (
	// GateAllow lets the request through to the page.
	GateAllow GateDecision = iota
	// GateRedirectHome sends an already-signed-in visitor away from the
	// login and signup pages.
	GateRedirectHome
	// GateRedirectLogin sends an anonymous visitor to the login page.
	GateRedirectLogin
)

// DecideGate is the pure gate rule: public pages bounce signed-in visitors
// home, everything else bounces anonymous visitors to login.
func DecideGate(path string, hasSession bool) GateDecision {
	isPublic := path == "/login" || path == "/signup"

	if isPublic && hasSession {
		return GateRedirectHome
	}
	if !isPublic && !hasSession {
		return GateRedirectLogin
	}
	return GateAllow
}

// RouteGate applies DecideGate to the page routes it is mounted on.
func RouteGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		hasSession := c.Cookies(SessionCookieName) != ""

		switch DecideGate(c.Path(), hasSession) {
		case GateRedirectHome:
			return c.Redirect("/", fiber.StatusFound)
		case GateRedirectLogin:
			return c.Redirect("/login", fiber.StatusFound)
		default:
			return c.Next()
		}
	}
}
