package api

import (
	"strings"

	domain "github.com/example/todo-app/domain/user"
	"github.com/example/todo-app/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the key used to store verified claims in the Fiber
// context.
const UserContextKey = "user"

// RequireBearer rejects requests that do not carry a valid bearer token.
// Verification failure and a missing credential are treated identically.
func RequireBearer(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error: "Unauthorized",
			})
		}

		claims, err := authAdapter.VerifyToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error: "Unauthorized",
			})
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// OptionalBearer attaches a verified identity when a bearer token is
// presented. Requests without a credential stay anonymous; a token that is
// presented but fails verification is rejected rather than silently
// downgraded to anonymous.
func OptionalBearer(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}

		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "Unauthorized",
				Details: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		claims, err := authAdapter.VerifyToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error: "Unauthorized",
			})
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, returning "" when the header is absent or malformed.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// identityFromContext returns the verified user id, or "" for anonymous
// requests.
func identityFromContext(c *fiber.Ctx) string {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok || claims == nil {
		return ""
	}
	return claims.UserID
}
