package middleware

import (
	"context"

	"quill/internal/models"
	"quill/internal/session"

	"github.com/gofiber/fiber/v2"
)

// UserLookup resolves a session-carried user id to a user row.
type UserLookup func(ctx context.Context, id uint) (*models.User, error)

// LoadCurrentUser resolves the session cookie to a user before every request.
//
// Any failure (missing cookie, bad signature, expired token, deleted user)
// degrades the request to anonymous rather than erroring; guards downstream
// decide whether anonymity is acceptable. On success the user is stored in
// c.Locals("currentUser") and the id in c.Locals("userID").
func LoadCurrentUser(sessions *session.Manager, lookup UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := sessions.FromRequest(c)
		if err != nil {
			return c.Next()
		}

		user, err := lookup(c.UserContext(), userID)
		if err != nil || user == nil {
			// Stale cookie pointing at a user that no longer resolves.
			return c.Next()
		}

		c.Locals("currentUser", user)
		c.Locals("userID", user.ID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, user.ID))
		return c.Next()
	}
}

// RequireLogin is a guard for routes that mutate posts. An anonymous request
// is redirected to the login form, mirroring how the rest of the app treats
// a missing session as a recoverable condition rather than an error status.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Redirect("/auth/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// CurrentUser returns the user loaded by LoadCurrentUser, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}
