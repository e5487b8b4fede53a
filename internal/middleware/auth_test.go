package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quill/internal/models"
	"quill/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(t *testing.T, lookup UserLookup) (*fiber.App, *session.Manager) {
	t.Helper()
	sessions := session.NewManager("test-secret", time.Hour)

	app := fiber.New()
	app.Use(LoadCurrentUser(sessions, lookup))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if user := CurrentUser(c); user != nil {
			return c.SendString(user.Username)
		}
		return c.SendString("anonymous")
	})
	app.Get("/guarded", RequireLogin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, sessions
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestLoadCurrentUser(t *testing.T) {
	alice := &models.User{ID: 7, Username: "alice"}
	lookup := func(ctx context.Context, id uint) (*models.User, error) {
		if id == alice.ID {
			return alice, nil
		}
		return nil, models.NewNotFoundError("User", id)
	}
	app, sessions := newAuthTestApp(t, lookup)

	t.Run("valid cookie resolves the user", func(t *testing.T) {
		token, err := sessions.Issue(alice.ID)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "alice", readBody(t, resp))
	})

	t.Run("no cookie is anonymous", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
		require.NoError(t, err)
		assert.Equal(t, "anonymous", readBody(t, resp))
	})

	t.Run("garbage cookie is anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "not-a-token"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "anonymous", readBody(t, resp))
	})

	t.Run("cookie for a deleted user is anonymous", func(t *testing.T) {
		token, err := sessions.Issue(9999)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "anonymous", readBody(t, resp))
	})
}

func TestRequireLogin(t *testing.T) {
	alice := &models.User{ID: 7, Username: "alice"}
	lookup := func(ctx context.Context, id uint) (*models.User, error) {
		if id == alice.ID {
			return alice, nil
		}
		return nil, fmt.Errorf("no such user %d", id)
	}
	app, sessions := newAuthTestApp(t, lookup)

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
	})

	t.Run("logged in passes through", func(t *testing.T) {
		token, err := sessions.Issue(alice.ID)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
