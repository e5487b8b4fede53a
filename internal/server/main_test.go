package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"quill/internal/config"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"
	"quill/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server on a fresh in-memory database. prom stays nil
// because fiberprometheus registers collectors in the default registry, which
// panics on the second test that does it.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))

	cfg := &config.Config{
		Env:             "test",
		Port:            "0",
		SessionSecret:   "test-secret",
		SessionTTLHours: 1,
		DBDriver:        "sqlite",
		DBPath:          ":memory:",
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	return &Server{
		config:      cfg,
		db:          db,
		sessions:    session.NewManager(cfg.SessionSecret, cfg.SessionTTL()),
		userRepo:    userRepo,
		postRepo:    postRepo,
		authService: service.NewAuthService(userRepo),
		blogService: service.NewBlogService(postRepo),
	}
}

func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	s := newTestServer(t)
	return s.NewApp(), s
}

// createUser inserts a user with a bcrypt-hashed password and returns it.
func createUser(t *testing.T, s *Server, username, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: username, Password: string(hash)}
	require.NoError(t, s.db.Create(&user).Error)
	return user
}

// loginAs issues a session cookie for the user without going through the
// login form.
func loginAs(t *testing.T, s *Server, userID uint) *http.Cookie {
	t.Helper()
	token, err := s.sessions.Issue(userID)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

func createPost(t *testing.T, s *Server, authorID uint, title, body string) models.Post {
	t.Helper()
	post := models.Post{Title: title, Body: body, AuthorID: authorID}
	require.NoError(t, s.db.Create(&post).Error)
	return post
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// sessionCookie extracts the session cookie from a response, or nil.
func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	return nil
}
