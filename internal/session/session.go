// Package session implements the signed cookie session carrying the logged-in
// user's identity between requests.
//
// The session payload is an HS256-signed JWT held in an HttpOnly cookie, so
// the client can neither read a forged user id into it nor tamper with the
// one it carries. There is no server-side session store; the signature is the
// whole integrity story.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

var (
	// ErrNoSession indicates the request carries no session cookie.
	ErrNoSession = errors.New("no session")
	// ErrInvalidSession indicates the cookie exists but fails verification.
	ErrInvalidSession = errors.New("invalid session")
)

// Manager issues and verifies session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager returns a Manager signing with secret; tokens expire after ttl.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed session token identifying userID.
func (m *Manager) Issue(userID uint) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"iss": "quill",                                // Issuer
		"exp": now.Add(m.ttl).Unix(),                  // Expiration
		"iat": now.Unix(),                             // Issued at
		"nbf": now.Unix(),                             // Not before
		"jti": uuid.New().String(),                    // Token ID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies tokenString and returns the user id it identifies.
func (m *Manager) Parse(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrNoSession
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidSession
	}

	subClaim, ok := claims["sub"]
	if !ok {
		return 0, ErrInvalidSession
	}
	subStr, ok := subClaim.(string)
	if !ok {
		return 0, ErrInvalidSession
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrInvalidSession
	}

	return uint(userID), nil
}

// Establish replaces any prior session cookie with a fresh one identifying
// userID. Overwriting rather than appending is what prevents session
// fixation: whatever cookie the client held before login is discarded.
func (m *Manager) Establish(c *fiber.Ctx, userID uint) error {
	token, err := m.Issue(userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie unconditionally.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// FromRequest returns the user id carried by the request's session cookie.
func (m *Manager) FromRequest(c *fiber.Ctx) (uint, error) {
	return m.Parse(c.Cookies(CookieName))
}
