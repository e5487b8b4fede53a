package server

import (
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RegisterForm handles GET /auth/register
func (s *Server) RegisterForm(c *fiber.Ctx) error {
	return s.render(c, "auth/register", fiber.Map{"Title": "Register"})
}

// Register handles POST /auth/register. Validation and duplicate-username
// failures re-render the form with the message; the request still succeeds
// at the HTTP level.
func (s *Server) Register(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if err := s.authService.Register(c.UserContext(), username, password); err != nil {
		switch models.ErrorCode(err) {
		case models.CodeValidation, models.CodeConflict:
			return s.render(c, "auth/register", fiber.Map{
				"Title":    "Register",
				"Error":    models.ErrorMessage(err),
				"Username": username,
			})
		default:
			return err
		}
	}

	return c.Redirect("/auth/login", fiber.StatusSeeOther)
}

// LoginForm handles GET /auth/login
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return s.render(c, "auth/login", fiber.Map{"Title": "Log In"})
}

// Login handles POST /auth/login. On success a fresh session cookie is
// written, replacing whatever the client held before.
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.authService.Authenticate(c.UserContext(), username, password)
	if err != nil {
		if models.ErrorCode(err) == models.CodeValidation {
			return s.render(c, "auth/login", fiber.Map{
				"Title":    "Log In",
				"Error":    models.ErrorMessage(err),
				"Username": username,
			})
		}
		return err
	}

	if err := s.sessions.Establish(c, user.ID); err != nil {
		return models.NewInternalError(err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout handles GET /auth/logout. Clears the session unconditionally.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.sessions.Clear(c)
	return c.Redirect("/", fiber.StatusFound)
}
