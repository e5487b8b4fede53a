package server

import (
	"errors"

	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// render draws a template with the current user merged into the data, so the
// navigation bar always knows who is logged in.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = middleware.CurrentUser(c)
	}
	return c.Render(name, data)
}

// parseID extracts the :id route parameter as a positive uint. A value that
// is not a positive integer cannot name a post, so it is reported as
// not-found, the same way the original routes refuse non-integer ids.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError("Post", c.Params("id"))
	}
	return uint(id), nil
}

// requesterID returns the id of the logged-in user. RequireLogin guards every
// route that calls this, so a zero return only happens in misconfigured
// tests.
func requesterID(c *fiber.Ctx) uint {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}

// errorHandler maps errors escaping handlers onto HTTP behavior: not-found
// and forbidden render error pages with their status, a missing session
// redirects to login, anything else is a 500. Validation and conflict errors
// never reach here; handlers recover those locally by re-rendering the form.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var appErr *models.AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		switch appErr.Code {
		case models.CodeNotFound:
			status = fiber.StatusNotFound
			message = appErr.Message
		case models.CodeForbidden:
			status = fiber.StatusForbidden
			message = appErr.Message
		case models.CodeAuthRequired:
			return c.Redirect("/auth/login", fiber.StatusFound)
		}
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	}

	if renderErr := c.Status(status).Render("error", fiber.Map{
		"Status":  status,
		"Message": message,
		"User":    middleware.CurrentUser(c),
	}, "layouts/main"); renderErr != nil {
		return c.Status(status).SendString(message)
	}
	return nil
}
