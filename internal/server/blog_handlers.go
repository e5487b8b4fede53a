package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /. Shows all posts, most recent first, with the author's
// username joined in.
func (s *Server) Index(c *fiber.Ctx) error {
	posts, err := s.blogService.ListPosts(c.UserContext())
	if err != nil {
		return err
	}
	return s.render(c, "blog/index", fiber.Map{
		"Title": "Posts",
		"Posts": posts,
	})
}

// CreateForm handles GET /create
func (s *Server) CreateForm(c *fiber.Ctx) error {
	return s.render(c, "blog/create", fiber.Map{"Title": "New Post"})
}

// CreatePost handles POST /create. An empty title re-renders the form with
// the validation message and the submitted body preserved.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	title := c.FormValue("title")
	body := c.FormValue("body")

	_, err := s.blogService.CreatePost(c.UserContext(), service.CreatePostInput{
		Requester: requesterID(c),
		Title:     title,
		Body:      body,
	})
	if err != nil {
		if models.ErrorCode(err) == models.CodeValidation {
			return s.render(c, "blog/create", fiber.Map{
				"Title": "New Post",
				"Error": models.ErrorMessage(err),
				"Post":  &models.Post{Title: title, Body: body},
			})
		}
		return err
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// UpdateForm handles GET /:id/update. Resolving the post enforces both
// existence (404) and ownership (403) before the form is shown.
func (s *Server) UpdateForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	post, err := s.blogService.GetPost(c.UserContext(), id, requesterID(c), true)
	if err != nil {
		return err
	}

	return s.render(c, "blog/update", fiber.Map{
		"Title": "Edit \"" + post.Title + "\"",
		"Post":  post,
	})
}

// UpdatePost handles POST /:id/update.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	title := c.FormValue("title")
	body := c.FormValue("body")

	_, err = s.blogService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		Requester: requesterID(c),
		PostID:    id,
		Title:     title,
		Body:      body,
	})
	if err != nil {
		if models.ErrorCode(err) == models.CodeValidation {
			return s.render(c, "blog/update", fiber.Map{
				"Title": "Edit post",
				"Error": models.ErrorMessage(err),
				"Post":  &models.Post{ID: id, Title: title, Body: body},
			})
		}
		return err
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// DeletePost handles POST /:id/delete. There is no confirmation page; the
// delete button lives on the edit form.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := s.blogService.DeletePost(c.UserContext(), id, requesterID(c)); err != nil {
		return err
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}
