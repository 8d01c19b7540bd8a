package server

import (
	"myboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PostList handles GET /postlist. Unauthenticated visitors are shown the
// login form instead of the board. The feed contains the viewer's own posts
// plus posts written by accounts on their friends list.
func (s *Server) PostList(c *fiber.Ctx) error {
	ident := s.identity(c)
	if ident == nil {
		return c.Render("login", fiber.Map{})
	}

	posts, err := s.feedService.VisiblePosts(c.Context(), ident.UserID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	writers, err := s.feedService.VisibleWriters(c.Context(), ident.UserID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Render("postlist", fiber.Map{
		"User":      ident,
		"Posts":     posts,
		"FriendIDs": writers,
	})
}

// ComposePage handles GET /entermongo, the new-post form.
func (s *Server) ComposePage(c *fiber.Ctx) error {
	ident := s.identity(c)
	if ident == nil {
		return c.Render("login", fiber.Map{})
	}
	return c.Render("enter", fiber.Map{
		"User": ident,
	})
}

// ShowPost handles GET /content/:id
func (s *Server) ShowPost(c *fiber.Ctx) error {
	ident := s.identity(c)
	if ident == nil {
		return c.Render("login", fiber.Map{})
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, errorStatus(err), err)
	}

	return c.Render("content", fiber.Map{
		"User": ident,
		"Post": post,
	})
}

// EditPage handles GET /edit/:id. The edit form is only served to the post's
// writer; anyone else gets a 403 even if the post would be visible in their
// feed.
func (s *Server) EditPage(c *fiber.Ctx) error {
	ident := s.identity(c)
	if ident == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("login required"))
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, errorStatus(err), err)
	}
	if post.Writer != ident.UserID {
		appErr := models.NewForbiddenError("only the writer may edit a post")
		return models.RespondWithError(c, fiber.StatusForbidden, appErr)
	}

	return c.Render("edit", fiber.Map{
		"User": ident,
		"Post": post,
	})
}

// EditPost handles POST /edit. Ownership is re-checked atomically at update
// time, so a post deleted or never owned between page load and submit cannot
// be overwritten.
func (s *Server) EditPost(c *fiber.Ctx) error {
	ident := s.identity(c)
	if ident == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("login required"))
	}

	id, err := s.parseFormID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	err = s.postService.Edit(c.Context(), ident.UserID, id,
		c.FormValue("title"), c.FormValue("content"))
	if err != nil {
		return models.RespondWithError(c, errorStatus(err), err)
	}

	return c.Redirect("/postlist", fiber.StatusFound)
}

// SavePost handles POST /savepost. If an image was staged by an earlier
// /photo upload in this session it is attached to the post and the staged
// path is consumed, so a second post without a new upload comes out bare.
func (s *Server) SavePost(c *fiber.Ctx) error {
	ident := s.identity(c)
	if ident == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("login required"))
	}

	imagePath, err := s.sessions.TakeStagedImage(c.Context(), s.sessionToken(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	_, err = s.postService.Create(c.Context(), ident.UserID,
		c.FormValue("title"), c.FormValue("content"), imagePath)
	if err != nil {
		return models.RespondWithError(c, errorStatus(err), err)
	}

	return c.Redirect("/postlist", fiber.StatusFound)
}

// DeletePost handles DELETE /delete/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ident := s.identity(c)
	if ident == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("login required"))
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	if err := s.postService.Delete(c.Context(), ident.UserID, id); err != nil {
		return models.RespondWithError(c, errorStatus(err), err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "post deleted",
	})
}
