package server

import (
	"myboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FriendList handles GET /friend, showing the accounts the viewer follows.
func (s *Server) FriendList(c *fiber.Ctx) error {
	ident := s.identity(c)
	if ident == nil {
		return c.Render("login", fiber.Map{})
	}

	friends, err := s.friendService.Friends(c.Context(), ident.UserID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Render("friend", fiber.Map{
		"User":    ident,
		"Friends": friends,
	})
}

// AddFriend handles POST /add-friend. The edge is directed: adding someone
// does not add you to their list. Adding yourself, a duplicate, or an id
// with no account behind it all land back on the friend page unchanged.
func (s *Server) AddFriend(c *fiber.Ctx) error {
	ident := s.identity(c)
	if ident == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("login required"))
	}

	err := s.friendService.AddFriend(c.Context(), ident.UserID, c.FormValue("friendId"))
	if err != nil {
		return models.RespondWithError(c, errorStatus(err), err)
	}

	return c.Redirect("/friend", fiber.StatusFound)
}
