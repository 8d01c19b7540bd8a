package server

import (
	"context"
	"errors"
	"strconv"
	"time"

	"myboard/internal/middleware"
	"myboard/internal/models"
	"myboard/internal/session"

	"github.com/gofiber/fiber/v2"
)

// sessionCookie is the name of the cookie carrying the signed session token.
const sessionCookie = "board_session"

// ResolveSession resolves the session cookie to an identity and stores it in
// Locals for the rest of the request. Requests without a valid session simply
// proceed unauthenticated.
func (s *Server) ResolveSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(sessionCookie)
		if token == "" {
			return c.Next()
		}

		ident, err := s.sessions.Current(c.Context(), token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if ident != nil {
			c.Locals("identity", ident)
			c.Locals("userID", ident.UserID)
			ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, ident.UserID)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

// identity returns the resolved identity for this request, or nil when the
// request is unauthenticated.
func (s *Server) identity(c *fiber.Ctx) *session.Identity {
	if ident, ok := c.Locals("identity").(*session.Identity); ok {
		return ident
	}
	return nil
}

// sessionToken returns the raw session token presented by the client.
func (s *Server) sessionToken(c *fiber.Ctx) string {
	return c.Cookies(sessionCookie)
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(s.config.SessionTTLHours) * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// parseID extracts a route parameter by name as a positive uint.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("invalid post id")
	}
	return uint(id), nil
}

// parseFormID extracts a form field by name as a positive uint.
func (s *Server) parseFormID(c *fiber.Ctx, field string) (uint, error) {
	id, err := strconv.Atoi(c.FormValue(field))
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("invalid post id")
	}
	return uint(id), nil
}

// errorStatus maps an application error to its HTTP status.
func errorStatus(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		case "FORBIDDEN":
			return fiber.StatusForbidden
		}
	}
	return fiber.StatusInternalServerError
}
