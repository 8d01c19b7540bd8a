// Package server contains the HTTP handlers for the board's routes.
package server

import (
	"errors"

	"myboard/internal/models"
	"myboard/internal/observability"
	"myboard/internal/service"
	"myboard/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /
func (s *Server) Index(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"User": s.identity(c),
	})
}

// LoginPage handles GET /login. An already-authenticated visitor is sent back
// to the index with their identity; everyone else gets the login form.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	if ident := s.identity(c); ident != nil {
		return c.Render("index", fiber.Map{
			"User": ident,
		})
	}
	return c.Render("login", fiber.Map{})
}

// Login handles POST /login. On success a session is started and its signed
// token is set as a cookie. A failed login renders the same unauthenticated
// index whether the user id was unknown or the password was wrong; the two
// cases are only distinguished in server-side logs and metrics.
func (s *Server) Login(c *fiber.Ctx) error {
	userID := c.FormValue("userid")
	password := c.FormValue("userpw")

	account, err := s.authService.Authenticate(c.Context(), userID, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownUser):
			observability.LoginFailures.WithLabelValues("unknown_user").Inc()
		case errors.Is(err, service.ErrBadPassword):
			observability.LoginFailures.WithLabelValues("bad_password").Inc()
		default:
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		return c.Render("index", fiber.Map{})
	}

	ident := &session.Identity{
		UserID: account.UserID,
		Fields: map[string]string{
			"usergroup": account.Group,
			"email":     account.Email,
		},
	}
	token, err := s.sessions.Start(c.Context(), ident)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	s.setSessionCookie(c, token)
	observability.SessionsStarted.Inc()

	return c.Render("index", fiber.Map{
		"User": ident,
	})
}

// Logout handles GET /logout. The session state is destroyed server-side, so
// the token is dead even if the cookie lingers.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token := s.sessionToken(c); token != "" {
		if err := s.sessions.End(c.Context(), token); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}
	s.clearSessionCookie(c)

	return c.Render("index", fiber.Map{})
}

// SignupPage handles GET /signup
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{})
}

// Signup handles POST /signup. A duplicate user id is rejected; signing up
// does not log the new account in.
func (s *Server) Signup(c *fiber.Ctx) error {
	_, err := s.authService.Signup(c.Context(),
		c.FormValue("userid"),
		c.FormValue("userpw"),
		c.FormValue("usergroup"),
		c.FormValue("email"),
	)
	if err != nil {
		return models.RespondWithError(c, errorStatus(err), err)
	}

	return c.Redirect("/", fiber.StatusFound)
}
