package server

import (
	"path/filepath"

	"myboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadPhoto handles POST /photo. The file is written under the upload
// directory keyed by its client-supplied name, and the public path is staged
// in the uploader's session until the next /savepost consumes it. Uploads
// with the same filename overwrite each other.
func (s *Server) UploadPhoto(c *fiber.Ctx) error {
	ident := s.identity(c)
	if ident == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("login required"))
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("picture file is required"))
	}

	// filepath.Base strips any path components smuggled into the filename.
	name := filepath.Base(file.Filename)
	if err := c.SaveFile(file, filepath.Join(s.config.UploadDir, name)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	publicPath := "/image/" + name
	if err := s.sessions.StageImage(c.Context(), s.sessionToken(c), publicPath); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"path": publicPath,
	})
}
