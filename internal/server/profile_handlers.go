package server

import (
	"strings"

	"cloudzz/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPublicProfile handles GET /api/profiles/:username, the payload behind a
// user's public page. No auth; unknown usernames are a plain 404.
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Params("username"))
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}

	profile, err := s.userService.GetPublicProfile(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(profile)
}
