package server

import (
	"cloudzz/internal/models"
	"cloudzz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/user
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// UpdateProfile handles PATCH /api/user. Absent fields are left untouched; a
// username collision answers 400 with a message the frontend shows verbatim.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username  *string       `json:"username"`
		Bio       *string       `json:"bio"`
		Theme     *models.Theme `json:"theme"`
		AvatarURL *string       `json:"avatarUrl"`
		BannerURL *string       `json:"bannerUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:    userID,
		Username:  req.Username,
		Bio:       req.Bio,
		Theme:     req.Theme,
		AvatarURL: req.AvatarURL,
		BannerURL: req.BannerURL,
	})
	if err != nil {
		status := mapServiceError(err)
		// The settings form expects the uniqueness refusal as a plain 400.
		if status == fiber.StatusConflict {
			status = fiber.StatusBadRequest
		}
		return models.RespondWithError(c, status, err)
	}

	return c.JSON(user)
}
