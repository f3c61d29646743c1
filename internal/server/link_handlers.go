package server

import (
	"cloudzz/internal/models"
	"cloudzz/internal/repository"
	"cloudzz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetLinks handles GET /api/links
func (s *Server) GetLinks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	links, err := s.linkService.List(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(links)
}

// CreateLink handles POST /api/links
func (s *Server) CreateLink(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string          `json:"title"`
		URL      string          `json:"url"`
		Platform models.Platform `json:"platform"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	link, err := s.linkService.Create(c.Context(), service.CreateLinkInput{
		OwnerID:  userID,
		Title:    req.Title,
		URL:      req.URL,
		Platform: req.Platform,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.userService.InvalidatePublicProfile(c.Context(), userID)
	return c.JSON(link)
}

// UpdateLink handles PATCH /api/links/:id
func (s *Server) UpdateLink(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	linkID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string          `json:"title"`
		URL      *string          `json:"url"`
		Position *int             `json:"order"`
		Platform *models.Platform `json:"platform"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	link, err := s.linkService.Update(c.Context(), userID, linkID, service.UpdateLinkInput{
		Title:    req.Title,
		URL:      req.URL,
		Position: req.Position,
		Platform: req.Platform,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.userService.InvalidatePublicProfile(c.Context(), userID)
	return c.JSON(link)
}

// DeleteLink handles DELETE /api/links/:id
func (s *Server) DeleteLink(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	linkID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.linkService.Delete(c.Context(), userID, linkID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	s.userService.InvalidatePublicProfile(c.Context(), userID)
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderLinks handles PATCH /api/links/reorder. A malformed batch is a 422;
// a batch touching somebody else's link is a 403 and nothing is written.
func (s *Server) ReorderLinks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var orders []repository.LinkOrder
	if err := c.BodyParser(&orders); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}
	for _, o := range orders {
		if o.ID == 0 {
			return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
				models.NewValidationError("Each entry needs a link id"))
		}
	}

	if err := s.linkService.Reorder(c.Context(), userID, orders); err != nil {
		status := mapServiceError(err)
		if status == fiber.StatusBadRequest {
			status = fiber.StatusUnprocessableEntity
		}
		return models.RespondWithError(c, status, err)
	}

	s.userService.InvalidatePublicProfile(c.Context(), userID)
	return c.JSON(fiber.Map{
		"success": true,
	})
}
