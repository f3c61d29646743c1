package server

import (
	"errors"
	"io"
	"net/url"
	"os"

	"cloudzz/internal/models"
	"cloudzz/internal/observability"
	"cloudzz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/upload
func (s *Server) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	uploaded, err := s.mediaService.Upload(c.Context(), service.UploadInput{
		UserID:   userID,
		Filename: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"url": uploaded.URL,
	})
}

// ListUploads handles GET /api/uploads
func (s *Server) ListUploads(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	files, err := s.mediaService.ListUploads(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{
		"images": files,
	})
}

// ServeImage handles GET /api/images/:userId/:filename. The request is
// validated and located before any access decision, so probing with a bad
// path or a missing file never reveals whether auth would have passed.
func (s *Server) ServeImage(c *fiber.Ctx) error {
	ownerID, err := s.parseID(c, "userId")
	if err != nil {
		observability.MediaRequestsTotal.WithLabelValues("invalid").Inc()
		return nil
	}

	filename := c.Params("filename")
	if dec, decErr := url.PathUnescape(filename); decErr == nil {
		filename = dec
	}

	fullPath, contentType, err := s.mediaService.Resolve(ownerID, filename)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.ErrCodeNotFound {
			observability.MediaRequestsTotal.WithLabelValues("not_found").Inc()
		} else {
			observability.MediaRequestsTotal.WithLabelValues("invalid").Inc()
		}
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	requesterID, authenticated := s.optionalUserID(c)
	decision, err := s.mediaService.Authorize(c.Context(), requesterID, authenticated, ownerID, filename)
	observability.MediaRequestsTotal.WithLabelValues(decision).Inc()
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.MediaBytesServed.Add(float64(len(data)))
	c.Set(fiber.HeaderContentType, contentType)
	// Stored names are immutable: a re-upload gets a fresh timestamp prefix.
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.Send(data)
}
