package server

import (
	"io"

	"cityfeed/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/uploads/image. The binary is forwarded to the
// remote image host; the response carries the hosted URL for use in a
// subsequent post creation.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("An image file is required"))
	}

	f, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	url, uploadErr := s.mediaService.Upload(c.Context(), file.Filename,
		file.Header.Get("Content-Type"), data)
	if uploadErr != nil {
		return models.RespondWithError(c, uploadErr)
	}

	return models.RespondWithData(c, fiber.StatusCreated, "Image uploaded", fiber.Map{
		"url": url,
	})
}
