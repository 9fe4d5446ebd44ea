package server

import (
	"errors"

	"cityfeed/internal/models"
	"cityfeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		label := "ID"
		if param == "replyId" {
			label = "reply ID"
		}
		_ = models.RespondWithError(c,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseFeedFilter reads the shared feed query parameters. Page and PageSize
// stay zero when the caller sends neither, which the feed service treats as
// "no pagination".
func parseFeedFilter(c *fiber.Ctx) service.FeedFilter {
	// Invalid optional filters are no constraint; a negative author id
	// must not wrap into a real uint.
	author := c.QueryInt("author", 0)
	if author < 1 {
		author = 0
	}
	return service.FeedFilter{
		PostType: c.Query("postType"),
		AuthorID: uint(author),
		City:     c.Query("city"),
		SortBy:   c.Query("sortBy"),
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 0),
		PageSize: c.QueryInt("limit", 0),
	}
}
