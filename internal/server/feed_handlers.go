package server

import (
	"cityfeed/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed. All filters are optional query parameters:
// {postType, author, city, sortBy, search, page, limit}.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	currentUserID, _ := s.optionalUserID(c)

	page, err := s.feedService.QueryFeed(c.Context(), parseFeedFilter(c), currentUserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, "", page)
}

// GetHomeFeed handles GET /api/feed/home. The caller's stored city is the
// default scope; an explicit city query parameter overrides it.
func (s *Server) GetHomeFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	page, err := s.feedService.HomeFeed(c.Context(), userID, parseFeedFilter(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, "", page)
}
