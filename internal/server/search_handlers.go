package server

import (
	"academy/internal/featureflags"
	"academy/internal/models"
	"academy/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SearchForum handles GET /api/forum/search
func (s *Server) SearchForum(c *fiber.Ctx) error {
	results, err := s.searchService.Search(c.Context(), service.SearchInput{
		Query: c.Query("q"),
		Type:  c.Query("type"),
		Limit: c.QueryInt("limit", 0),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	// Snippets can be rolled out gradually; with the flag off the client
	// falls back to rendering titles only.
	viewerID, _ := s.optionalUserID(c)
	if !s.featureFlags.Enabled(featureflags.FlagSearchSnippets, viewerID) {
		for i := range results.Topics {
			results.Topics[i].Snippet = ""
		}
		for i := range results.Posts {
			results.Posts[i].Snippet = ""
		}
	}

	return c.JSON(results)
}
