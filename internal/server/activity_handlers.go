package server

import (
	"academy/internal/models"
	"academy/internal/service"

	"github.com/gofiber/fiber/v2"
)

// TrackActivity handles POST /api/activity. Tracking is fire-and-forget for
// the client; anonymous callers are accepted and dropped in the service, but
// validation failures still surface as 400 so integration bugs are visible.
func (s *Server) TrackActivity(c *fiber.Ctx) error {
	var req struct {
		ActivityType string         `json:"activity_type"`
		FeatureArea  string         `json:"feature_area"`
		ItemID       string         `json:"item_id"`
		Metadata     models.JSONMap `json:"metadata"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	if userID == 0 {
		userID, _ = s.optionalUserID(c)
	}

	if err := s.activityService.Track(c.Context(), service.TrackInput{
		UserID:       userID,
		ActivityType: req.ActivityType,
		FeatureArea:  req.FeatureArea,
		ItemID:       req.ItemID,
		Metadata:     req.Metadata,
	}); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
	})
}

// GetLastActivity handles GET /api/activity/last
func (s *Server) GetLastActivity(c *fiber.Ctx) error {
	event, err := s.activityService.LastActivity(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"activity": event,
		"success":  true,
	})
}

// GetFeatureActivity handles GET /api/activity/:area
func (s *Server) GetFeatureActivity(c *fiber.Ctx) error {
	events, err := s.activityService.FeatureActivity(
		c.Context(), currentUserID(c), c.Params("area"), c.QueryInt("limit", 0))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"activities": events,
		"success":    true,
	})
}

// GetMyActivity handles GET /api/users/me/activity
func (s *Server) GetMyActivity(c *fiber.Ctx) error {
	events, err := s.activityService.Recent(c.Context(), currentUserID(c), c.QueryInt("limit", 0))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"activities": events,
		"success":    true,
	})
}

// GetMyStats handles GET /api/users/me/stats
func (s *Server) GetMyStats(c *fiber.Ctx) error {
	stats, err := s.activityService.Stats(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"stats":   stats,
		"success": true,
	})
}
