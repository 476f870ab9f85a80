package server

import "github.com/gofiber/fiber/v2"

// GetFeatureFlags returns the evaluated flag state for the current user.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := currentUserID(c)

	return c.JSON(fiber.Map{
		"evaluated": s.featureFlags.Snapshot(userID),
		"success":   true,
	})
}
