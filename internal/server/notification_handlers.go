package server

import (
	"academy/internal/models"
	"academy/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/forum/notifications. The unread total
// rides along so clients can render the badge without a second request.
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)
	notifications, err := s.notificationService.List(c.Context(), service.ListNotificationsInput{
		UserID:     userID,
		UnreadOnly: c.QueryBool("unread", false),
		Limit:      c.QueryInt("limit", 0),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	unread, err := s.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unreadCount":   unread,
		"success":       true,
	})
}

// GetUnreadCount handles GET /api/forum/notifications/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.notificationService.UnreadCount(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"unread_count": count,
		"success":      true,
	})
}

// MarkNotificationsRead handles PATCH /api/forum/notifications. The body
// carries either a notification_id or mark_all_read=true, never both.
func (s *Server) MarkNotificationsRead(c *fiber.Ctx) error {
	var req struct {
		NotificationID *uint `json:"notification_id"`
		MarkAllRead    bool  `json:"mark_all_read"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.notificationService.MarkRead(c.Context(), service.MarkReadInput{
		UserID:         currentUserID(c),
		NotificationID: req.NotificationID,
		All:            req.MarkAllRead,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Notifications updated",
		"updated": updated,
		"success": true,
	})
}
