package server

import (
	"academy/internal/models"
	"academy/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddReaction handles POST /api/forum/reactions. A repeat of the same
// (user, target, type) returns 409.
func (s *Server) AddReaction(c *fiber.Ctx) error {
	var req struct {
		PostID       *uint  `json:"post_id"`
		TopicID      *uint  `json:"topic_id"`
		ReactionType string `json:"reaction_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reaction, err := s.reactionService.Add(c.Context(), service.ReactionInput{
		UserID:       currentUserID(c),
		PostID:       req.PostID,
		TopicID:      req.TopicID,
		ReactionType: req.ReactionType,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reaction": reaction,
		"success":  true,
	})
}

// RemoveReaction handles DELETE /api/forum/reactions. Removing a reaction
// that does not exist is a no-op, not an error.
func (s *Server) RemoveReaction(c *fiber.Ctx) error {
	in := service.ReactionInput{
		UserID:       currentUserID(c),
		ReactionType: c.Query("reaction_type"),
	}
	if postID := c.QueryInt("post_id", 0); postID > 0 {
		id := uint(postID)
		in.PostID = &id
	}
	if topicID := c.QueryInt("topic_id", 0); topicID > 0 {
		id := uint(topicID)
		in.TopicID = &id
	}

	summary, err := s.reactionService.Remove(c.Context(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":   "Reaction removed",
		"reactions": summary,
		"success":   true,
	})
}
