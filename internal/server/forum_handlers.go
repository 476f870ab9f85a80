package server

import (
	"academy/internal/featureflags"
	"academy/internal/models"
	"academy/internal/repository"
	"academy/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/forum/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.topicService.ListCategories(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"categories": categories,
		"success":    true,
	})
}

// CreateCategory handles POST /api/admin/forum/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		SortOrder   int    `json:"sort_order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category := &models.ForumCategory{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	if err := s.topicService.CreateCategory(c.Context(), currentUserID(c), category); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"category": category,
		"success":  true,
	})
}

// GetTopics handles GET /api/forum/topics
func (s *Server) GetTopics(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	filter := repository.TopicListFilter{
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if categoryID := c.QueryInt("category", 0); categoryID > 0 {
		id := uint(categoryID)
		filter.CategoryID = &id
	}

	viewerID, _ := s.optionalUserID(c)
	topics, err := s.topicService.ListTopics(c.Context(), viewerID, filter)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"topics":  topics,
		"success": true,
	})
}

// GetTopic handles GET /api/forum/topics/:slug
func (s *Server) GetTopic(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid topic slug"))
	}

	viewerID, _ := s.optionalUserID(c)
	topic, err := s.topicService.GetTopic(c.Context(), viewerID, slug)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"topic":   topic,
		"success": true,
	})
}

// CreateTopic handles POST /api/forum/topics
func (s *Server) CreateTopic(c *fiber.Ctx) error {
	var req struct {
		CategoryID uint   `json:"category_id"`
		Title      string `json:"title"`
		Content    string `json:"content"`
		IsQuestion bool   `json:"is_question"`
		IsWiki     bool   `json:"is_wiki"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	if req.IsWiki && !s.featureFlags.Enabled(featureflags.FlagWikiTopics, userID) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Wiki topics are currently disabled"))
	}

	topic, err := s.topicService.CreateTopic(c.Context(), service.CreateTopicInput{
		AuthorID:   userID,
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
		IsQuestion: req.IsQuestion,
		IsWiki:     req.IsWiki,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"topic":   topic,
		"success": true,
	})
}

// UpdateTopic handles PUT /api/forum/topics/:id/wiki. The service decides who
// may edit: the author, a moderator, or any veteran on wiki topics.
func (s *Server) UpdateTopic(c *fiber.Ctx) error {
	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	topic, err := s.topicService.UpdateTopic(c.Context(), service.UpdateTopicInput{
		EditorID: currentUserID(c),
		TopicID:  topicID,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"topic":   topic,
		"success": true,
	})
}

// ModerateTopic returns a handler toggling one moderation flag on a topic.
// The flag defaults to true; send {"value": false} to undo.
func (s *Server) ModerateTopic(flag string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		topicID, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}

		req := struct {
			Value *bool `json:"value"`
		}{}
		// Body is optional for moderation toggles.
		_ = c.BodyParser(&req)
		value := true
		if req.Value != nil {
			value = *req.Value
		}

		if err := s.topicService.Moderate(c.Context(), currentUserID(c), topicID, flag, value); err != nil {
			return models.RespondWithAppError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
		})
	}
}

// GetPosts handles GET /api/forum/topics/:id/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	viewerID, _ := s.optionalUserID(c)
	posts, err := s.topicService.ListPosts(c.Context(), viewerID, topicID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":   posts,
		"success": true,
	})
}

// CreatePost handles POST /api/forum/topics/:id/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	topicID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.topicService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: currentUserID(c),
		TopicID:  topicID,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"post":    post,
		"success": true,
	})
}

// MarkSolution handles POST /api/forum/posts/:id/solution
func (s *Server) MarkSolution(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	if err := s.topicService.MarkSolution(c.Context(), currentUserID(c), post.TopicID, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HidePost handles POST /api/forum/posts/:id/hide
func (s *Server) HidePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req := struct {
		Hidden *bool `json:"hidden"`
	}{}
	_ = c.BodyParser(&req)
	hidden := true
	if req.Hidden != nil {
		hidden = *req.Hidden
	}

	if err := s.topicService.HidePost(c.Context(), currentUserID(c), postID, hidden); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// GetTopContributors handles GET /api/forum/top-contributors
func (s *Server) GetTopContributors(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	contributors, err := s.topicService.TopContributors(c.Context(), limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"contributors": contributors,
		"success":      true,
	})
}
