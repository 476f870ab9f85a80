package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"academy/internal/middleware"
	"academy/internal/models"
	"academy/internal/repository"
	"academy/internal/trust"
	"academy/internal/validation"

	"github.com/google/uuid"
)

// TopicService manages categories, topics and posts including the
// moderation, wiki and solution flows.
type TopicService struct {
	topicRepo    repository.TopicRepository
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	notifier     *NotificationService
}

// CreateTopicInput is a new discussion thread.
type CreateTopicInput struct {
	AuthorID   uint
	CategoryID uint
	Title      string
	Content    string
	IsQuestion bool
	IsWiki     bool
}

// CreatePostInput is a reply within a topic.
type CreatePostInput struct {
	AuthorID uint
	TopicID  uint
	Content  string
	ParentID *uint
}

// UpdateTopicInput edits title or content.
type UpdateTopicInput struct {
	EditorID uint
	TopicID  uint
	Title    string
	Content  string
}

// NewTopicService wires the forum content logic.
func NewTopicService(
	topicRepo repository.TopicRepository,
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
) *TopicService {
	return &TopicService{
		topicRepo:    topicRepo,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL slug with a short random suffix so
// identical titles never collide.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugCleaner.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 60 {
		slug = slug[:60]
		slug = strings.TrimRight(slug, "-")
	}
	suffix := uuid.NewString()[:8]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}

func (s *TopicService) trustFor(ctx context.Context, userID uint) (*models.User, trust.Level, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	level := trust.Calculate(user.Level)
	// Admin accounts moderate regardless of earned level.
	if user.IsAdmin {
		level = trust.Moderator
	}
	return user, level, nil
}

// ListCategories returns all categories in display order.
func (s *TopicService) ListCategories(ctx context.Context) ([]models.ForumCategory, error) {
	return s.categoryRepo.List(ctx)
}

// CreateCategory adds a category. Admin only.
func (s *TopicService) CreateCategory(ctx context.Context, adminID uint, category *models.ForumCategory) error {
	user, _, err := s.trustFor(ctx, adminID)
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return models.NewForbiddenError("Only admins can manage categories")
	}
	if category.Name == "" {
		return models.NewValidationError("Category name is required")
	}
	if category.Slug == "" {
		category.Slug = strings.Trim(slugCleaner.ReplaceAllString(strings.ToLower(category.Name), "-"), "-")
	}
	return s.categoryRepo.Create(ctx, category)
}

// ListTopics returns a page of topics. Hidden topics are only included for
// moderators.
func (s *TopicService) ListTopics(ctx context.Context, viewerID uint, filter repository.TopicListFilter) ([]models.ForumTopic, error) {
	filter.IncludeHidden = false
	if viewerID != 0 {
		if _, level, err := s.trustFor(ctx, viewerID); err == nil && trust.Can(level, trust.ActionModerate) {
			filter.IncludeHidden = true
		}
	}
	return s.topicRepo.List(ctx, filter)
}

// GetTopic loads one topic and bumps its view counter. The bump is best
// effort; a failed increment never hides the topic.
func (s *TopicService) GetTopic(ctx context.Context, viewerID uint, slug string) (*models.ForumTopic, error) {
	topic, err := s.topicRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if topic.IsHidden {
		if viewerID == 0 {
			return nil, models.NewNotFoundError("Topic", slug)
		}
		_, level, err := s.trustFor(ctx, viewerID)
		if err != nil || !trust.Can(level, trust.ActionModerate) {
			return nil, models.NewNotFoundError("Topic", slug)
		}
	}

	if err := s.topicRepo.IncrementCounter(ctx, topic.ID, "views_count", 1); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to bump topic views",
			slog.Uint64("topic_id", uint64(topic.ID)),
			slog.String("error", err.Error()),
		)
	}
	return topic, nil
}

// CreateTopic starts a new thread.
func (s *TopicService) CreateTopic(ctx context.Context, in CreateTopicInput) (*models.ForumTopic, error) {
	if err := validation.ValidateTopicTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	_, level, err := s.trustFor(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if !trust.Can(level, trust.ActionPost) {
		return nil, models.NewForbiddenError("Trust level too low to post")
	}

	if _, err := s.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	topic := &models.ForumTopic{
		Slug:       Slugify(in.Title),
		Title:      in.Title,
		Content:    in.Content,
		AuthorID:   in.AuthorID,
		CategoryID: in.CategoryID,
		IsQuestion: in.IsQuestion,
		IsWiki:     in.IsWiki,
	}
	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.IncrementTopics(ctx, in.CategoryID, 1); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to bump category topic count",
			slog.Uint64("category_id", uint64(in.CategoryID)),
			slog.String("error", err.Error()),
		)
	}
	return topic, nil
}

// UpdateTopic edits a topic. The author can always edit; on wiki topics any
// Veteran may; moderators may edit anything.
func (s *TopicService) UpdateTopic(ctx context.Context, in UpdateTopicInput) (*models.ForumTopic, error) {
	topic, err := s.topicRepo.GetByID(ctx, in.TopicID)
	if err != nil {
		return nil, err
	}

	_, level, err := s.trustFor(ctx, in.EditorID)
	if err != nil {
		return nil, err
	}

	allowed := topic.AuthorID == in.EditorID ||
		trust.Can(level, trust.ActionModerate) ||
		(topic.IsWiki && trust.Can(level, trust.ActionWikiEdit))
	if !allowed {
		return nil, models.NewForbiddenError("Not allowed to edit this topic")
	}

	if in.Title != "" {
		if err := validation.ValidateTopicTitle(in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		topic.Title = in.Title
	}
	if in.Content != "" {
		if err := validation.ValidatePostContent(in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		topic.Content = in.Content
	}

	if err := s.topicRepo.Update(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// Moderate toggles a moderation flag on a topic. Moderators only.
func (s *TopicService) Moderate(ctx context.Context, moderatorID, topicID uint, flag string, value bool) error {
	_, level, err := s.trustFor(ctx, moderatorID)
	if err != nil {
		return err
	}
	if !trust.Can(level, trust.ActionModerate) {
		return models.NewForbiddenError("Trust level too low to moderate")
	}

	switch flag {
	case "is_pinned", "is_locked", "is_hidden":
	default:
		return models.NewValidationError("Unknown moderation flag")
	}
	return s.topicRepo.SetFlag(ctx, topicID, flag, value)
}

// HidePost hides or restores a single post. Moderators only.
func (s *TopicService) HidePost(ctx context.Context, moderatorID, postID uint, hidden bool) error {
	_, level, err := s.trustFor(ctx, moderatorID)
	if err != nil {
		return err
	}
	if !trust.Can(level, trust.ActionModerate) {
		return models.NewForbiddenError("Trust level too low to moderate")
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.SetHidden(ctx, postID, hidden)
}

// ListPosts returns a page of replies.
func (s *TopicService) ListPosts(ctx context.Context, viewerID, topicID uint, limit, offset int) ([]models.ForumPost, error) {
	includeHidden := false
	if viewerID != 0 {
		if _, level, err := s.trustFor(ctx, viewerID); err == nil && trust.Can(level, trust.ActionModerate) {
			includeHidden = true
		}
	}
	return s.postRepo.ListByTopic(ctx, topicID, includeHidden, limit, offset)
}

// CreatePost replies within a topic, threading under ParentID when given.
func (s *TopicService) CreatePost(ctx context.Context, in CreatePostInput) (*models.ForumPost, error) {
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	author, level, err := s.trustFor(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if !trust.Can(level, trust.ActionPost) {
		return nil, models.NewForbiddenError("Trust level too low to post")
	}

	topic, err := s.topicRepo.GetByID(ctx, in.TopicID)
	if err != nil {
		return nil, err
	}
	if topic.IsLocked && !trust.Can(level, trust.ActionModerate) {
		return nil, models.NewForbiddenError("Topic is locked")
	}

	var parent *models.ForumPost
	if in.ParentID != nil {
		parent, err = s.postRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.TopicID != in.TopicID {
			return nil, models.NewValidationError("Parent post belongs to a different topic")
		}
	}

	post := &models.ForumPost{
		TopicID:  in.TopicID,
		AuthorID: in.AuthorID,
		Content:  in.Content,
		ParentID: in.ParentID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if err := s.topicRepo.IncrementCounter(ctx, in.TopicID, "posts_count", 1); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to bump topic post count",
			slog.Uint64("topic_id", uint64(in.TopicID)),
			slog.String("error", err.Error()),
		)
	}
	if err := s.topicRepo.TouchActivity(ctx, in.TopicID); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to touch topic activity",
			slog.Uint64("topic_id", uint64(in.TopicID)),
			slog.String("error", err.Error()),
		)
	}

	if s.notifier != nil {
		if parent != nil && parent.AuthorID != in.AuthorID {
			s.notifier.NotifyReply(ctx, parent.AuthorID, author, topic, post.ID)
		} else if parent == nil && topic.AuthorID != in.AuthorID {
			s.notifier.NotifyReply(ctx, topic.AuthorID, author, topic, post.ID)
		}
	}

	return post, nil
}

// MarkSolution accepts a post as the answer to a question topic. Only the
// topic author or a moderator may accept.
func (s *TopicService) MarkSolution(ctx context.Context, actorID, topicID, postID uint) error {
	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return err
	}
	if !topic.IsQuestion {
		return models.NewValidationError("Only question topics accept solutions")
	}

	actor, level, err := s.trustFor(ctx, actorID)
	if err != nil {
		return err
	}
	if topic.AuthorID != actorID && !trust.Can(level, trust.ActionModerate) {
		return models.NewForbiddenError("Only the topic author or a moderator can accept a solution")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.TopicID != topicID {
		return models.NewValidationError("Post belongs to a different topic")
	}

	if err := s.postRepo.SetSolution(ctx, topicID, postID); err != nil {
		return err
	}

	if s.notifier != nil && post.AuthorID != actorID {
		s.notifier.NotifySolution(ctx, post.AuthorID, actor, topic, postID)
	}
	return nil
}

// TopContributors delegates to the ranked contributor query.
func (s *TopicService) TopContributors(ctx context.Context, limit int) ([]models.Contributor, error) {
	return s.userRepo.TopContributors(ctx, limit)
}
