package server

import (
	"context"

	"academy/internal/models"
	"academy/internal/repository"
)

// Function-field repository stubs. Only the fields a test sets are consulted;
// everything else answers with a harmless default.

type userRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.User{ID: id, Username: "member"}, nil
}
func (s *userRepoStub) GetByEmail(context.Context, string) (*models.User, error)    { return nil, nil }
func (s *userRepoStub) GetByUsername(context.Context, string) (*models.User, error) { return nil, nil }
func (s *userRepoStub) Create(context.Context, *models.User) error                  { return nil }
func (s *userRepoStub) Update(context.Context, *models.User) error                  { return nil }
func (s *userRepoStub) Delete(context.Context, uint) error                          { return nil }
func (s *userRepoStub) TopContributors(context.Context, int) ([]models.Contributor, error) {
	return nil, nil
}

type topicRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.ForumTopic, error)
	listFn    func(context.Context, repository.TopicListFilter) ([]models.ForumTopic, error)
	searchFn  func(context.Context, string, int) ([]models.ForumTopic, error)
}

func (s *topicRepoStub) GetByID(ctx context.Context, id uint) (*models.ForumTopic, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.ForumTopic{ID: id, AuthorID: 2}, nil
}
func (s *topicRepoStub) GetBySlug(context.Context, string) (*models.ForumTopic, error) {
	return nil, nil
}
func (s *topicRepoStub) List(ctx context.Context, filter repository.TopicListFilter) ([]models.ForumTopic, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}
func (s *topicRepoStub) Create(context.Context, *models.ForumTopic) error    { return nil }
func (s *topicRepoStub) Update(context.Context, *models.ForumTopic) error    { return nil }
func (s *topicRepoStub) Delete(context.Context, uint) error                  { return nil }
func (s *topicRepoStub) SetFlag(context.Context, uint, string, bool) error   { return nil }
func (s *topicRepoStub) IncrementCounter(context.Context, uint, string, int) error {
	return nil
}
func (s *topicRepoStub) TouchActivity(context.Context, uint) error { return nil }
func (s *topicRepoStub) Search(ctx context.Context, query string, limit int) ([]models.ForumTopic, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, query, limit)
	}
	return nil, nil
}

type categoryRepoStub struct{}

func (s *categoryRepoStub) List(context.Context) ([]models.ForumCategory, error) { return nil, nil }
func (s *categoryRepoStub) GetByID(_ context.Context, id uint) (*models.ForumCategory, error) {
	return &models.ForumCategory{ID: id, Name: "General", Slug: "general"}, nil
}
func (s *categoryRepoStub) GetBySlug(context.Context, string) (*models.ForumCategory, error) {
	return nil, nil
}
func (s *categoryRepoStub) Create(context.Context, *models.ForumCategory) error { return nil }
func (s *categoryRepoStub) IncrementTopics(context.Context, uint, int) error    { return nil }

type postRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.ForumPost, error)
	incrementReactionsFn func(context.Context, uint, int) error
	searchFn             func(context.Context, string, int) ([]models.ForumPost, error)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.ForumPost, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &models.ForumPost{ID: id, TopicID: 1, AuthorID: 2}, nil
}
func (s *postRepoStub) ListByTopic(context.Context, uint, bool, int, int) ([]models.ForumPost, error) {
	return nil, nil
}
func (s *postRepoStub) Create(context.Context, *models.ForumPost) error  { return nil }
func (s *postRepoStub) Update(context.Context, *models.ForumPost) error  { return nil }
func (s *postRepoStub) Delete(context.Context, uint) error               { return nil }
func (s *postRepoStub) SetHidden(context.Context, uint, bool) error      { return nil }
func (s *postRepoStub) SetSolution(context.Context, uint, uint) error    { return nil }
func (s *postRepoStub) IncrementReactions(ctx context.Context, id uint, delta int) error {
	if s.incrementReactionsFn != nil {
		return s.incrementReactionsFn(ctx, id, delta)
	}
	return nil
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit int) ([]models.ForumPost, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, query, limit)
	}
	return nil, nil
}

type reactionRepoStub struct {
	createFn        func(context.Context, *models.ForumReaction) error
	deleteForPostFn func(context.Context, uint, uint, string) (bool, error)
	countsForPostFn func(context.Context, uint) ([]repository.ReactionCount, error)
}

func (s *reactionRepoStub) Create(ctx context.Context, r *models.ForumReaction) error {
	if s.createFn != nil {
		return s.createFn(ctx, r)
	}
	return nil
}
func (s *reactionRepoStub) DeleteForPost(ctx context.Context, userID, postID uint, reactionType string) (bool, error) {
	if s.deleteForPostFn != nil {
		return s.deleteForPostFn(ctx, userID, postID, reactionType)
	}
	return false, nil
}
func (s *reactionRepoStub) DeleteForTopic(context.Context, uint, uint, string) (bool, error) {
	return false, nil
}
func (s *reactionRepoStub) CountsForPost(ctx context.Context, postID uint) ([]repository.ReactionCount, error) {
	if s.countsForPostFn != nil {
		return s.countsForPostFn(ctx, postID)
	}
	return nil, nil
}
func (s *reactionRepoStub) CountsForTopic(context.Context, uint) ([]repository.ReactionCount, error) {
	return nil, nil
}
func (s *reactionRepoStub) ListByUserForPost(context.Context, uint, uint) ([]models.ForumReaction, error) {
	return nil, nil
}

type notificationRepoStub struct {
	markReadFn    func(context.Context, uint, uint) (bool, error)
	markAllReadFn func(context.Context, uint) (int64, error)
	unreadCountFn func(context.Context, uint) (int64, error)
}

func (s *notificationRepoStub) Create(context.Context, *models.ForumNotification) error {
	return nil
}
func (s *notificationRepoStub) ListByUser(context.Context, uint, bool, int) ([]models.ForumNotification, error) {
	return nil, nil
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, userID, notificationID uint) (bool, error) {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, userID, notificationID)
	}
	return true, nil
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, userID)
	}
	return 0, nil
}
func (s *notificationRepoStub) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if s.unreadCountFn != nil {
		return s.unreadCountFn(ctx, userID)
	}
	return 0, nil
}
