package service

import (
	"context"

	"academy/internal/models"
	"academy/internal/repository"
)

// Function-field stubs for the repository interfaces. Tests override only the
// calls they care about.

type reactionRepoStub struct {
	createFn            func(context.Context, *models.ForumReaction) error
	deleteForPostFn     func(context.Context, uint, uint, string) (bool, error)
	deleteForTopicFn    func(context.Context, uint, uint, string) (bool, error)
	countsForPostFn     func(context.Context, uint) ([]repository.ReactionCount, error)
	countsForTopicFn    func(context.Context, uint) ([]repository.ReactionCount, error)
	listByUserForPostFn func(context.Context, uint, uint) ([]models.ForumReaction, error)
}

func (s *reactionRepoStub) Create(ctx context.Context, r *models.ForumReaction) error {
	return s.createFn(ctx, r)
}
func (s *reactionRepoStub) DeleteForPost(ctx context.Context, userID, postID uint, rt string) (bool, error) {
	return s.deleteForPostFn(ctx, userID, postID, rt)
}
func (s *reactionRepoStub) DeleteForTopic(ctx context.Context, userID, topicID uint, rt string) (bool, error) {
	return s.deleteForTopicFn(ctx, userID, topicID, rt)
}
func (s *reactionRepoStub) CountsForPost(ctx context.Context, postID uint) ([]repository.ReactionCount, error) {
	return s.countsForPostFn(ctx, postID)
}
func (s *reactionRepoStub) CountsForTopic(ctx context.Context, topicID uint) ([]repository.ReactionCount, error) {
	return s.countsForTopicFn(ctx, topicID)
}
func (s *reactionRepoStub) ListByUserForPost(ctx context.Context, userID, postID uint) ([]models.ForumReaction, error) {
	return s.listByUserForPostFn(ctx, userID, postID)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		createFn:         func(context.Context, *models.ForumReaction) error { return nil },
		deleteForPostFn:  func(context.Context, uint, uint, string) (bool, error) { return true, nil },
		deleteForTopicFn: func(context.Context, uint, uint, string) (bool, error) { return true, nil },
		countsForPostFn: func(context.Context, uint) ([]repository.ReactionCount, error) {
			return []repository.ReactionCount{}, nil
		},
		countsForTopicFn: func(context.Context, uint) ([]repository.ReactionCount, error) {
			return []repository.ReactionCount{}, nil
		},
		listByUserForPostFn: func(context.Context, uint, uint) ([]models.ForumReaction, error) { return nil, nil },
	}
}

type postRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.ForumPost, error)
	listByTopicFn        func(context.Context, uint, bool, int, int) ([]models.ForumPost, error)
	createFn             func(context.Context, *models.ForumPost) error
	updateFn             func(context.Context, *models.ForumPost) error
	deleteFn             func(context.Context, uint) error
	setHiddenFn          func(context.Context, uint, bool) error
	setSolutionFn        func(context.Context, uint, uint) error
	incrementReactionsFn func(context.Context, uint, int) error
	searchFn             func(context.Context, string, int) ([]models.ForumPost, error)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.ForumPost, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListByTopic(ctx context.Context, topicID uint, includeHidden bool, limit, offset int) ([]models.ForumPost, error) {
	return s.listByTopicFn(ctx, topicID, includeHidden, limit, offset)
}
func (s *postRepoStub) Create(ctx context.Context, p *models.ForumPost) error { return s.createFn(ctx, p) }
func (s *postRepoStub) Update(ctx context.Context, p *models.ForumPost) error { return s.updateFn(ctx, p) }
func (s *postRepoStub) Delete(ctx context.Context, id uint) error             { return s.deleteFn(ctx, id) }
func (s *postRepoStub) SetHidden(ctx context.Context, id uint, hidden bool) error {
	return s.setHiddenFn(ctx, id, hidden)
}
func (s *postRepoStub) SetSolution(ctx context.Context, topicID, postID uint) error {
	return s.setSolutionFn(ctx, topicID, postID)
}
func (s *postRepoStub) IncrementReactions(ctx context.Context, id uint, delta int) error {
	return s.incrementReactionsFn(ctx, id, delta)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit int) ([]models.ForumPost, error) {
	return s.searchFn(ctx, query, limit)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.ForumPost, error) {
			return &models.ForumPost{ID: id, TopicID: 1, AuthorID: 2}, nil
		},
		listByTopicFn:        func(context.Context, uint, bool, int, int) ([]models.ForumPost, error) { return nil, nil },
		createFn:             func(context.Context, *models.ForumPost) error { return nil },
		updateFn:             func(context.Context, *models.ForumPost) error { return nil },
		deleteFn:             func(context.Context, uint) error { return nil },
		setHiddenFn:          func(context.Context, uint, bool) error { return nil },
		setSolutionFn:        func(context.Context, uint, uint) error { return nil },
		incrementReactionsFn: func(context.Context, uint, int) error { return nil },
		searchFn:             func(context.Context, string, int) ([]models.ForumPost, error) { return nil, nil },
	}
}

type topicRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.ForumTopic, error)
	getBySlugFn        func(context.Context, string) (*models.ForumTopic, error)
	listFn             func(context.Context, repository.TopicListFilter) ([]models.ForumTopic, error)
	createFn           func(context.Context, *models.ForumTopic) error
	updateFn           func(context.Context, *models.ForumTopic) error
	deleteFn           func(context.Context, uint) error
	setFlagFn          func(context.Context, uint, string, bool) error
	incrementCounterFn func(context.Context, uint, string, int) error
	touchActivityFn    func(context.Context, uint) error
	searchFn           func(context.Context, string, int) ([]models.ForumTopic, error)
}

func (s *topicRepoStub) GetByID(ctx context.Context, id uint) (*models.ForumTopic, error) {
	return s.getByIDFn(ctx, id)
}
func (s *topicRepoStub) GetBySlug(ctx context.Context, slug string) (*models.ForumTopic, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *topicRepoStub) List(ctx context.Context, f repository.TopicListFilter) ([]models.ForumTopic, error) {
	return s.listFn(ctx, f)
}
func (s *topicRepoStub) Create(ctx context.Context, t *models.ForumTopic) error {
	return s.createFn(ctx, t)
}
func (s *topicRepoStub) Update(ctx context.Context, t *models.ForumTopic) error {
	return s.updateFn(ctx, t)
}
func (s *topicRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *topicRepoStub) SetFlag(ctx context.Context, id uint, column string, value bool) error {
	return s.setFlagFn(ctx, id, column, value)
}
func (s *topicRepoStub) IncrementCounter(ctx context.Context, id uint, column string, delta int) error {
	return s.incrementCounterFn(ctx, id, column, delta)
}
func (s *topicRepoStub) TouchActivity(ctx context.Context, id uint) error {
	return s.touchActivityFn(ctx, id)
}
func (s *topicRepoStub) Search(ctx context.Context, query string, limit int) ([]models.ForumTopic, error) {
	return s.searchFn(ctx, query, limit)
}

func noopTopicRepo() *topicRepoStub {
	return &topicRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.ForumTopic, error) {
			return &models.ForumTopic{ID: id, AuthorID: 2, IsQuestion: true}, nil
		},
		getBySlugFn: func(_ context.Context, slug string) (*models.ForumTopic, error) {
			return &models.ForumTopic{ID: 1, Slug: slug, AuthorID: 2}, nil
		},
		listFn:             func(context.Context, repository.TopicListFilter) ([]models.ForumTopic, error) { return nil, nil },
		createFn:           func(context.Context, *models.ForumTopic) error { return nil },
		updateFn:           func(context.Context, *models.ForumTopic) error { return nil },
		deleteFn:           func(context.Context, uint) error { return nil },
		setFlagFn:          func(context.Context, uint, string, bool) error { return nil },
		incrementCounterFn: func(context.Context, uint, string, int) error { return nil },
		touchActivityFn:    func(context.Context, uint) error { return nil },
		searchFn:           func(context.Context, string, int) ([]models.ForumTopic, error) { return nil, nil },
	}
}

type userRepoStub struct {
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	createFn          func(context.Context, *models.User) error
	updateFn          func(context.Context, *models.User) error
	deleteFn          func(context.Context, uint) error
	topContributorsFn func(context.Context, int) ([]models.Contributor, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *userRepoStub) TopContributors(ctx context.Context, limit int) ([]models.Contributor, error) {
	return s.topContributorsFn(ctx, limit)
}

// userRepoWithLevel returns a stub whose users all carry the given level.
func userRepoWithLevel(level *int) *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "stubuser", Level: level}, nil
		},
		getByEmailFn:      func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:   func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:          func(context.Context, *models.User) error { return nil },
		updateFn:          func(context.Context, *models.User) error { return nil },
		deleteFn:          func(context.Context, uint) error { return nil },
		topContributorsFn: func(context.Context, int) ([]models.Contributor, error) { return nil, nil },
	}
}

type categoryRepoStub struct {
	listFn            func(context.Context) ([]models.ForumCategory, error)
	getByIDFn         func(context.Context, uint) (*models.ForumCategory, error)
	getBySlugFn       func(context.Context, string) (*models.ForumCategory, error)
	createFn          func(context.Context, *models.ForumCategory) error
	incrementTopicsFn func(context.Context, uint, int) error
}

func (s *categoryRepoStub) List(ctx context.Context) ([]models.ForumCategory, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.ForumCategory, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.ForumCategory, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) Create(ctx context.Context, c *models.ForumCategory) error {
	return s.createFn(ctx, c)
}
func (s *categoryRepoStub) IncrementTopics(ctx context.Context, id uint, delta int) error {
	return s.incrementTopicsFn(ctx, id, delta)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listFn: func(context.Context) ([]models.ForumCategory, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.ForumCategory, error) {
			return &models.ForumCategory{ID: id, Name: "General", Slug: "general"}, nil
		},
		getBySlugFn:       func(context.Context, string) (*models.ForumCategory, error) { return nil, nil },
		createFn:          func(context.Context, *models.ForumCategory) error { return nil },
		incrementTopicsFn: func(context.Context, uint, int) error { return nil },
	}
}

type notificationRepoStub struct {
	createFn      func(context.Context, *models.ForumNotification) error
	listByUserFn  func(context.Context, uint, bool, int) ([]models.ForumNotification, error)
	markReadFn    func(context.Context, uint, uint) (bool, error)
	markAllReadFn func(context.Context, uint) (int64, error)
	unreadCountFn func(context.Context, uint) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.ForumNotification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.ForumNotification, error) {
	return s.listByUserFn(ctx, userID, unreadOnly, limit)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, userID, id uint) (bool, error) {
	return s.markReadFn(ctx, userID, id)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.markAllReadFn(ctx, userID)
}
func (s *notificationRepoStub) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.unreadCountFn(ctx, userID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn:      func(context.Context, *models.ForumNotification) error { return nil },
		listByUserFn:  func(context.Context, uint, bool, int) ([]models.ForumNotification, error) { return nil, nil },
		markReadFn:    func(context.Context, uint, uint) (bool, error) { return true, nil },
		markAllReadFn: func(context.Context, uint) (int64, error) { return 0, nil },
		unreadCountFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type activityRepoStub struct {
	insertEventFn   func(context.Context, *models.UserActivity) error
	incrementStatFn func(context.Context, uint, string, string) error
	statsByUserFn   func(context.Context, uint) ([]models.UserStat, error)
	recentByUserFn  func(context.Context, uint, int) ([]models.UserActivity, error)
	lastByUserFn    func(context.Context, uint) (*models.UserActivity, error)
	recentByAreaFn  func(context.Context, uint, string, int) ([]models.UserActivity, error)
}

func (s *activityRepoStub) InsertEvent(ctx context.Context, e *models.UserActivity) error {
	return s.insertEventFn(ctx, e)
}
func (s *activityRepoStub) IncrementStat(ctx context.Context, userID uint, activityType, featureArea string) error {
	return s.incrementStatFn(ctx, userID, activityType, featureArea)
}
func (s *activityRepoStub) StatsByUser(ctx context.Context, userID uint) ([]models.UserStat, error) {
	return s.statsByUserFn(ctx, userID)
}
func (s *activityRepoStub) RecentByUser(ctx context.Context, userID uint, limit int) ([]models.UserActivity, error) {
	return s.recentByUserFn(ctx, userID, limit)
}
func (s *activityRepoStub) LastByUser(ctx context.Context, userID uint) (*models.UserActivity, error) {
	return s.lastByUserFn(ctx, userID)
}
func (s *activityRepoStub) RecentByArea(ctx context.Context, userID uint, featureArea string, limit int) ([]models.UserActivity, error) {
	return s.recentByAreaFn(ctx, userID, featureArea, limit)
}

func noopActivityRepo() *activityRepoStub {
	return &activityRepoStub{
		insertEventFn:   func(context.Context, *models.UserActivity) error { return nil },
		incrementStatFn: func(context.Context, uint, string, string) error { return nil },
		statsByUserFn:   func(context.Context, uint) ([]models.UserStat, error) { return nil, nil },
		recentByUserFn:  func(context.Context, uint, int) ([]models.UserActivity, error) { return nil, nil },
		lastByUserFn:    func(context.Context, uint) (*models.UserActivity, error) { return nil, nil },
		recentByAreaFn:  func(context.Context, uint, string, int) ([]models.UserActivity, error) { return nil, nil },
	}
}

// publisherStub records published events.
type publisherStub struct {
	userEvents      []uint
	broadcastEvents int
}

func (p *publisherStub) PublishToUser(_ context.Context, userID uint, _ interface{}) {
	p.userEvents = append(p.userEvents, userID)
}
func (p *publisherStub) PublishBroadcast(_ context.Context, _ interface{}) {
	p.broadcastEvents++
}

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }
