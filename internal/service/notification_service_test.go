package service

import (
	"context"
	"testing"

	"academy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_MarkRead_Validation(t *testing.T) {
	svc := NewNotificationService(noopNotificationRepo(), nil)
	ctx := context.Background()

	t.Run("neither id nor all", func(t *testing.T) {
		_, err := svc.MarkRead(ctx, MarkReadInput{UserID: 1})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("both id and all marks everything", func(t *testing.T) {
		repo := noopNotificationRepo()
		var markedSingle bool
		repo.markReadFn = func(context.Context, uint, uint) (bool, error) {
			markedSingle = true
			return true, nil
		}
		repo.markAllReadFn = func(context.Context, uint) (int64, error) { return 3, nil }
		both := NewNotificationService(repo, nil)

		n, err := both.MarkRead(ctx, MarkReadInput{UserID: 1, NotificationID: uintPtr(3), All: true})
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.False(t, markedSingle, "the bulk path covers the single id")
	})
}

func TestNotificationService_MarkRead_Single(t *testing.T) {
	repo := noopNotificationRepo()
	var gotUserID, gotID uint
	repo.markReadFn = func(_ context.Context, userID, id uint) (bool, error) {
		gotUserID, gotID = userID, id
		return true, nil
	}
	svc := NewNotificationService(repo, nil)

	n, err := svc.MarkRead(context.Background(), MarkReadInput{UserID: 5, NotificationID: uintPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, uint(5), gotUserID)
	assert.Equal(t, uint(9), gotID)
}

func TestNotificationService_MarkRead_ForeignNotification(t *testing.T) {
	repo := noopNotificationRepo()
	repo.markReadFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	svc := NewNotificationService(repo, nil)

	_, err := svc.MarkRead(context.Background(), MarkReadInput{UserID: 5, NotificationID: uintPtr(9)})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestNotificationService_MarkRead_All(t *testing.T) {
	repo := noopNotificationRepo()
	repo.markAllReadFn = func(context.Context, uint) (int64, error) { return 7, nil }
	svc := NewNotificationService(repo, nil)

	n, err := svc.MarkRead(context.Background(), MarkReadInput{UserID: 5, All: true})
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestNotificationService_List_Enrichment(t *testing.T) {
	repo := noopNotificationRepo()
	repo.listByUserFn = func(context.Context, uint, bool, int) ([]models.ForumNotification, error) {
		return []models.ForumNotification{
			{
				ID:    1,
				Type:  models.NotificationReply,
				Actor: &models.User{Username: "ada", Avatar: "a.png"},
				Topic: &models.ForumTopic{Title: "Deploy help", Slug: "deploy-help-x1"},
			},
			{
				ID:   2,
				Type: models.NotificationReaction,
				// actor and topic rows are gone
			},
		}, nil
	}
	svc := NewNotificationService(repo, nil)

	views, err := svc.List(context.Background(), ListNotificationsInput{UserID: 5})
	require.NoError(t, err)
	require.Len(t, views, 2)

	require.NotNil(t, views[0].ActorName)
	assert.Equal(t, "ada", *views[0].ActorName)
	require.NotNil(t, views[0].TopicTitle)
	assert.Equal(t, "Deploy help", *views[0].TopicTitle)

	assert.Nil(t, views[1].ActorName)
	assert.Nil(t, views[1].TopicTitle)
}

func TestNotificationService_Deliver_PushesToUser(t *testing.T) {
	pub := &publisherStub{}
	svc := NewNotificationService(noopNotificationRepo(), pub)

	actor := &models.User{ID: 2, Username: "ada"}
	svc.NotifyReaction(context.Background(), 5, actor, 1, uintPtr(10), models.ReactionHelpful)

	require.Len(t, pub.userEvents, 1)
	assert.Equal(t, uint(5), pub.userEvents[0])
}

func TestNotificationService_Deliver_StoreFailureIsSilent(t *testing.T) {
	repo := noopNotificationRepo()
	repo.createFn = func(context.Context, *models.ForumNotification) error { return assert.AnError }
	pub := &publisherStub{}
	svc := NewNotificationService(repo, pub)

	actor := &models.User{ID: 2, Username: "ada"}
	svc.NotifyReaction(context.Background(), 5, actor, 1, nil, models.ReactionLike)

	assert.Empty(t, pub.userEvents, "failed store must not push a realtime event")
}
