package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"academy/internal/featureflags"
	"academy/internal/models"
	"academy/internal/repository"
	"academy/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHandlerTestApp wires a Server around stub repositories and mounts its
// routes behind a middleware that fakes an authenticated user.
func newHandlerTestApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals("userID", userID)
		}
		return c.Next()
	})
	return app
}

func newStubServer(
	reactions *reactionRepoStub,
	posts *postRepoStub,
	topics *topicRepoStub,
	notes *notificationRepoStub,
) *Server {
	users := &userRepoStub{}
	notificationService := service.NewNotificationService(notes, nil)
	return &Server{
		postRepo:            posts,
		reactionService:     service.NewReactionService(reactions, posts, topics, users, notificationService),
		topicService:        service.NewTopicService(topics, posts, &categoryRepoStub{}, users, notificationService),
		notificationService: notificationService,
		searchService:       service.NewSearchService(topics, posts),
	}
}

func TestSearchForum(t *testing.T) {
	topics := &topicRepoStub{
		searchFn: func(_ context.Context, query string, _ int) ([]models.ForumTopic, error) {
			return []models.ForumTopic{{ID: 1, Slug: "go-generics", Title: "Go generics", Content: "about go generics"}}, nil
		},
	}
	s := newStubServer(&reactionRepoStub{}, &postRepoStub{}, topics, &notificationRepoStub{})

	app := newHandlerTestApp(s, 0)
	app.Get("/api/forum/search", s.SearchForum)

	t.Run("returns merged envelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/forum/search?q=go", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body service.SearchResults
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 1, body.Total)
		require.Len(t, body.Topics, 1)
		assert.Equal(t, "go-generics", body.Topics[0].Slug)
	})

	t.Run("short query is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/forum/search?q=g", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSearchForum_SnippetFlagOff(t *testing.T) {
	topics := &topicRepoStub{
		searchFn: func(_ context.Context, _ string, _ int) ([]models.ForumTopic, error) {
			return []models.ForumTopic{{ID: 1, Title: "Go generics", Content: "all about go generics"}}, nil
		},
	}
	s := newStubServer(&reactionRepoStub{}, &postRepoStub{}, topics, &notificationRepoStub{})
	s.featureFlags = featureflags.NewManager("search_snippets=off")

	app := newHandlerTestApp(s, 0)
	app.Get("/api/forum/search", s.SearchForum)

	req := httptest.NewRequest(http.MethodGet, "/api/forum/search?q=go", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body service.SearchResults
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Topics, 1)
	assert.Empty(t, body.Topics[0].Snippet)
}

func TestGetTopics_CategoryFilter(t *testing.T) {
	var gotFilter repository.TopicListFilter
	topics := &topicRepoStub{
		listFn: func(_ context.Context, filter repository.TopicListFilter) ([]models.ForumTopic, error) {
			gotFilter = filter
			return []models.ForumTopic{{ID: 1, Slug: "welcome", CategoryID: 3}}, nil
		},
	}
	s := newStubServer(&reactionRepoStub{}, &postRepoStub{}, topics, &notificationRepoStub{})

	app := newHandlerTestApp(s, 0)
	app.Get("/api/forum/topics", s.GetTopics)

	t.Run("category query narrows the listing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/forum/topics?category=3", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, gotFilter.CategoryID)
		assert.Equal(t, uint(3), *gotFilter.CategoryID)
	})

	t.Run("no category query leaves the filter open", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/forum/topics", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Nil(t, gotFilter.CategoryID)
		assert.Equal(t, 20, gotFilter.Limit)
	})
}

func TestAddReaction(t *testing.T) {
	t.Run("post and topic together is rejected", func(t *testing.T) {
		s := newStubServer(&reactionRepoStub{}, &postRepoStub{}, &topicRepoStub{}, &notificationRepoStub{})
		app := newHandlerTestApp(s, 1)
		app.Post("/api/forum/reactions", s.AddReaction)

		body := []byte(`{"post_id":1,"topic_id":2,"reaction_type":"like"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/forum/reactions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate reaction returns conflict", func(t *testing.T) {
		reactions := &reactionRepoStub{
			createFn: func(context.Context, *models.ForumReaction) error {
				return models.NewConflictError("Reaction already exists")
			},
		}
		s := newStubServer(reactions, &postRepoStub{}, &topicRepoStub{}, &notificationRepoStub{})
		app := newHandlerTestApp(s, 1)
		app.Post("/api/forum/reactions", s.AddReaction)

		body := []byte(`{"post_id":1,"reaction_type":"like"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/forum/reactions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("successful reaction returns the created row", func(t *testing.T) {
		s := newStubServer(&reactionRepoStub{}, &postRepoStub{}, &topicRepoStub{}, &notificationRepoStub{})
		app := newHandlerTestApp(s, 1)
		app.Post("/api/forum/reactions", s.AddReaction)

		body := []byte(`{"post_id":1,"reaction_type":"like"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/forum/reactions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var payload struct {
			Reaction models.ForumReaction `json:"reaction"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "like", payload.Reaction.ReactionType)
		assert.Equal(t, uint(1), payload.Reaction.UserID)
	})
}

func TestRemoveReaction_Idempotent(t *testing.T) {
	decremented := false
	posts := &postRepoStub{
		incrementReactionsFn: func(context.Context, uint, int) error {
			decremented = true
			return nil
		},
	}
	reactions := &reactionRepoStub{
		deleteForPostFn: func(context.Context, uint, uint, string) (bool, error) {
			return false, nil
		},
	}
	s := newStubServer(reactions, posts, &topicRepoStub{}, &notificationRepoStub{})
	app := newHandlerTestApp(s, 1)
	app.Delete("/api/forum/reactions", s.RemoveReaction)

	req := httptest.NewRequest(http.MethodDelete, "/api/forum/reactions?post_id=1&reaction_type=like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decremented, "no decrement when nothing was removed")
}

func TestMarkNotificationsRead(t *testing.T) {
	t.Run("neither id nor all is rejected", func(t *testing.T) {
		s := newStubServer(&reactionRepoStub{}, &postRepoStub{}, &topicRepoStub{}, &notificationRepoStub{})
		app := newHandlerTestApp(s, 1)
		app.Patch("/api/forum/notifications", s.MarkNotificationsRead)

		req := httptest.NewRequest(http.MethodPatch, "/api/forum/notifications", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown notification id returns not found", func(t *testing.T) {
		notes := &notificationRepoStub{
			markReadFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		}
		s := newStubServer(&reactionRepoStub{}, &postRepoStub{}, &topicRepoStub{}, notes)
		app := newHandlerTestApp(s, 1)
		app.Patch("/api/forum/notifications", s.MarkNotificationsRead)

		req := httptest.NewRequest(http.MethodPatch, "/api/forum/notifications",
			bytes.NewReader([]byte(`{"notification_id":99}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("mark all reports the count", func(t *testing.T) {
		notes := &notificationRepoStub{
			markAllReadFn: func(context.Context, uint) (int64, error) { return 4, nil },
		}
		s := newStubServer(&reactionRepoStub{}, &postRepoStub{}, &topicRepoStub{}, notes)
		app := newHandlerTestApp(s, 1)
		app.Patch("/api/forum/notifications", s.MarkNotificationsRead)

		req := httptest.NewRequest(http.MethodPatch, "/api/forum/notifications",
			bytes.NewReader([]byte(`{"mark_all_read":true}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Updated int64 `json:"updated"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(4), body.Updated)
	})
}

func TestLivenessCheck(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/health/live", s.LivenessCheck)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetFeatureFlags(t *testing.T) {
	s := &Server{featureFlags: featureflags.NewManager("realtime_stats=off")}
	app := newHandlerTestApp(s, 1)
	app.Get("/api/admin/feature-flags", s.GetFeatureFlags)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/feature-flags", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Evaluated map[string]bool `json:"evaluated"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Evaluated["realtime_stats"])
	assert.True(t, body.Evaluated["wiki_topics"], "unconfigured flags default on")
}
