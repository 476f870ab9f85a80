package service

import (
	"context"
	"fmt"

	"academy/internal/models"
	"academy/internal/observability"
	"academy/internal/repository"
	"academy/internal/trust"
)

// ReactionService manages typed reactions on posts and topics.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	topicRepo    repository.TopicRepository
	userRepo     repository.UserRepository
	notifier     *NotificationService
}

// ReactionInput identifies a reaction by user, target and kind. Exactly one
// of PostID or TopicID must be set.
type ReactionInput struct {
	UserID       uint
	PostID       *uint
	TopicID      *uint
	ReactionType string
}

// ReactionSummary is the per-type breakdown of a target's remaining reactions.
type ReactionSummary struct {
	Counts []repository.ReactionCount `json:"counts"`
	Total  int                        `json:"total"`
}

// NewReactionService wires the reaction business logic.
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		topicRepo:    topicRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func (in *ReactionInput) validate() error {
	if (in.PostID == nil) == (in.TopicID == nil) {
		return models.NewValidationError("Exactly one of post_id or topic_id is required")
	}
	if !models.IsValidReactionType(in.ReactionType) {
		return models.NewValidationError(fmt.Sprintf("Unknown reaction type %q", in.ReactionType))
	}
	return nil
}

// Add creates a reaction. A repeat of the same (user, target, type) is
// rejected with a conflict, distinguishable from other failures.
func (s *ReactionService) Add(ctx context.Context, in ReactionInput) (*models.ForumReaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !trust.Can(trust.Calculate(user.Level), trust.ActionReact) {
		return nil, models.NewForbiddenError("Trust level too low to react")
	}

	var targetAuthorID uint
	var topicID uint
	if in.PostID != nil {
		post, err := s.postRepo.GetByID(ctx, *in.PostID)
		if err != nil {
			return nil, err
		}
		targetAuthorID = post.AuthorID
		topicID = post.TopicID
	} else {
		topic, err := s.topicRepo.GetByID(ctx, *in.TopicID)
		if err != nil {
			return nil, err
		}
		targetAuthorID = topic.AuthorID
		topicID = topic.ID
	}

	reaction := &models.ForumReaction{
		UserID:       in.UserID,
		PostID:       in.PostID,
		TopicID:      in.TopicID,
		ReactionType: in.ReactionType,
	}
	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "CONFLICT" {
			observability.ReactionConflicts.Inc()
		}
		return nil, err
	}

	if in.PostID != nil {
		if err := s.postRepo.IncrementReactions(ctx, *in.PostID, 1); err != nil {
			return nil, err
		}
	} else {
		if err := s.topicRepo.IncrementCounter(ctx, *in.TopicID, "reactions_count", 1); err != nil {
			return nil, err
		}
	}

	// Reacting to your own content produces no notification.
	if s.notifier != nil && targetAuthorID != in.UserID {
		s.notifier.NotifyReaction(ctx, targetAuthorID, user, topicID, in.PostID, in.ReactionType)
	}

	return reaction, nil
}

// Remove deletes a reaction. Removing one that does not exist is a no-op, so
// retries from the client stay safe.
func (s *ReactionService) Remove(ctx context.Context, in ReactionInput) (*ReactionSummary, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var removed bool
	var err error
	if in.PostID != nil {
		removed, err = s.reactionRepo.DeleteForPost(ctx, in.UserID, *in.PostID, in.ReactionType)
	} else {
		removed, err = s.reactionRepo.DeleteForTopic(ctx, in.UserID, *in.TopicID, in.ReactionType)
	}
	if err != nil {
		return nil, err
	}

	// Only decrement when a row actually went away, otherwise repeated
	// removals would drive the counter negative.
	if removed {
		if in.PostID != nil {
			if err := s.postRepo.IncrementReactions(ctx, *in.PostID, -1); err != nil {
				return nil, err
			}
		} else {
			if err := s.topicRepo.IncrementCounter(ctx, *in.TopicID, "reactions_count", -1); err != nil {
				return nil, err
			}
		}
	}

	return s.summary(ctx, in)
}

func (s *ReactionService) summary(ctx context.Context, in ReactionInput) (*ReactionSummary, error) {
	var counts []repository.ReactionCount
	var err error
	if in.PostID != nil {
		counts, err = s.reactionRepo.CountsForPost(ctx, *in.PostID)
	} else {
		counts, err = s.reactionRepo.CountsForTopic(ctx, *in.TopicID)
	}
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return &ReactionSummary{Counts: counts, Total: total}, nil
}
