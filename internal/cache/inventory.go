package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	TopicKeyPrefix     = "forum:topic:%d"
	TopicPostsPrefix   = "forum:topic:%d:posts"
	CategoryListKey    = "forum:categories"
	UserStatsPrefix    = "stats:user:%d"
	ContributorsPrefix = "forum:contributors:%d"
)

const (
	UserTTL         = 5 * time.Minute
	TopicTTL        = 10 * time.Minute
	CategoryTTL     = 30 * time.Minute
	StatsTTL        = 2 * time.Minute
	ContributorsTTL = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TopicKey(topicID uint) string {
	return fmt.Sprintf(TopicKeyPrefix, topicID)
}

func TopicPostsKey(topicID uint) string {
	return fmt.Sprintf(TopicPostsPrefix, topicID)
}

func UserStatsKey(userID uint) string {
	return fmt.Sprintf(UserStatsPrefix, userID)
}

func ContributorsKey(limit int) string {
	return fmt.Sprintf(ContributorsPrefix, limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, UserStatsKey(userID))
}

func InvalidateTopic(ctx context.Context, topicID uint) {
	Invalidate(ctx, TopicKey(topicID))
	Invalidate(ctx, TopicPostsKey(topicID))
}

func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoryListKey)
}
