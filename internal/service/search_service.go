package service

import (
	"context"
	"strings"

	"academy/internal/models"
	"academy/internal/observability"
	"academy/internal/repository"
)

const (
	searchDefaultLimit = 10
	searchMaxLimit     = 20

	// Snippet window around the first match, and the plain truncation used
	// when the content has no match at all.
	snippetBefore   = 50
	snippetAfter    = 100
	snippetFallback = 150
)

// SearchService aggregates topic and post matches into one response.
type SearchService struct {
	topicRepo repository.TopicRepository
	postRepo  repository.PostRepository
}

// SearchInput is a forum search request. Type is "topics", "posts" or "all".
type SearchInput struct {
	Query string
	Type  string
	Limit int
}

// TopicResult is one topic hit.
type TopicResult struct {
	ID           uint   `json:"id"`
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Snippet      string `json:"snippet"`
	CategoryName string `json:"category_name,omitempty"`
	AuthorName   string `json:"author_name,omitempty"`
	PostsCount   int    `json:"posts_count"`
	IsSolved     bool   `json:"is_solved"`
}

// PostResult is one post hit.
type PostResult struct {
	ID         uint   `json:"id"`
	TopicID    uint   `json:"topic_id"`
	TopicTitle string `json:"topic_title,omitempty"`
	TopicSlug  string `json:"topic_slug,omitempty"`
	Snippet    string `json:"snippet"`
	AuthorName string `json:"author_name,omitempty"`
}

// SearchResults is the aggregated envelope.
type SearchResults struct {
	Topics []TopicResult `json:"topics"`
	Posts  []PostResult  `json:"posts"`
	Total  int           `json:"total"`
}

// NewSearchService wires the search aggregator.
func NewSearchService(topicRepo repository.TopicRepository, postRepo repository.PostRepository) *SearchService {
	return &SearchService{topicRepo: topicRepo, postRepo: postRepo}
}

// Search runs the requested scopes and merges the hits. Queries shorter than
// two characters are a validation error; an unknown type falls back to "all".
func (s *SearchService) Search(ctx context.Context, in SearchInput) (*SearchResults, error) {
	query := strings.TrimSpace(in.Query)
	if len([]rune(query)) < 2 {
		return nil, models.NewValidationError("Search query must be at least 2 characters")
	}

	limit := in.Limit
	if limit <= 0 {
		limit = searchDefaultLimit
	}
	if limit > searchMaxLimit {
		limit = searchMaxLimit
	}

	searchType := in.Type
	switch searchType {
	case "topics", "posts":
	default:
		searchType = "all"
	}
	observability.SearchQueries.WithLabelValues(searchType).Inc()

	results := &SearchResults{
		Topics: []TopicResult{},
		Posts:  []PostResult{},
	}

	if searchType == "topics" || searchType == "all" {
		topics, err := s.topicRepo.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		for i := range topics {
			results.Topics = append(results.Topics, buildTopicResult(&topics[i], query))
		}
	}

	if searchType == "posts" || searchType == "all" {
		posts, err := s.postRepo.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		for i := range posts {
			results.Posts = append(results.Posts, buildPostResult(&posts[i], query))
		}
	}

	results.Total = len(results.Topics) + len(results.Posts)
	return results, nil
}

func buildTopicResult(topic *models.ForumTopic, query string) TopicResult {
	r := TopicResult{
		ID:         topic.ID,
		Slug:       topic.Slug,
		Title:      topic.Title,
		Snippet:    Snippet(topic.Content, query),
		PostsCount: topic.PostsCount,
		IsSolved:   topic.IsSolved,
	}
	if topic.Category != nil {
		r.CategoryName = topic.Category.Name
	}
	if topic.Author != nil {
		r.AuthorName = topic.Author.Username
	}
	return r
}

func buildPostResult(post *models.ForumPost, query string) PostResult {
	r := PostResult{
		ID:      post.ID,
		TopicID: post.TopicID,
		Snippet: Snippet(post.Content, query),
	}
	if post.Topic != nil {
		r.TopicTitle = post.Topic.Title
		r.TopicSlug = post.Topic.Slug
	}
	if post.Author != nil {
		r.AuthorName = post.Author.Username
	}
	return r
}

// Snippet extracts a window of text around the first case-insensitive match
// of query in content. The window reaches 50 runes before the match and 100
// after it; an ellipsis marks each side that was cut. When the query does not
// occur in the content the first 150 runes are returned instead.
func Snippet(content, query string) string {
	runes := []rune(content)
	idx := strings.Index(strings.ToLower(content), strings.ToLower(query))

	var start, end int
	if idx < 0 {
		start = 0
		end = snippetFallback
	} else {
		// Byte offset to rune offset, so multibyte content slices cleanly.
		matchStart := len([]rune(content[:idx]))
		matchEnd := matchStart + len([]rune(query))
		start = matchStart - snippetBefore
		end = matchEnd + snippetAfter
	}

	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}

	snippet := string(runes[start:end])
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(runes) {
		snippet += "..."
	}
	return snippet
}
