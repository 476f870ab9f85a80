package models

// Contributor is one row of the top-contributor ranking, aggregated from
// visible topics and posts.
type Contributor struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar"`
	Level       *int   `json:"level,omitempty"`
	TopicsCount int    `json:"topics_count"`
	PostsCount  int    `json:"posts_count"`
	TotalCount  int    `json:"total_count"`
}
