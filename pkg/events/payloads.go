package events

// Typed payloads for the domain events produced by content-mutation handlers.
// The structures mirror what downstream consumers (socket gateway, analytics)
// expect on the wire; serialization happens only at the publish boundary.

// ArticleEvent describes an article lifecycle change (created, updated).
type ArticleEvent struct {
	ArticleID string `json:"article_id"`
	AuthorID  string `json:"author_id"`
	Title     string `json:"title"`
	Status    string `json:"status,omitempty"`
}

// ArticleLikeEvent describes a like/unlike toggle on an article. Likes and
// IsLiked reflect a fresh read of persisted state, never the pre-toggle intent.
type ArticleLikeEvent struct {
	ArticleID string `json:"article_id"`
	UserID    string `json:"user_id"`
	Likes     int    `json:"likes"`
	IsLiked   bool   `json:"is_liked"`
}

// CommentEvent describes a comment lifecycle change (created, updated, deleted).
type CommentEvent struct {
	CommentID       string `json:"comment_id"`
	ArticleID       string `json:"article_id"`
	AuthorID        string `json:"author_id,omitempty"`
	Content         string `json:"content,omitempty"`
	ParentCommentID string `json:"parent_comment_id,omitempty"`
	ArticleAuthorID string `json:"article_author_id,omitempty"`
}

// CommentLikeEvent describes a like/unlike toggle on a comment.
type CommentLikeEvent struct {
	CommentID string `json:"comment_id"`
	ArticleID string `json:"article_id"`
	UserID    string `json:"user_id"`
	Likes     int    `json:"likes"`
	IsLiked   bool   `json:"is_liked"`
}

// NotificationEvent carries a persisted notification to real-time consumers.
type NotificationEvent struct {
	NotificationID string `json:"notification_id,omitempty"`
	UserID         string `json:"user_id"`
	Type           string `json:"type"`
	Title          string `json:"title,omitempty"`
	Message        string `json:"message,omitempty"`
	Data           any    `json:"data,omitempty"`
}

// NotificationReadEvent carries a read-state transition and the recipient's
// recomputed unread count.
type NotificationReadEvent struct {
	UserID         string `json:"user_id"`
	NotificationID string `json:"notification_id,omitempty"`
	UnreadCount    int    `json:"unread_count"`
}
