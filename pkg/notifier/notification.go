package notifier

import "time"

// Type discriminates notification payload variants.
type Type string

const (
	TypeNewArticle   Type = "new_article"
	TypeNewComment   Type = "new_comment"
	TypeCommentReply Type = "comment_reply"
	TypeArticleLiked Type = "article_liked"
	TypeCommentLiked Type = "comment_liked"
)

// Valid reports whether the type is one of the known values.
func (t Type) Valid() bool {
	switch t {
	case TypeNewArticle, TypeNewComment, TypeCommentReply, TypeArticleLiked, TypeCommentLiked:
		return true
	}
	return false
}

// Payload is the tagged union of notification data variants. Each variant is
// strongly typed to its trigger kind; generic serialization happens only at
// the storage and wire boundaries.
type Payload interface {
	Kind() Type
}

// NewArticlePayload accompanies a broadcast about a newly published article.
type NewArticlePayload struct {
	ArticleID      string `json:"article_id" bson:"article_id"`
	ArticleTitle   string `json:"article_title" bson:"article_title"`
	AuthorID       string `json:"author_id" bson:"author_id"`
	AuthorUsername string `json:"author_username" bson:"author_username"`
}

func (NewArticlePayload) Kind() Type { return TypeNewArticle }

// NewCommentPayload accompanies a notification to an article author about a
// comment on their article.
type NewCommentPayload struct {
	ArticleID         string `json:"article_id" bson:"article_id"`
	ArticleTitle      string `json:"article_title" bson:"article_title"`
	CommentID         string `json:"comment_id" bson:"comment_id"`
	CommenterID       string `json:"commenter_id" bson:"commenter_id"`
	CommenterUsername string `json:"commenter_username" bson:"commenter_username"`
	IsReply           bool   `json:"is_reply" bson:"is_reply"`
}

func (NewCommentPayload) Kind() Type { return TypeNewComment }

// CommentReplyPayload accompanies a notification to a comment author about a
// reply to their comment.
type CommentReplyPayload struct {
	ArticleID         string `json:"article_id" bson:"article_id"`
	ArticleTitle      string `json:"article_title" bson:"article_title"`
	CommentID         string `json:"comment_id" bson:"comment_id"`
	ParentCommentID   string `json:"parent_comment_id" bson:"parent_comment_id"`
	CommenterID       string `json:"commenter_id" bson:"commenter_id"`
	CommenterUsername string `json:"commenter_username" bson:"commenter_username"`
}

func (CommentReplyPayload) Kind() Type { return TypeCommentReply }

// ArticleLikedPayload accompanies a notification to an article author about a like.
type ArticleLikedPayload struct {
	ArticleID     string `json:"article_id" bson:"article_id"`
	ArticleTitle  string `json:"article_title" bson:"article_title"`
	LikerID       string `json:"liker_id" bson:"liker_id"`
	LikerUsername string `json:"liker_username" bson:"liker_username"`
}

func (ArticleLikedPayload) Kind() Type { return TypeArticleLiked }

// CommentLikedPayload accompanies a notification to a comment author about a like.
type CommentLikedPayload struct {
	ArticleID     string `json:"article_id" bson:"article_id"`
	ArticleTitle  string `json:"article_title" bson:"article_title"`
	CommentID     string `json:"comment_id" bson:"comment_id"`
	LikerID       string `json:"liker_id" bson:"liker_id"`
	LikerUsername string `json:"liker_username" bson:"liker_username"`
}

func (CommentLikedPayload) Kind() Type { return TypeCommentLiked }

// Notification is a persistent per-recipient record. It is created once by
// the fan-out engine and afterwards mutated only by read tracking; the
// recipient is never the acting user of the triggering action.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Type      Type       `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Data      Payload    `json:"data,omitempty"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// MarkAsRead marks the notification as read at the given time. The
// transition is one-way; marking an already-read notification keeps the
// original ReadAt.
func (n *Notification) MarkAsRead(at time.Time) {
	if n.Read {
		return
	}
	n.Read = true
	n.ReadAt = &at
}
