package events

import "time"

// Category routes an event to its ephemeral pub/sub channel.
type Category string

const (
	CategoryArticle      Category = "article"
	CategoryComment      Category = "comment"
	CategoryNotification Category = "notification"
)

// Channel returns the ephemeral pub/sub channel name for the category.
func (c Category) Channel() string {
	return string(c) + "-events"
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryArticle, CategoryComment, CategoryNotification:
		return true
	}
	return false
}

// Routing keys for the durable topic exchange.
const (
	RouteArticleCreated = "article.created"
	RouteArticleUpdated = "article.updated"
	RouteArticleLiked   = "article.liked"

	RouteCommentCreated = "comment.created"
	RouteCommentUpdated = "comment.updated"
	RouteCommentDeleted = "comment.deleted"
	RouteCommentLiked   = "comment.liked"

	RouteNotificationNew     = "notification.new"
	RouteNotificationRead    = "notification.read"
	RouteNotificationReadAll = "notification.read_all"
)

// Event is a transient domain event. It is transmitted over both delivery
// channels and never stored.
type Event struct {
	Category   Category  `json:"category"`
	RoutingKey string    `json:"routing_key"`
	Payload    any       `json:"payload"`
	Timestamp  time.Time `json:"timestamp"`
}
