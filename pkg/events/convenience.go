package events

import "context"

// Typed entry points for the content-mutation handlers, pairing each payload
// with its category and routing key so call sites cannot mismatch them.

// PublishArticleCreated publishes article.created on both channels.
func (p *Publisher) PublishArticleCreated(ctx context.Context, payload ArticleEvent) PublishResult {
	return p.Publish(ctx, CategoryArticle, RouteArticleCreated, payload)
}

// PublishArticleUpdated publishes article.updated on both channels.
func (p *Publisher) PublishArticleUpdated(ctx context.Context, payload ArticleEvent) PublishResult {
	return p.Publish(ctx, CategoryArticle, RouteArticleUpdated, payload)
}

// PublishArticleLiked publishes article.liked on both channels. The payload
// carries post-toggle state, so the same routing key covers like and unlike.
func (p *Publisher) PublishArticleLiked(ctx context.Context, payload ArticleLikeEvent) PublishResult {
	return p.Publish(ctx, CategoryArticle, RouteArticleLiked, payload)
}

// PublishCommentCreated publishes comment.created on both channels.
func (p *Publisher) PublishCommentCreated(ctx context.Context, payload CommentEvent) PublishResult {
	return p.Publish(ctx, CategoryComment, RouteCommentCreated, payload)
}

// PublishCommentUpdated publishes comment.updated on both channels.
func (p *Publisher) PublishCommentUpdated(ctx context.Context, payload CommentEvent) PublishResult {
	return p.Publish(ctx, CategoryComment, RouteCommentUpdated, payload)
}

// PublishCommentDeleted publishes comment.deleted on both channels.
func (p *Publisher) PublishCommentDeleted(ctx context.Context, payload CommentEvent) PublishResult {
	return p.Publish(ctx, CategoryComment, RouteCommentDeleted, payload)
}

// PublishCommentLiked publishes comment.liked on both channels.
func (p *Publisher) PublishCommentLiked(ctx context.Context, payload CommentLikeEvent) PublishResult {
	return p.Publish(ctx, CategoryComment, RouteCommentLiked, payload)
}
