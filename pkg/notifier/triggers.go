package notifier

// UserRef identifies a user involved in a trigger.
type UserRef struct {
	ID       string
	Username string
}

// ArticleRef identifies the article a trigger concerns.
type ArticleRef struct {
	ID     string
	Title  string
	Author UserRef
}

// CommentRef identifies a comment involved in a trigger. Content is carried
// for notification message text only (comment-like messages quote an excerpt).
type CommentRef struct {
	ID      string
	Author  UserRef
	Content string
}

// Trigger is a content mutation the fan-out engine reacts to. The triggering
// mutation is assumed to have durably committed before Notify is called.
type Trigger interface {
	trigger()
}

// ArticlePublished fires when an article's status changes. The engine only
// fans out on the transition into "published"; republishing an already
// published article is a no-op.
type ArticlePublished struct {
	Article        ArticleRef
	Status         string
	PreviousStatus string
}

func (ArticlePublished) trigger() {}

// StatusPublished is the article status that triggers the broadcast.
const StatusPublished = "published"

// CommentCreated fires when a comment is created. Parent is non-nil when the
// comment replies to another comment; in that case the comment-reply rule is
// evaluated independently of, and in addition to, the new-comment rule.
type CommentCreated struct {
	Article ArticleRef
	Comment CommentRef
	Parent  *CommentRef
}

func (CommentCreated) trigger() {}

// ArticleLiked fires on a like toggle. Liked reflects a fresh read of
// persisted state after the toggle; the unlike transition never notifies.
type ArticleLiked struct {
	Article ArticleRef
	Actor   UserRef
	Liked   bool
}

func (ArticleLiked) trigger() {}

// CommentLiked fires on a comment like toggle, with the same transition
// semantics as ArticleLiked.
type CommentLiked struct {
	Article ArticleRef
	Comment CommentRef
	Actor   UserRef
	Liked   bool
}

func (CommentLiked) trigger() {}
