package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/notifykit/pkg/async"
	"github.com/dmitrymomot/notifykit/pkg/events"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/push"
)

// Result reports the outcome of one fan-out. The triggering mutation has
// already committed, so failures of any sub-step are suppressed and exposed
// here instead of being returned as errors.
type Result struct {
	// Created is the number of notification rows persisted (the recipient count).
	Created int
	// Events holds the per-notification publish outcomes.
	Events []events.PublishResult
	// Push is the outcome of the single batched push dispatch.
	Push push.DispatchResult
	// Suppressed collects classified failures swallowed at the fan-out
	// boundary: persistence, delivery timeout, token lookups.
	Suppressed []error
}

// Engine computes recipient sets per trigger kind, persists notification
// records and hands them to the event publisher and push gateway.
type Engine struct {
	storage   Storage
	directory Directory
	publisher *events.Publisher
	gateway   *push.Gateway
	log       *slog.Logger
	timeout   time.Duration
	now       func() time.Time
	newID     func() string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger for the Engine.
func WithLogger(log *slog.Logger) EngineOption {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithDeliveryTimeout bounds the post-persistence delivery task (event
// publishing plus push dispatch). Defaults to 10s.
func WithDeliveryTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides notification ID generation. Intended for tests.
func WithIDGenerator(newID func() string) EngineOption {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

// NewEngine creates a fan-out engine. The publisher and gateway may be nil
// when the corresponding delivery channel is not wired (dev environments).
func NewEngine(storage Storage, directory Directory, publisher *events.Publisher, gateway *push.Gateway, opts ...EngineOption) *Engine {
	e := &Engine{
		storage:   storage,
		directory: directory,
		publisher: publisher,
		gateway:   gateway,
		log:       slog.Default(),
		timeout:   10 * time.Second,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// fanout is the computed plan for one trigger: the rows to persist, the
// device tokens for the single batched push, and the push message content.
type fanout struct {
	notifications []Notification
	tokens        []string
	pushTitle     string
	pushBody      string
	pushData      map[string]any
	suppressed    []error
}

// Notify runs the fan-out for a trigger. Recipient exclusion rules are
// applied per rule with no cross-rule deduplication; self-notification is
// always suppressed. All notification rows are created in a single bulk
// insert - if it fails, zero notifications exist and the failure is recorded
// in the result. Delivery (one notification.new event per created row plus
// one batched push dispatch) runs as a supervised background task bounded by
// the delivery timeout; it never fails the caller.
func (e *Engine) Notify(ctx context.Context, trigger Trigger) Result {
	plan := e.plan(ctx, trigger)

	result := Result{Suppressed: plan.suppressed}
	if len(plan.notifications) == 0 {
		return result
	}

	if err := e.storage.Create(ctx, plan.notifications...); err != nil {
		wrapped := errors.Join(ErrPersistenceFailed, err)
		result.Suppressed = append(result.Suppressed, wrapped)
		e.log.ErrorContext(ctx, "notification fan-out persistence failed",
			logger.RecipientCount(len(plan.notifications)),
			logger.Error(err),
		)
		return result
	}
	result.Created = len(plan.notifications)

	// Delivery is best-effort and must not block the caller's response path
	// indefinitely: it runs as a supervised task with a bounded lifetime.
	// context.WithoutCancel keeps the task alive through request teardown
	// while the deadline still bounds it.
	deliveryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	future := async.Async(deliveryCtx, plan, e.deliver)
	outcome, err := future.AwaitWithTimeout(e.timeout)
	if err != nil {
		result.Suppressed = append(result.Suppressed, err)
		e.log.ErrorContext(ctx, "notification delivery task did not complete",
			logger.RecipientCount(result.Created),
			logger.Error(err),
		)
		return result
	}

	result.Events = outcome.events
	result.Push = outcome.push
	for _, pr := range result.Events {
		result.Suppressed = append(result.Suppressed, pr.Suppressed()...)
	}
	if result.Push.Err != nil {
		result.Suppressed = append(result.Suppressed, result.Push.Err)
	}
	return result
}

type deliveryOutcome struct {
	events []events.PublishResult
	push   push.DispatchResult
}

func (e *Engine) deliver(ctx context.Context, plan fanout) (deliveryOutcome, error) {
	var out deliveryOutcome

	if e.publisher != nil {
		out.events = make([]events.PublishResult, 0, len(plan.notifications))
		for _, n := range plan.notifications {
			out.events = append(out.events, e.publisher.Publish(ctx, events.CategoryNotification, events.RouteNotificationNew, events.NotificationEvent{
				NotificationID: n.ID,
				UserID:         n.UserID,
				Type:           string(n.Type),
				Title:          n.Title,
				Message:        n.Message,
				Data:           n.Data,
			}))
		}
	}

	if e.gateway != nil {
		out.push = e.gateway.Dispatch(ctx, plan.tokens, plan.pushTitle, plan.pushBody, plan.pushData)
	}

	return out, nil
}

func (e *Engine) plan(ctx context.Context, trigger Trigger) fanout {
	switch t := trigger.(type) {
	case ArticlePublished:
		return e.planArticlePublished(ctx, t)
	case CommentCreated:
		return e.planCommentCreated(ctx, t)
	case ArticleLiked:
		return e.planArticleLiked(ctx, t)
	case CommentLiked:
		return e.planCommentLiked(ctx, t)
	default:
		return fanout{suppressed: []error{fmt.Errorf("unknown trigger type %T", trigger)}}
	}
}

func (e *Engine) planArticlePublished(ctx context.Context, t ArticlePublished) fanout {
	// Fan out only on the transition into published; an article that was
	// already published stays quiet on subsequent updates.
	if t.Status != StatusPublished || t.PreviousStatus == StatusPublished {
		return fanout{}
	}

	recipients, err := e.directory.BroadcastRecipients(ctx, t.Article.Author.ID)
	if err != nil {
		e.log.ErrorContext(ctx, "broadcast recipient lookup failed",
			logger.ArticleID(t.Article.ID),
			logger.Error(err),
		)
		return fanout{suppressed: []error{errors.Join(ErrDirectoryUnavailable, err)}}
	}
	if len(recipients) == 0 {
		return fanout{}
	}

	payload := NewArticlePayload{
		ArticleID:      t.Article.ID,
		ArticleTitle:   t.Article.Title,
		AuthorID:       t.Article.Author.ID,
		AuthorUsername: t.Article.Author.Username,
	}
	title := "New Article Published"
	message := fmt.Sprintf("%s published a new article: %q", t.Article.Author.Username, t.Article.Title)

	plan := fanout{
		notifications: make([]Notification, 0, len(recipients)),
		tokens:        make([]string, 0, len(recipients)),
		pushTitle:     title,
		pushBody:      message,
		pushData:      pushData(payload),
	}
	for _, r := range recipients {
		plan.notifications = append(plan.notifications, e.build(r.ID, title, message, payload))
		plan.tokens = append(plan.tokens, r.PushToken)
	}
	return plan
}

func (e *Engine) planCommentCreated(ctx context.Context, t CommentCreated) fanout {
	actor := t.Comment.Author
	var plan fanout

	// Rule 1: notify the article author unless they wrote the comment.
	if actor.ID != t.Article.Author.ID {
		payload := NewCommentPayload{
			ArticleID:         t.Article.ID,
			ArticleTitle:      t.Article.Title,
			CommentID:         t.Comment.ID,
			CommenterID:       actor.ID,
			CommenterUsername: actor.Username,
			IsReply:           t.Parent != nil,
		}
		title := "New Comment on Your Article"
		message := fmt.Sprintf("%s commented on your article: %q", actor.Username, t.Article.Title)

		plan.notifications = append(plan.notifications, e.build(t.Article.Author.ID, title, message, payload))
		plan.tokens = append(plan.tokens, e.lookupToken(ctx, t.Article.Author.ID, &plan))
		plan.pushTitle = title
		plan.pushBody = message
		plan.pushData = pushData(payload)
	}

	// Rule 2: notify the parent comment author on a reply, evaluated
	// independently of rule 1. The parent author may also be the article
	// author and then receives both notifications.
	if t.Parent != nil && t.Parent.Author.ID != actor.ID {
		payload := CommentReplyPayload{
			ArticleID:         t.Article.ID,
			ArticleTitle:      t.Article.Title,
			CommentID:         t.Comment.ID,
			ParentCommentID:   t.Parent.ID,
			CommenterID:       actor.ID,
			CommenterUsername: actor.Username,
		}
		title := "New Reply to Your Comment"
		message := fmt.Sprintf("%s replied to your comment on %q", actor.Username, t.Article.Title)

		plan.notifications = append(plan.notifications, e.build(t.Parent.Author.ID, title, message, payload))
		plan.tokens = append(plan.tokens, e.lookupToken(ctx, t.Parent.Author.ID, &plan))
		if plan.pushTitle == "" {
			plan.pushTitle = title
			plan.pushBody = message
			plan.pushData = pushData(payload)
		}
	}

	return plan
}

func (e *Engine) planArticleLiked(ctx context.Context, t ArticleLiked) fanout {
	// Only the like transition notifies, never the unlike.
	if !t.Liked || t.Actor.ID == t.Article.Author.ID {
		return fanout{}
	}

	payload := ArticleLikedPayload{
		ArticleID:     t.Article.ID,
		ArticleTitle:  t.Article.Title,
		LikerID:       t.Actor.ID,
		LikerUsername: t.Actor.Username,
	}
	title := "Your Article Was Liked"
	message := fmt.Sprintf("%s liked your article: %q", t.Actor.Username, t.Article.Title)

	return e.singleRecipientPlan(ctx, t.Article.Author.ID, title, message, payload)
}

func (e *Engine) planCommentLiked(ctx context.Context, t CommentLiked) fanout {
	if !t.Liked || t.Actor.ID == t.Comment.Author.ID {
		return fanout{}
	}

	payload := CommentLikedPayload{
		ArticleID:     t.Article.ID,
		ArticleTitle:  t.Article.Title,
		CommentID:     t.Comment.ID,
		LikerID:       t.Actor.ID,
		LikerUsername: t.Actor.Username,
	}
	title := "Your Comment Was Liked"
	message := fmt.Sprintf("%s liked your comment: %q", t.Actor.Username, excerpt(t.Comment.Content, 50))

	return e.singleRecipientPlan(ctx, t.Comment.Author.ID, title, message, payload)
}

func (e *Engine) singleRecipientPlan(ctx context.Context, recipientID, title, message string, payload Payload) fanout {
	plan := fanout{
		notifications: []Notification{e.build(recipientID, title, message, payload)},
		pushTitle:     title,
		pushBody:      message,
		pushData:      pushData(payload),
	}
	plan.tokens = append(plan.tokens, e.lookupToken(ctx, recipientID, &plan))
	return plan
}

// lookupToken resolves a recipient's device token at fan-out time. Lookup
// failures degrade to an empty token (push is skipped for that recipient)
// and are recorded as suppressed.
func (e *Engine) lookupToken(ctx context.Context, userID string, plan *fanout) string {
	token, err := e.directory.PushToken(ctx, userID)
	if err != nil {
		plan.suppressed = append(plan.suppressed, fmt.Errorf("push token lookup for user %s: %w", userID, err))
		return ""
	}
	return token
}

func (e *Engine) build(userID, title, message string, payload Payload) Notification {
	return Notification{
		ID:        e.newID(),
		UserID:    userID,
		Type:      payload.Kind(),
		Title:     title,
		Message:   message,
		Data:      payload,
		CreatedAt: e.now().UTC(),
	}
}

// pushData flattens a typed payload into the free-form data map the push
// provider accepts. The tagged union exists in-process; the wire boundary is
// generic.
func pushData(payload Payload) map[string]any {
	return map[string]any{
		"type":    string(payload.Kind()),
		"payload": payload,
	}
}

// excerpt truncates s to max runes with an ellipsis, for quoting comment
// content in notification messages.
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
