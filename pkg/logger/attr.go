package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// NotificationID records the notification identifier under the key "notification_id".
// If id is nil, it returns an empty Attr.
func NotificationID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("notification_id", id)
}

// ArticleID records the article identifier under the key "article_id".
func ArticleID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("article_id", id)
}

// CommentID records the comment identifier under the key "comment_id".
func CommentID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("comment_id", id)
}

// RoutingKey records the broker routing key under the key "routing_key".
func RoutingKey(key string) slog.Attr {
	return slog.String("routing_key", key)
}

// Channel records the pub/sub channel name under the key "channel".
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}

// RecipientCount records the fan-out recipient count under the key "recipient_count".
func RecipientCount(n int) slog.Attr {
	return slog.Int("recipient_count", n)
}

// TokenCount records the push token count under the key "token_count".
func TokenCount(n int) slog.Attr {
	return slog.Int("token_count", n)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// EventType records the event type under the key "event_type".
func EventType(eventType string) slog.Attr {
	return slog.String("event_type", eventType)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
