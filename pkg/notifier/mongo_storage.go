package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// notificationsCollection is the collection backing MongoStorage.
const notificationsCollection = "notifications"

// notificationDoc is the persistence shape of a Notification. The typed
// payload is stored as raw BSON and decoded back through its type tag.
type notificationDoc struct {
	ID        string     `bson:"_id"`
	UserID    string     `bson:"user_id"`
	Type      Type       `bson:"type"`
	Title     string     `bson:"title"`
	Message   string     `bson:"message"`
	Data      bson.Raw   `bson:"data,omitempty"`
	Read      bool       `bson:"read"`
	ReadAt    *time.Time `bson:"read_at,omitempty"`
	CreatedAt time.Time  `bson:"created_at"`
}

var _ Storage = (*MongoStorage)(nil)

// MongoStorage is the MongoDB-backed Storage implementation.
type MongoStorage struct {
	collection *mongo.Collection
}

// NewMongoStorage creates a Storage backed by the notifications collection
// of the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{collection: db.Collection(notificationsCollection)}
}

// EnsureIndexes creates the indexes the query paths rely on: the recipient
// listing index and the unread counter index. Safe to call on every startup.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "read", Value: 1}}},
	})
	if err != nil {
		return errors.Join(ErrPersistenceFailed, err)
	}
	return nil
}

// Create stores all notifications in one ordered insert. On failure nothing
// is considered created.
func (s *MongoStorage) Create(ctx context.Context, notifications ...Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	docs := make([]any, 0, len(notifications))
	for _, n := range notifications {
		doc, err := toDoc(n)
		if err != nil {
			return errors.Join(ErrPersistenceFailed, err)
		}
		docs = append(docs, doc)
	}

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return errors.Join(ErrPersistenceFailed, err)
	}
	return nil
}

// Get returns one notification scoped to its owner.
func (s *MongoStorage) Get(ctx context.Context, userID, notificationID string) (*Notification, error) {
	var doc notificationDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": notificationID, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, errors.Join(ErrPersistenceFailed, err)
	}
	return fromDoc(doc)
}

// List returns a page of the user's notifications, newest first, and the
// total count matching the options.
func (s *MongoStorage) List(ctx context.Context, userID string, opts ListOptions) ([]Notification, int64, error) {
	filter := bson.M{"user_id": userID}
	if opts.OnlyUnread {
		filter["read"] = false
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Join(ErrPersistenceFailed, err)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Offset > 0 {
		findOpts.SetSkip(int64(opts.Offset))
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(int64(opts.Limit))
	}

	cursor, err := s.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, errors.Join(ErrPersistenceFailed, err)
	}
	defer cursor.Close(ctx)

	var notifications []Notification
	for cursor.Next(ctx) {
		var doc notificationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, errors.Join(ErrPersistenceFailed, err)
		}
		n, err := fromDoc(doc)
		if err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, *n)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, errors.Join(ErrPersistenceFailed, err)
	}
	return notifications, total, nil
}

// MarkRead flips one unread notification to read with a conditional update,
// so a concurrent mark cannot move the read timestamp.
func (s *MongoStorage) MarkRead(ctx context.Context, userID, notificationID string, at time.Time) (bool, error) {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": notificationID, "user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true, "read_at": at}},
	)
	if err != nil {
		return false, errors.Join(ErrPersistenceFailed, err)
	}
	if result.ModifiedCount > 0 {
		return true, nil
	}

	// Distinguish already-read from missing or foreign.
	count, err := s.collection.CountDocuments(ctx, bson.M{"_id": notificationID, "user_id": userID})
	if err != nil {
		return false, errors.Join(ErrPersistenceFailed, err)
	}
	if count == 0 {
		return false, ErrNotificationNotFound
	}
	return false, nil
}

// MarkAllRead flips every unread notification of the user to read with one
// shared read timestamp.
func (s *MongoStorage) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	result, err := s.collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true, "read_at": at}},
	)
	if err != nil {
		return 0, errors.Join(ErrPersistenceFailed, err)
	}
	return result.ModifiedCount, nil
}

// CountUnread returns the user's unread notification count.
func (s *MongoStorage) CountUnread(ctx context.Context, userID string) (int, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
	if err != nil {
		return 0, errors.Join(ErrPersistenceFailed, err)
	}
	return int(count), nil
}

func toDoc(n Notification) (notificationDoc, error) {
	doc := notificationDoc{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if n.Data != nil {
		raw, err := bson.Marshal(n.Data)
		if err != nil {
			return notificationDoc{}, fmt.Errorf("marshal notification payload: %w", err)
		}
		doc.Data = raw
	}
	return doc, nil
}

func fromDoc(doc notificationDoc) (*Notification, error) {
	n := Notification{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Type:      doc.Type,
		Title:     doc.Title,
		Message:   doc.Message,
		Read:      doc.Read,
		ReadAt:    doc.ReadAt,
		CreatedAt: doc.CreatedAt,
	}
	if len(doc.Data) > 0 {
		payload, err := decodePayload(doc.Type, doc.Data)
		if err != nil {
			return nil, errors.Join(ErrPersistenceFailed, err)
		}
		n.Data = payload
	}
	return &n, nil
}

// decodePayload restores a typed payload from raw BSON using the stored
// notification type as the discriminator.
func decodePayload(t Type, raw bson.Raw) (Payload, error) {
	switch t {
	case TypeNewArticle:
		return unmarshalPayload[NewArticlePayload](t, raw)
	case TypeNewComment:
		return unmarshalPayload[NewCommentPayload](t, raw)
	case TypeCommentReply:
		return unmarshalPayload[CommentReplyPayload](t, raw)
	case TypeArticleLiked:
		return unmarshalPayload[ArticleLikedPayload](t, raw)
	case TypeCommentLiked:
		return unmarshalPayload[CommentLikedPayload](t, raw)
	default:
		return nil, fmt.Errorf("unknown notification type %q", t)
	}
}

func unmarshalPayload[P Payload](t Type, raw bson.Raw) (Payload, error) {
	var p P
	if err := bson.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", t, err)
	}
	return p, nil
}
