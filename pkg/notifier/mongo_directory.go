package notifier

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// usersCollection is the collection backing MongoDirectory.
const usersCollection = "users"

type userDoc struct {
	ID        string `bson:"_id"`
	Username  string `bson:"username"`
	Role      string `bson:"role"`
	Active    bool   `bson:"is_active"`
	Verified  bool   `bson:"verified"`
	PushToken string `bson:"push_token,omitempty"`
}

var _ Directory = (*MongoDirectory)(nil)

// MongoDirectory is the MongoDB-backed Directory implementation reading the
// users collection.
type MongoDirectory struct {
	collection *mongo.Collection
}

// NewMongoDirectory creates a Directory backed by the users collection of
// the given database.
func NewMongoDirectory(db *mongo.Database) *MongoDirectory {
	return &MongoDirectory{collection: db.Collection(usersCollection)}
}

// BroadcastRecipients returns admins regardless of account state plus every
// active and verified user, excluding excludeUserID. Recipient state is read
// at call time, not at trigger time.
func (d *MongoDirectory) BroadcastRecipients(ctx context.Context, excludeUserID string) ([]Recipient, error) {
	filter := bson.M{
		"_id": bson.M{"$ne": excludeUserID},
		"$or": bson.A{
			bson.M{"role": RoleAdmin},
			bson.M{"is_active": true, "verified": true},
		},
	}

	cursor, err := d.collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Join(ErrDirectoryUnavailable, err)
	}
	defer cursor.Close(ctx)

	var recipients []Recipient
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Join(ErrDirectoryUnavailable, err)
		}
		recipients = append(recipients, Recipient{
			ID:        doc.ID,
			Username:  doc.Username,
			PushToken: doc.PushToken,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Join(ErrDirectoryUnavailable, err)
	}
	return recipients, nil
}

// PushToken returns the user's registered device token, which may be empty.
func (d *MongoDirectory) PushToken(ctx context.Context, userID string) (string, error) {
	var doc userDoc
	err := d.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUserNotFound
		}
		return "", errors.Join(ErrDirectoryUnavailable, err)
	}
	return doc.PushToken, nil
}

// RegisterToken binds a device token to the user, evicting it from any other
// user that currently holds it.
func (d *MongoDirectory) RegisterToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	// Eviction first keeps the token single-owner even if the second update
	// fails; the token is then briefly owned by nobody, never by two users.
	_, err := d.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$ne": userID}, "push_token": token},
		bson.M{"$unset": bson.M{"push_token": ""}},
	)
	if err != nil {
		return errors.Join(ErrDirectoryUnavailable, err)
	}

	result, err := d.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"push_token": token}},
	)
	if err != nil {
		return errors.Join(ErrDirectoryUnavailable, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UnregisterToken clears the user's device token.
func (d *MongoDirectory) UnregisterToken(ctx context.Context, userID string) error {
	result, err := d.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$unset": bson.M{"push_token": ""}},
	)
	if err != nil {
		return errors.Join(ErrDirectoryUnavailable, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
