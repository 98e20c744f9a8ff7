// Package mongostore implements the entity repositories on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learnhub/store"
)

// New ensures indexes and returns the repository set bound to db.
func New(ctx context.Context, db *mongo.Database) (store.Stores, error) {
	users := db.Collection("users")
	courses := db.Collection("courses")
	videos := db.Collection("videos")

	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "google_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return store.Stores{}, err
	}
	_, err = courses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "is_published", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return store.Stores{}, err
	}
	_, err = videos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "course_id", Value: 1}, {Key: "lesson_order", Value: 1}},
	})
	if err != nil {
		return store.Stores{}, err
	}

	return store.Stores{
		Users:   &userStore{col: users, courses: courses},
		Courses: &courseStore{col: courses, videos: videos, users: users},
		Videos:  &videoStore{col: videos, courses: courses},
	}, nil
}

// parseOID maps opaque identifier strings onto ObjectIDs. Malformed input
// behaves as an unknown record.
func parseOID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return oid, nil
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
