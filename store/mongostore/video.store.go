package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"learnhub/models"
	"learnhub/store"
)

type videoDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CourseID    primitive.ObjectID `bson:"course_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	VideoURL    string             `bson:"video_url"`
	Thumbnail   string             `bson:"thumbnail,omitempty"`
	Duration    int                `bson:"duration"`
	Order       int                `bson:"lesson_order"`
	IsPublished bool               `bson:"is_published"`
	Views       int64              `bson:"views"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type videoStore struct {
	col     *mongo.Collection
	courses *mongo.Collection
}

func (s *videoStore) Create(ctx context.Context, video *models.Video) error {
	courseOID, err := parseOID(video.CourseID)
	if err != nil {
		return err
	}
	count, err := s.courses.CountDocuments(ctx, bson.M{"_id": courseOID})
	if err != nil {
		return err
	}
	if count == 0 {
		return store.ErrNotFound
	}

	doc := videoDoc{
		CourseID:    courseOID,
		Title:       video.Title,
		Description: video.Description,
		VideoURL:    video.VideoURL,
		Thumbnail:   video.Thumbnail,
		Duration:    video.Duration,
		Order:       video.Order,
		IsPublished: video.IsPublished,
		Views:       0,
		CreatedAt:   now(),
		UpdatedAt:   now(),
	}
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	*video = *doc.toModel()
	return nil
}

func (s *videoStore) FindByID(ctx context.Context, id string) (*models.Video, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}
	var doc videoDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toModel(), nil
}

func (s *videoStore) ViewByID(ctx context.Context, id string) (*models.Video, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}

	// $inc keeps concurrent fetches from losing counts.
	var doc videoDoc
	err = s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate(err)
	}
	return doc.toModel(), nil
}

func (s *videoStore) ListByCourse(ctx context.Context, courseID string) ([]models.Video, error) {
	oid, err := parseOID(courseID)
	if err != nil {
		// Unknown and malformed course ids both list as empty.
		return []models.Video{}, nil
	}

	cur, err := s.col.Find(ctx,
		bson.M{"course_id": oid, "is_published": true},
		options.Find().SetSort(bson.D{{Key: "lesson_order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	videos := []models.Video{}
	for cur.Next(ctx) {
		var doc videoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		videos = append(videos, *doc.toModel())
	}
	return videos, cur.Err()
}

func (s *videoStore) Update(ctx context.Context, id string, patch models.VideoPatch) (*models.Video, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.VideoURL != nil {
		set["video_url"] = *patch.VideoURL
	}
	if patch.Thumbnail != nil {
		set["thumbnail"] = *patch.Thumbnail
	}
	if patch.Duration != nil {
		set["duration"] = *patch.Duration
	}
	if patch.Order != nil {
		set["lesson_order"] = *patch.Order
	}
	if patch.IsPublished != nil {
		set["is_published"] = *patch.IsPublished
	}

	var doc videoDoc
	err = s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate(err)
	}
	return doc.toModel(), nil
}

func (s *videoStore) Delete(ctx context.Context, id string) error {
	oid, err := parseOID(id)
	if err != nil {
		return err
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *videoStore) TotalViews(ctx context.Context) (int64, error) {
	cur, err := s.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$views"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var out []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

func (d *videoDoc) toModel() *models.Video {
	return &models.Video{
		ID:          d.ID.Hex(),
		CourseID:    d.CourseID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		VideoURL:    d.VideoURL,
		Thumbnail:   d.Thumbnail,
		Duration:    d.Duration,
		Order:       d.Order,
		IsPublished: d.IsPublished,
		Views:       d.Views,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
