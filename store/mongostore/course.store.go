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

type courseDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	Thumbnail     string             `bson:"thumbnail,omitempty"`
	Category      string             `bson:"category"`
	InstructorID  primitive.ObjectID `bson:"instructor_id"`
	Price         float64            `bson:"price"`
	OriginalPrice float64            `bson:"original_price,omitempty"`
	Duration      string             `bson:"duration,omitempty"`
	Level         string             `bson:"level"`
	IsPublished   bool               `bson:"is_published"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

type courseStore struct {
	col    *mongo.Collection
	videos *mongo.Collection
	users  *mongo.Collection
}

func (s *courseStore) Create(ctx context.Context, course *models.Course) error {
	instructorOID, err := parseOID(course.InstructorID)
	if err != nil {
		return err
	}
	if course.Level == "" {
		course.Level = models.LevelBeginner
	}

	// The instructor reference must hold for every caller, not just the
	// HTTP path that pre-resolves it.
	count, err := s.users.CountDocuments(ctx, bson.M{"_id": instructorOID})
	if err != nil {
		return err
	}
	if count == 0 {
		return store.ErrNotFound
	}

	doc := courseDoc{
		Title:         course.Title,
		Description:   course.Description,
		Thumbnail:     course.Thumbnail,
		Category:      course.Category,
		InstructorID:  instructorOID,
		Price:         course.Price,
		OriginalPrice: course.OriginalPrice,
		Duration:      course.Duration,
		Level:         course.Level,
		IsPublished:   course.IsPublished,
		CreatedAt:     now(),
		UpdatedAt:     now(),
	}
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	*course = *doc.toModel()
	return nil
}

func (s *courseStore) FindByID(ctx context.Context, id string) (*models.Course, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}
	var doc courseDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toModel(), nil
}

func (s *courseStore) FindByIDWithVideos(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oid, _ := parseOID(id)
	cur, err := s.videos.Find(ctx,
		bson.M{"course_id": oid},
		options.Find().SetSort(bson.D{{Key: "lesson_order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	course.Videos = []models.Video{}
	for cur.Next(ctx) {
		var doc videoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		course.Videos = append(course.Videos, *doc.toModel())
	}
	return course, cur.Err()
}

func (s *courseStore) ListPublished(ctx context.Context, page, limit int) (store.CoursePage, error) {
	result := store.CoursePage{Page: page, Limit: limit}
	filter := bson.M{"is_published": true}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return result, err
	}
	result.Total = total

	cur, err := s.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page-1)*limit)).
		SetLimit(int64(limit)))
	if err != nil {
		return result, err
	}
	defer cur.Close(ctx)

	result.Items = []models.Course{}
	for cur.Next(ctx) {
		var doc courseDoc
		if err := cur.Decode(&doc); err != nil {
			return result, err
		}
		result.Items = append(result.Items, *doc.toModel())
	}
	return result, cur.Err()
}

func (s *courseStore) ListByCategory(ctx context.Context, category string) ([]models.Course, error) {
	cur, err := s.col.Find(ctx,
		bson.M{"category": category, "is_published": true},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	courses := []models.Course{}
	for cur.Next(ctx) {
		var doc courseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		courses = append(courses, *doc.toModel())
	}
	return courses, cur.Err()
}

func (s *courseStore) Update(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
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
	if patch.Thumbnail != nil {
		set["thumbnail"] = *patch.Thumbnail
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.OriginalPrice != nil {
		set["original_price"] = *patch.OriginalPrice
	}
	if patch.Duration != nil {
		set["duration"] = *patch.Duration
	}
	if patch.Level != nil {
		set["level"] = *patch.Level
	}
	if patch.IsPublished != nil {
		set["is_published"] = *patch.IsPublished
	}

	var doc courseDoc
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

func (s *courseStore) Delete(ctx context.Context, id string) error {
	oid, err := parseOID(id)
	if err != nil {
		return err
	}

	count, err := s.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if count == 0 {
		return store.ErrNotFound
	}

	// Owned videos go first so a failure never strands them.
	if _, err := s.videos.DeleteMany(ctx, bson.M{"course_id": oid}); err != nil {
		return err
	}
	_, err = s.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (s *courseStore) CountPublished(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"is_published": true})
}

func (d *courseDoc) toModel() *models.Course {
	return &models.Course{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Description:   d.Description,
		Thumbnail:     d.Thumbnail,
		Category:      d.Category,
		InstructorID:  d.InstructorID.Hex(),
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Duration:      d.Duration,
		Level:         d.Level,
		IsPublished:   d.IsPublished,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
