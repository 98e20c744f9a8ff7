package mongostore

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"

	"learnhub/models"
	"learnhub/store"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	GoogleID     *string            `bson:"google_id,omitempty"`
	Email        string             `bson:"email"`
	Password     string             `bson:"password,omitempty"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	Role         string             `bson:"role"`
	Bio          string             `bson:"bio,omitempty"`
	Avatar       string             `bson:"avatar,omitempty"`
	IsActive     bool               `bson:"is_active"`
	OAuthProfile []byte             `bson:"oauth_profile,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type userStore struct {
	col     *mongo.Collection
	courses *mongo.Collection
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	count, err := s.col.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return store.ErrDuplicateEmail
	}

	doc := userDoc{
		Email:        user.Email,
		Password:     user.Password,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		Bio:          user.Bio,
		Avatar:       user.Avatar,
		IsActive:     user.IsActive,
		OAuthProfile: []byte(user.OAuthProfile),
		CreatedAt:    now(),
		UpdatedAt:    now(),
	}
	if user.GoogleID != "" {
		gid := user.GoogleID
		doc.GoogleID = &gid
	}

	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicateEmail
		}
		return err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	*user = *doc.toModel()
	return nil
}

func (s *userStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *userStore) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"google_id": googleID})
}

func (s *userStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.toModel(), nil
}

func (s *userStore) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": now()}
	if patch.GoogleID != nil {
		set["google_id"] = *patch.GoogleID
	}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.Avatar != nil {
		set["avatar"] = *patch.Avatar
	}
	if patch.IsActive != nil {
		set["is_active"] = *patch.IsActive
	}
	if patch.OAuthProfile != nil {
		set["oauth_profile"] = []byte(patch.OAuthProfile)
	}

	var doc userDoc
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

func (s *userStore) Delete(ctx context.Context, id string) error {
	oid, err := parseOID(id)
	if err != nil {
		return err
	}

	owned, err := s.courses.CountDocuments(ctx, bson.M{"instructor_id": oid})
	if err != nil {
		return err
	}
	if owned > 0 {
		return store.ErrUserHasCourses
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

func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		users = append(users, *doc.toModel())
	}
	return users, cur.Err()
}

func (d *userDoc) toModel() *models.User {
	user := &models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Password:     d.Password,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Role:         d.Role,
		Bio:          d.Bio,
		Avatar:       d.Avatar,
		IsActive:     d.IsActive,
		OAuthProfile: datatypes.JSON(d.OAuthProfile),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.GoogleID != nil {
		user.GoogleID = *d.GoogleID
	}
	return user
}
