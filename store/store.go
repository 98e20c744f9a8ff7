package store

import (
	"context"
	"errors"

	"learnhub/models"
)

// Sentinel errors shared by every backend. Malformed identifiers are
// reported as ErrNotFound, not as a distinct kind.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserHasCourses = errors.New("user is instructor of existing courses")
)

// CoursePage is one page of a published-course listing.
type CoursePage struct {
	Items []models.Course
	Total int64
	Page  int
	Limit int
}

// Pages computes the derived page count for the response envelope.
func (p CoursePage) Pages() int64 {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + int64(p.Limit) - 1) / int64(p.Limit)
}

// UserRepository persists platform accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	// Delete fails with ErrUserHasCourses while the user is referenced as
	// instructor by any course.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
}

// CourseRepository persists catalog entries. Delete cascades to the
// course's videos.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindByIDWithVideos(ctx context.Context, id string) (*models.Course, error)
	ListPublished(ctx context.Context, page, limit int) (CoursePage, error)
	ListByCategory(ctx context.Context, category string) ([]models.Course, error)
	Update(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error)
	Delete(ctx context.Context, id string) error
	CountPublished(ctx context.Context) (int64, error)
}

// VideoRepository persists lessons.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	FindByID(ctx context.Context, id string) (*models.Video, error)
	// ViewByID atomically increments the view counter and returns the
	// updated video. Concurrent calls must not lose increments.
	ViewByID(ctx context.Context, id string) (*models.Video, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Video, error)
	Update(ctx context.Context, id string, patch models.VideoPatch) (*models.Video, error)
	Delete(ctx context.Context, id string) error
	TotalViews(ctx context.Context) (int64, error)
}

// Stores bundles the per-entity repositories of one backend.
type Stores struct {
	Users   UserRepository
	Courses CourseRepository
	Videos  VideoRepository
}
