package gormstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learnhub/models"
	"learnhub/store"
)

func newTestStores(t *testing.T) store.Stores {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and
	// serializes writers.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	stores, err := New(db)
	require.NoError(t, err)
	return stores
}

func seedUser(t *testing.T, stores store.Stores) *models.User {
	t.Helper()

	user := &models.User{
		Email:     fmt.Sprintf("%s@example.com", t.Name()),
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      models.RoleInstructor,
		IsActive:  true,
	}
	require.NoError(t, stores.Users.Create(context.Background(), user))
	return user
}

func seedCourse(t *testing.T, stores store.Stores, instructorID string, published bool) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:        "Go from Scratch",
		Description:  "Everything about Go",
		Category:     "Programming",
		InstructorID: instructorID,
		IsPublished:  published,
	}
	require.NoError(t, stores.Courses.Create(context.Background(), course))
	return course
}

func seedVideo(t *testing.T, stores store.Stores, courseID string, order int, published bool) *models.Video {
	t.Helper()

	video := &models.Video{
		CourseID:    courseID,
		Title:       fmt.Sprintf("Lesson %d", order),
		VideoURL:    "https://cdn.example.com/lesson.mp4",
		Duration:    300,
		Order:       order,
		IsPublished: published,
	}
	require.NoError(t, stores.Videos.Create(context.Background(), video))
	return video
}
