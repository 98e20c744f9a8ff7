package controllers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learnhub/config"
	"learnhub/database"
	"learnhub/models"
	courseRoutes "learnhub/routers/courseRoutes"
	videoRoutes "learnhub/routers/videoRoutes"
	"learnhub/store/gormstore"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		JWTExpiry: time.Hour,
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	stores, err := gormstore.New(db)
	require.NoError(t, err)
	database.Stores = stores

	app := fiber.New()
	videoRoutes.SetupVideoRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func seedCourse(t *testing.T) *models.Course {
	t.Helper()

	instructor := &models.User{
		Email:     fmt.Sprintf("%s@example.com", strings.ToLower(t.Name())),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      models.RoleInstructor,
		IsActive:  true,
	}
	require.NoError(t, database.Stores.Users.Create(context.Background(), instructor))

	course := &models.Course{
		Title: "C", Description: "D", Category: "Web",
		InstructorID: instructor.ID, IsPublished: true,
	}
	require.NoError(t, database.Stores.Courses.Create(context.Background(), course))
	return course
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp, env
}

func TestCreateVideoUnknownCourse(t *testing.T) {
	app := setupApp(t)

	body := `{"courseId":"999","title":"L","videoUrl":"https://cdn.example.com/v.mp4","duration":60,"order":1}`
	resp, env := doJSON(t, app, "POST", "/api/videos", body)

	// An unresolved course is NotFound, never a validation failure.
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Course not found", env.Message)
}

func TestCreateVideoOrderZero(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t)

	body := fmt.Sprintf(`{"courseId":"%s","title":"Intro","videoUrl":"https://cdn.example.com/v.mp4","duration":90,"order":0}`, course.ID)
	resp, env := doJSON(t, app, "POST", "/api/videos", body)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var video models.Video
	require.NoError(t, json.Unmarshal(env.Data, &video))
	assert.Equal(t, 0, video.Order)
	assert.False(t, video.IsPublished)
}

func TestCreateVideoMissingOrder(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t)

	body := fmt.Sprintf(`{"courseId":"%s","title":"Intro","videoUrl":"https://cdn.example.com/v.mp4","duration":90}`, course.ID)
	resp, env := doJSON(t, app, "POST", "/api/videos", body)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", env.Message)
}

func TestGetVideoByIdCountsViews(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t)

	video := &models.Video{
		CourseID: course.ID, Title: "L", VideoURL: "https://cdn.example.com/v.mp4",
		Duration: 60, Order: 1, IsPublished: true,
	}
	require.NoError(t, database.Stores.Videos.Create(context.Background(), video))

	for i := 1; i <= 2; i++ {
		resp, env := doJSON(t, app, "GET", "/api/videos/"+video.ID, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got models.Video
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.EqualValues(t, i, got.Views)
	}
}

func TestGetVideoByIdNotFound(t *testing.T) {
	app := setupApp(t)

	resp, env := doJSON(t, app, "GET", "/api/videos/4242", "")

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Video not found", env.Message)
}

func TestListVideosByCourse(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t)

	for _, order := range []int{2, 0} {
		video := &models.Video{
			CourseID: course.ID, Title: "L", VideoURL: "https://cdn.example.com/v.mp4",
			Duration: 60, Order: order, IsPublished: true,
		}
		require.NoError(t, database.Stores.Videos.Create(context.Background(), video))
	}
	draft := &models.Video{
		CourseID: course.ID, Title: "Hidden", VideoURL: "https://cdn.example.com/v.mp4",
		Duration: 60, Order: 1,
	}
	require.NoError(t, database.Stores.Videos.Create(context.Background(), draft))

	resp, env := doJSON(t, app, "GET", "/api/videos/course/"+course.ID, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var videos []models.Video
	require.NoError(t, json.Unmarshal(env.Data, &videos))
	require.Len(t, videos, 2)
	assert.Equal(t, 0, videos[0].Order)
	assert.Equal(t, 2, videos[1].Order)
}

func TestDeleteCourseCascadesOverAPI(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t)

	video := &models.Video{
		CourseID: course.ID, Title: "L", VideoURL: "https://cdn.example.com/v.mp4",
		Duration: 60, Order: 1, IsPublished: true,
	}
	require.NoError(t, database.Stores.Videos.Create(context.Background(), video))

	resp, _ := doJSON(t, app, "DELETE", "/api/courses/"+course.ID, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, env := doJSON(t, app, "GET", "/api/videos/course/"+course.ID, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var videos []models.Video
	require.NoError(t, json.Unmarshal(env.Data, &videos))
	assert.Empty(t, videos)
}

func TestUpdateVideoMerge(t *testing.T) {
	app := setupApp(t)
	course := seedCourse(t)

	video := &models.Video{
		CourseID: course.ID, Title: "Old", VideoURL: "https://cdn.example.com/v.mp4",
		Duration: 60, Order: 1,
	}
	require.NoError(t, database.Stores.Videos.Create(context.Background(), video))

	resp, env := doJSON(t, app, "PUT", "/api/videos/"+video.ID, `{"isPublished":true}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got models.Video
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.IsPublished)
	assert.Equal(t, "Old", got.Title)
	assert.Equal(t, 60, got.Duration)
}
