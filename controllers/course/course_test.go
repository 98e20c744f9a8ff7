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
	"learnhub/store/gormstore"
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Pages int64 `json:"pages"`
	} `json:"pagination"`
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
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func seedInstructor(t *testing.T) *models.User {
	t.Helper()
	user := &models.User{
		Email:     fmt.Sprintf("%s@example.com", strings.ToLower(t.Name())),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      models.RoleInstructor,
		IsActive:  true,
	}
	require.NoError(t, database.Stores.Users.Create(context.Background(), user))
	return user
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

func TestCreateCourseDefaults(t *testing.T) {
	app := setupApp(t)
	instructor := seedInstructor(t)

	body := fmt.Sprintf(`{"title":"X","description":"Y","category":"Web","instructorId":"%s"}`, instructor.ID)
	resp, env := doJSON(t, app, "POST", "/api/courses", body)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var course models.Course
	require.NoError(t, json.Unmarshal(env.Data, &course))
	assert.Equal(t, models.LevelBeginner, course.Level)
	assert.Zero(t, course.Price)
	assert.False(t, course.IsPublished)
}

func TestCreateCourseMissingFields(t *testing.T) {
	app := setupApp(t)

	resp, env := doJSON(t, app, "POST", "/api/courses", `{"title":"X"}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Missing required fields", env.Message)
}

func TestCreateCourseUnknownInstructor(t *testing.T) {
	app := setupApp(t)

	body := `{"title":"X","description":"Y","category":"Web","instructorId":"999"}`
	resp, env := doJSON(t, app, "POST", "/api/courses", body)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestListCoursesDefaultsOnBadQuery(t *testing.T) {
	app := setupApp(t)
	instructor := seedInstructor(t)

	for i := 0; i < 12; i++ {
		course := &models.Course{
			Title: "C", Description: "D", Category: "Web",
			InstructorID: instructor.ID, IsPublished: true,
		}
		require.NoError(t, database.Stores.Courses.Create(context.Background(), course))
	}

	resp, env := doJSON(t, app, "GET", "/api/courses?page=abc&limit=-5", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.Page)
	assert.Equal(t, 10, env.Pagination.Limit)
	assert.EqualValues(t, 12, env.Pagination.Total)
	assert.EqualValues(t, 2, env.Pagination.Pages)

	var courses []models.Course
	require.NoError(t, json.Unmarshal(env.Data, &courses))
	assert.Len(t, courses, 10)
}

func TestListCoursesHidesDrafts(t *testing.T) {
	app := setupApp(t)
	instructor := seedInstructor(t)

	draft := &models.Course{
		Title: "Draft", Description: "D", Category: "Web",
		InstructorID: instructor.ID,
	}
	require.NoError(t, database.Stores.Courses.Create(context.Background(), draft))

	resp, env := doJSON(t, app, "GET", "/api/courses", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 0, env.Pagination.Total)
}

func TestGetCourseByIdNotFound(t *testing.T) {
	app := setupApp(t)

	resp, env := doJSON(t, app, "GET", "/api/courses/9999", "")

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Course not found", env.Message)
}

func TestGetCourseByIdWithSortedVideos(t *testing.T) {
	app := setupApp(t)
	instructor := seedInstructor(t)

	course := &models.Course{
		Title: "C", Description: "D", Category: "Web",
		InstructorID: instructor.ID, IsPublished: true,
	}
	require.NoError(t, database.Stores.Courses.Create(context.Background(), course))
	for _, order := range []int{7, 0, 3} {
		video := &models.Video{
			CourseID: course.ID, Title: "L", VideoURL: "https://cdn.example.com/v.mp4",
			Duration: 60, Order: order,
		}
		require.NoError(t, database.Stores.Videos.Create(context.Background(), video))
	}

	resp, env := doJSON(t, app, "GET", "/api/courses/"+course.ID, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got models.Course
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.Videos, 3)
	assert.Equal(t, 0, got.Videos[0].Order)
	assert.Equal(t, 3, got.Videos[1].Order)
	assert.Equal(t, 7, got.Videos[2].Order)
}

func TestUpdateCourseEmptyPatch(t *testing.T) {
	app := setupApp(t)
	instructor := seedInstructor(t)

	course := &models.Course{
		Title: "Stable", Description: "D", Category: "Web",
		InstructorID: instructor.ID, IsPublished: true,
	}
	require.NoError(t, database.Stores.Courses.Create(context.Background(), course))

	resp, env := doJSON(t, app, "PUT", "/api/courses/"+course.ID, `{}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got models.Course
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Stable", got.Title)
	assert.Equal(t, course.Category, got.Category)
	assert.True(t, got.IsPublished)
}

func TestUpdateCourseNotFound(t *testing.T) {
	app := setupApp(t)

	resp, env := doJSON(t, app, "PUT", "/api/courses/777", `{"title":"New"}`)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Course not found", env.Message)
}

func TestListCoursesByCategory(t *testing.T) {
	app := setupApp(t)
	instructor := seedInstructor(t)

	for _, category := range []string{"Web", "Web", "Data"} {
		course := &models.Course{
			Title: "C", Description: "D", Category: category,
			InstructorID: instructor.ID, IsPublished: true,
		}
		require.NoError(t, database.Stores.Courses.Create(context.Background(), course))
	}

	resp, env := doJSON(t, app, "GET", "/api/courses/category/Web", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var courses []models.Course
	require.NoError(t, json.Unmarshal(env.Data, &courses))
	assert.Len(t, courses, 2)
}
