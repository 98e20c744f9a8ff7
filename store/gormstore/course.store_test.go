package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/models"
	"learnhub/store"
)

func TestCourseCreateDefaults(t *testing.T) {
	stores := newTestStores(t)
	instructor := seedUser(t, stores)

	course := &models.Course{
		Title:        "X",
		Description:  "Y",
		Category:     "Web",
		InstructorID: instructor.ID,
	}
	require.NoError(t, stores.Courses.Create(context.Background(), course))

	assert.NotEmpty(t, course.ID)
	assert.Equal(t, models.LevelBeginner, course.Level)
	assert.Zero(t, course.Price)
	assert.False(t, course.IsPublished)
	assert.Equal(t, instructor.ID, course.InstructorID)
}

func TestCourseCreateMalformedInstructorID(t *testing.T) {
	stores := newTestStores(t)

	malformed := &models.Course{
		Title:        "X",
		Description:  "Y",
		Category:     "Web",
		InstructorID: "not-an-id",
	}
	assert.ErrorIs(t, stores.Courses.Create(context.Background(), malformed), store.ErrNotFound)
}

func TestCourseCreateUnknownInstructor(t *testing.T) {
	stores := newTestStores(t)

	orphan := &models.Course{
		Title:        "X",
		Description:  "Y",
		Category:     "Web",
		InstructorID: "4242",
	}
	assert.ErrorIs(t, stores.Courses.Create(context.Background(), orphan), store.ErrNotFound)
}

func TestCourseListPublishedPagination(t *testing.T) {
	stores := newTestStores(t)
	instructor := seedUser(t, stores)

	for i := 0; i < 7; i++ {
		seedCourse(t, stores, instructor.ID, true)
		time.Sleep(2 * time.Millisecond)
	}
	seedCourse(t, stores, instructor.ID, false) // drafts stay hidden

	page, err := stores.Courses.ListPublished(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.EqualValues(t, 7, page.Total)
	assert.EqualValues(t, 3, page.Pages())

	last, err := stores.Courses.ListPublished(context.Background(), 3, 3)
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)

	beyond, err := stores.Courses.ListPublished(context.Background(), 4, 3)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
}

func TestCourseListPublishedNewestFirst(t *testing.T) {
	stores := newTestStores(t)
	instructor := seedUser(t, stores)

	first := seedCourse(t, stores, instructor.ID, true)
	time.Sleep(2 * time.Millisecond)
	second := seedCourse(t, stores, instructor.ID, true)

	page, err := stores.Courses.ListPublished(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, second.ID, page.Items[0].ID)
	assert.Equal(t, first.ID, page.Items[1].ID)
}

func TestCourseListByCategory(t *testing.T) {
	stores := newTestStores(t)
	instructor := seedUser(t, stores)

	web := &models.Course{
		Title: "W", Description: "D", Category: "Web",
		InstructorID: instructor.ID, IsPublished: true,
	}
	require.NoError(t, stores.Courses.Create(context.Background(), web))
	data := &models.Course{
		Title: "D", Description: "D", Category: "Data",
		InstructorID: instructor.ID, IsPublished: true,
	}
	require.NoError(t, stores.Courses.Create(context.Background(), data))
	draft := &models.Course{
		Title: "W2", Description: "D", Category: "Web",
		InstructorID: instructor.ID,
	}
	require.NoError(t, stores.Courses.Create(context.Background(), draft))

	courses, err := stores.Courses.ListByCategory(context.Background(), "Web")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, web.ID, courses[0].ID)

	none, err := stores.Courses.ListByCategory(context.Background(), "web")
	require.NoError(t, err)
	assert.Empty(t, none) // exact match only
}

func TestCourseFindByIDWithVideosSorted(t *testing.T) {
	stores := newTestStores(t)
	instructor := seedUser(t, stores)
	course := seedCourse(t, stores, instructor.ID, true)

	seedVideo(t, stores, course.ID, 5, true)
	seedVideo(t, stores, course.ID, 0, false)
	seedVideo(t, stores, course.ID, 2, true)

	got, err := stores.Courses.FindByIDWithVideos(context.Background(), course.ID)
	require.NoError(t, err)
	require.Len(t, got.Videos, 3)
	assert.Equal(t, 0, got.Videos[0].Order)
	assert.Equal(t, 2, got.Videos[1].Order)
	assert.Equal(t, 5, got.Videos[2].Order)
}

func TestCourseFindByIDNotFound(t *testing.T) {
	stores := newTestStores(t)

	_, err := stores.Courses.FindByID(context.Background(), "12345")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = stores.Courses.FindByID(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCourseUpdateMergesOmittedFields(t *testing.T) {
	stores := newTestStores(t)
	instructor := seedUser(t, stores)
	course := seedCourse(t, stores, instructor.ID, false)

	newTitle := "Renamed"
	published := true
	updated, err := stores.Courses.Update(context.Background(), course.ID, models.CoursePatch{
		Title:       &newTitle,
		IsPublished: &published,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.IsPublished)
	assert.Equal(t, course.Description, updated.Description)
	assert.Equal(t, course.Category, updated.Category)
	assert.Equal(t, course.Level, updated.Level)
}

func TestCourseUpdateEmptyPatchIsNoOp(t *testing.T) {
	stores := newTestStores(t)
	instructor := seedUser(t, stores)
	course := seedCourse(t, stores, instructor.ID, true)

	updated, err := stores.Courses.Update(context.Background(), course.ID, models.CoursePatch{})
	require.NoError(t, err)
	assert.Equal(t, course.Title, updated.Title)
	assert.Equal(t, course.Description, updated.Description)
	assert.Equal(t, course.Category, updated.Category)
	assert.Equal(t, course.Price, updated.Price)
	assert.Equal(t, course.IsPublished, updated.IsPublished)
}

func TestCourseDeleteCascadesToVideos(t *testing.T) {
	stores := newTestStores(t)
	instructor := seedUser(t, stores)
	course := seedCourse(t, stores, instructor.ID, true)
	other := seedCourse(t, stores, instructor.ID, true)

	seedVideo(t, stores, course.ID, 1, true)
	seedVideo(t, stores, course.ID, 2, true)
	kept := seedVideo(t, stores, other.ID, 1, true)

	require.NoError(t, stores.Courses.Delete(context.Background(), course.ID))

	_, err := stores.Courses.FindByID(context.Background(), course.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	videos, err := stores.Videos.ListByCourse(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Empty(t, videos)

	// The sibling course keeps its videos.
	remaining, err := stores.Videos.ListByCourse(context.Background(), other.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}

func TestCourseDeleteNotFound(t *testing.T) {
	stores := newTestStores(t)

	assert.ErrorIs(t, stores.Courses.Delete(context.Background(), "424242"), store.ErrNotFound)
}
