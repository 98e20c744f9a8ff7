package models

import "time"

// Video is a lesson belonging to a course. Order is the lesson sequence
// position; it is not required to be unique or contiguous.
type Video struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"videoUrl"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Duration    int       `json:"duration"` // seconds
	Order       int       `json:"order"`
	IsPublished bool      `json:"isPublished"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VideoPatch carries a partial update; nil fields keep the stored value.
type VideoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"videoUrl"`
	Thumbnail   *string `json:"thumbnail"`
	Duration    *int    `json:"duration"`
	Order       *int    `json:"order"`
	IsPublished *bool   `json:"isPublished"`
}
