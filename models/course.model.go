package models

import "time"

// Level values for Course.Level
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelAllLevels    = "All Levels"
)

// Course is a published or draft catalog entry owned by an instructor.
type Course struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	Category      string    `json:"category"`
	InstructorID  string    `json:"instructorId"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice,omitempty"`
	Duration      string    `json:"duration,omitempty"` // free text, e.g. "40 hours"
	Level         string    `json:"level"`
	IsPublished   bool      `json:"isPublished"`
	Videos        []Video   `json:"videos,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CoursePatch carries a partial update; nil fields keep the stored value.
type CoursePatch struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Thumbnail     *string  `json:"thumbnail"`
	Category      *string  `json:"category"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Duration      *string  `json:"duration"`
	Level         *string  `json:"level"`
	IsPublished   *bool    `json:"isPublished"`
}
