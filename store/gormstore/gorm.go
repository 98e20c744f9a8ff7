// Package gormstore implements the entity repositories on a relational
// database through GORM. Production runs on Postgres; the test suite uses
// the SQLite driver against the same code path.
package gormstore

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"learnhub/store"
)

// New migrates the schema and returns the repository set bound to db.
func New(db *gorm.DB) (store.Stores, error) {
	if err := db.AutoMigrate(&userRow{}, &courseRow{}, &videoRow{}); err != nil {
		return store.Stores{}, err
	}
	return store.Stores{
		Users:   &userStore{db: db},
		Courses: &courseStore{db: db},
		Videos:  &videoStore{db: db},
	}, nil
}

type userRow struct {
	ID           uint    `gorm:"primaryKey"`
	GoogleID     *string `gorm:"uniqueIndex"`
	Email        string  `gorm:"uniqueIndex;not null"`
	Password     string
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Role         string `gorm:"default:'student'"`
	Bio          string
	Avatar       string
	IsActive     bool           `gorm:"default:true"`
	OAuthProfile datatypes.JSON
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type courseRow struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"not null"`
	Description   string `gorm:"type:text;not null"`
	Thumbnail     string
	Category      string `gorm:"index;not null"`
	InstructorID  uint   `gorm:"index;not null"`
	Price         float64
	OriginalPrice float64
	Duration      string
	Level         string `gorm:"default:'Beginner'"`
	IsPublished   bool   `gorm:"index;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (courseRow) TableName() string { return "courses" }

type videoRow struct {
	ID          uint   `gorm:"primaryKey"`
	CourseID    uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	VideoURL    string `gorm:"not null"`
	Thumbnail   string
	Duration    int `gorm:"not null"`
	Order       int `gorm:"column:lesson_order;not null"`
	IsPublished bool
	Views       int64 `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (videoRow) TableName() string { return "videos" }

// parseID maps the opaque identifier strings of the HTTP surface onto
// primary keys. Anything that is not a decimal integer behaves as an
// unknown record.
func parseID(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, store.ErrNotFound
	}
	return uint(n), nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}
