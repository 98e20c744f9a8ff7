package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role values for User.Role
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// User is an account on the platform. Password is empty for OAuth-only
// accounts and is never serialized.
type User struct {
	ID           string         `json:"id"`
	GoogleID     string         `json:"googleId,omitempty" bson:"google_id,omitempty"`
	Email        string         `json:"email"`
	Password     string         `json:"-"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Role         string         `json:"role"`
	Bio          string         `json:"bio,omitempty"`
	Avatar       string         `json:"avatar,omitempty"`
	IsActive     bool           `json:"isActive"`
	OAuthProfile datatypes.JSON `json:"-" bson:"oauth_profile,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// UserPatch carries a partial update; nil fields keep the stored value.
type UserPatch struct {
	GoogleID     *string        `json:"googleId"`
	FirstName    *string        `json:"firstName"`
	LastName     *string        `json:"lastName"`
	Role         *string        `json:"role"`
	Bio          *string        `json:"bio"`
	Avatar       *string        `json:"avatar"`
	IsActive     *bool          `json:"isActive"`
	OAuthProfile datatypes.JSON `json:"-"`
}
