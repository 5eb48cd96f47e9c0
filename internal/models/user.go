package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account stored in PostgreSQL
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"size:30;uniqueIndex"`
	Email      string    `json:"email" gorm:"uniqueIndex"`
	Password   string    `json:"-"` // bcrypt hash, never serialized
	Bio        string    `json:"bio"`
	ProfilePic string    `json:"profilePic"`
	CoverPic   string    `json:"coverPic"`
	IsAdmin    bool      `json:"isAdmin" gorm:"default:false"`
	IsBanned   bool      `json:"isBanned" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

// UserCompact is the public slice of a user attached to posts, comments and notifications
type UserCompact struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}

// ToCompact returns the public representation of the user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Username:   u.Username,
		ProfilePic: u.ProfilePic,
	}
}

// RegisterRequest defines the request body for account registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for authentication
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for updating the own profile.
// Empty fields are left unchanged.
type UpdateProfileRequest struct {
	Username   string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Bio        string `json:"bio,omitempty" validate:"omitempty,max=300"`
	ProfilePic string `json:"profilePic,omitempty"`
	CoverPic   string `json:"coverPic,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
