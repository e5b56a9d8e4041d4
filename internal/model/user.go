package model

import (
	"time"
)

// Roles a user can hold. Role changes outside this set are rejected.
const (
	RoleUser      = "User"
	RoleAdmin     = "Admin"
	RoleModerator = "Moderator"
)

// ValidRole reports whether the given role is part of the fixed enumeration
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// User represents the user model stored in the database
type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Username       string     `json:"username" gorm:"type:varchar(100);not null"`
	Email          string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password       string     `json:"-" gorm:"type:varchar(255);not null"`
	Role           string     `json:"role" gorm:"type:varchar(20);not null;default:'User'"`
	ProfilePicture string     `json:"profile_picture,omitempty" gorm:"type:varchar(255)"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName keeps the table name used by the existing schema
func (User) TableName() string {
	return "users"
}
