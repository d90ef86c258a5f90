package models

import (
	"time"
)

// Account represents a registered user. The backing table is `users`; the
// optional columns (last_login, profile_picture*) may be missing on
// deployments that have not run every migration, so writes against them go
// through schema-aware repository paths.
type Account struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	Name                   string     `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	Email                  string     `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	Password               string     `gorm:"column:password;size:255;not null" json:"-"`
	CreatedAt              time.Time  `json:"created_at"`
	LastLogin              *time.Time `json:"last_login,omitempty"`
	ProfilePicture         *string    `gorm:"size:500" json:"profile_picture"`
	ProfilePicturePublicID *string    `gorm:"column:profile_picture_public_id;size:255" json:"profile_picture_public_id"`
}

// TableName keeps the historical table name.
func (Account) TableName() string { return "users" }

// PublicProfile is the slice of an account exposed on public portfolio pages.
type PublicProfile struct {
	Name                   string  `json:"name"`
	ProfilePicture         *string `json:"profile_picture"`
	ProfilePicturePublicID *string `json:"profile_picture_public_id"`
}
