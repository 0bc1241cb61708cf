package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultUserImageURL is applied when signup omits an image.
const DefaultUserImageURL = "/static/images/default-pic.png"

// User represents an account that writes reviews and keeps favorites.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:text;not null;uniqueIndex:idx_users_email"`
	Username     string    `gorm:"type:text;not null;uniqueIndex:idx_users_username"`
	ImageURL     string    `gorm:"column:image_url;not null;default:'/static/images/default-pic.png'"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Reviews   []Review   `gorm:"constraint:OnDelete:CASCADE"`
	Favorites []Favorite `gorm:"constraint:OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
