package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	Username     string
	ImageURL     string
	PasswordHash string
}

// UpdateProfileDTO carries the editable profile fields.
type UpdateProfileDTO struct {
	Email    string
	Username string
	ImageURL string
}

func FromModel(u *models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	imageURL := c.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultUserImageURL
	}

	return &models.User{
		Email:        c.Email,
		Username:     c.Username,
		ImageURL:     imageURL,
		PasswordHash: c.PasswordHash,
	}
}
