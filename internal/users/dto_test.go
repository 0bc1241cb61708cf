package users

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
)

func TestFromModelMapsProfileFields(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Username:     "alice",
		ImageURL:     "https://pics.example.com/alice.png",
		PasswordHash: "$argon2id$...",
		CreatedAt:    created,
	}

	dto := FromModel(user)
	assert.Equal(t, UserDTO{
		ID:        user.ID,
		Email:     "alice@example.com",
		Username:  "alice",
		ImageURL:  "https://pics.example.com/alice.png",
		CreatedAt: created,
	}, dto)
}

func TestToModelAppliesDefaultImage(t *testing.T) {
	model := CreateUserDTO{
		Email:        "bob@example.com",
		Username:     "bob",
		PasswordHash: "hash",
	}.ToModel()
	assert.Equal(t, models.DefaultUserImageURL, model.ImageURL)
}
