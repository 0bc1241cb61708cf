package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldez/beautyshelf-backend/pkg/config"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
	"github.com/mvaldez/beautyshelf-backend/pkg/security"
)

func newTestService(t *testing.T) (*Service, *Repository) {
	t.Helper()

	repo := NewRepository(setupUsersTestDB(t))
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func createTestUser(t *testing.T, repo *Repository, username, password string) *UserDTO {
	t.Helper()

	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	})
	require.NoError(t, err)

	user, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: hash,
	})
	require.NoError(t, err)
	dto := FromModel(user)
	return &dto
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), uuid.New())
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestServiceUpdateProfileRequiresPassword(t *testing.T) {
	svc, repo := newTestService(t)
	user := createTestUser(t, repo, "alice", "secret1")

	_, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileDTO{
		Email:    "alice@example.com",
		Username: "alice",
	}, "wrong")
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeUnauthorized, coded.Code())

	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileDTO{
		Email:    "alice@example.com",
		Username: "alice_v2",
	}, "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice_v2", updated.Username)
	assert.NotEmpty(t, updated.ImageURL)
}

func TestServiceDeleteAccount(t *testing.T) {
	svc, repo := newTestService(t)
	user := createTestUser(t, repo, "alice", "secret1")

	err := svc.DeleteAccount(context.Background(), user.ID, "wrong")
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeUnauthorized, coded.Code())

	require.NoError(t, svc.DeleteAccount(context.Background(), user.ID, "secret1"))

	_, err = svc.GetByID(context.Background(), user.ID)
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
