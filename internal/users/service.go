package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvaldez/beautyshelf-backend/pkg/db"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
	"github.com/mvaldez/beautyshelf-backend/pkg/security"
)

// Service wraps profile lookup and self-service account management.
type Service struct {
	repo *Repository
}

// NewService constructs the users service.
func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "users: repository is required")
	}
	return &Service{repo: repo}, nil
}

// GetByID returns the profile for a single user.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "users: lookup failed")
	}
	dto := FromModel(user)
	return &dto, nil
}

// GetByUsername returns the profile matching a username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*UserDTO, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "users: lookup failed")
	}
	dto := FromModel(user)
	return &dto, nil
}

// Search lists users whose username contains the query. Empty query lists all.
func (s *Service) Search(ctx context.Context, query string) ([]UserDTO, error) {
	users, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "users: search failed")
	}
	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, FromModel(&users[i]))
	}
	return dtos, nil
}

// UpdateProfile changes the acting user's email, username, or avatar. The
// caller must re-confirm their current password before any change lands.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO, currentPassword string) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "users: lookup failed")
	}

	match, err := security.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "password confirmation failed")
	}

	if dto.ImageURL == "" {
		dto.ImageURL = user.ImageURL
	}

	if err := s.repo.UpdateProfile(ctx, id, dto); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email or username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "users: update failed")
	}

	return s.GetByID(ctx, id)
}

// DeleteAccount removes the acting user after password re-confirmation.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID, currentPassword string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "users: lookup failed")
	}

	match, err := security.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !match {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "password confirmation failed")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "users: delete failed")
	}
	return nil
}
