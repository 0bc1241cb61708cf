package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mvaldez/beautyshelf-backend/internal/users"
	"github.com/mvaldez/beautyshelf-backend/pkg/config"
	"github.com/mvaldez/beautyshelf-backend/pkg/db"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
	"github.com/mvaldez/beautyshelf-backend/pkg/security"
)

// Service implements credential signup and login on top of the users repo.
type Service struct {
	users *users.Repository
	pwCfg config.PasswordConfig
}

// NewService constructs the auth service.
func NewService(usersRepo *users.Repository, pwCfg config.PasswordConfig) (*Service, error) {
	if usersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "auth: users repository is required")
	}
	return &Service{users: usersRepo, pwCfg: pwCfg}, nil
}

// Signup registers a new account. Duplicate usernames and emails are rejected
// before any row is written; the unique indexes backstop concurrent signups.
func (s *Service) Signup(ctx context.Context, dto SignupDTO) (*users.UserDTO, error) {
	if _, err := s.users.FindByUsername(ctx, dto.Username); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "auth: username lookup failed")
	}

	if _, err := s.users.FindByEmail(ctx, dto.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "auth: email lookup failed")
	}

	hash, err := security.HashPassword(dto.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "auth: password hashing failed")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        dto.Email,
		Username:     dto.Username,
		ImageURL:     dto.ImageURL,
		PasswordHash: hash,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username or email already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "auth: user creation failed")
	}

	result := users.FromModel(user)
	return &result, nil
}

// Login verifies the credentials and returns the matching account. Unknown
// usernames and wrong passwords produce the same error so callers cannot
// probe for registered names.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*users.UserDTO, error) {
	invalid := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid username or password")

	user, err := s.users.FindByUsername(ctx, dto.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "auth: username lookup failed")
	}

	match, err := security.VerifyPassword(dto.Password, user.PasswordHash)
	if err != nil || !match {
		return nil, invalid
	}

	result := users.FromModel(user)
	return &result, nil
}
