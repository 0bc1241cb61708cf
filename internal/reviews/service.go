package reviews

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
)

// Service enforces review validation and ownership rules.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "reviews: repository is required")
	}
	return &Service{repo: repo}, nil
}

// Create validates the text and writes a review bound to the acting user.
func (s *Service) Create(ctx context.Context, actorID, productID uuid.UUID, text string) (*ReviewDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review text is required")
	}
	if len(text) > models.MaxReviewLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review text is too long")
	}

	review, err := s.repo.Create(ctx, CreateReviewDTO{
		Text:      text,
		UserID:    actorID,
		ProductID: productID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reviews: create failed")
	}
	dto := FromModel(review)
	return &dto, nil
}

// ListForProduct returns a product's reviews newest first.
func (s *Service) ListForProduct(ctx context.Context, productID uuid.UUID) ([]ReviewDTO, error) {
	rows, err := s.repo.ListForProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reviews: listing failed")
	}
	return toDTOs(rows), nil
}

// ListForUser returns the reviews written by one user, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]ReviewDTO, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reviews: listing failed")
	}
	return toDTOs(rows), nil
}

// Delete removes a review when the actor owns it.
func (s *Service) Delete(ctx context.Context, actorID, reviewID uuid.UUID) error {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reviews: lookup failed")
	}

	if review.UserID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the author can delete a review")
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reviews: delete failed")
	}
	return nil
}

func toDTOs(rows []models.Review) []ReviewDTO {
	dtos := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	return dtos
}
