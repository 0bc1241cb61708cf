package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
)

// ReviewDTO is the rendered view of one review.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	ProductID uuid.UUID `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReviewDTO carries a validated review submission. UserID is always the
// acting user resolved from the session, never client input.
type CreateReviewDTO struct {
	Text      string
	UserID    uuid.UUID
	ProductID uuid.UUID
}

// FromModel converts a stored review, carrying the author's username when the
// association was preloaded.
func FromModel(r *models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:        r.ID,
		Text:      r.Text,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil {
		dto.Username = r.User.Username
	}
	return dto
}
