package comments

import (
	"context"

	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/server/models"
)

type Repository interface {
	GetAllForPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	GetOne(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) (*models.Comment, error)
}
