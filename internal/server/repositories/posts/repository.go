package posts

import (
	"context"

	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/server/models"
)

type Repository interface {
	GetAll(ctx context.Context) ([]*models.Post, error)
	GetOne(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
