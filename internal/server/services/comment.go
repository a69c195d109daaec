package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/server/models"
	"github.com/rustblog/rustblog/internal/server/repositories/comments"
)

type CommentService struct {
	repo comments.Repository
}

func NewCommentService(repo comments.Repository) *CommentService {
	return &CommentService{repo: repo}
}

func (s *CommentService) GetAllForPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	return s.repo.GetAllForPost(ctx, postID)
}

func (s *CommentService) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	return s.repo.Create(ctx, comment)
}

// Update rewrites the body only; authorship and the post reference are
// preserved.
func (s *CommentService) Update(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	existing, err := s.repo.GetOne(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	existing.Body = comment.Body

	return s.repo.Update(ctx, existing)
}
