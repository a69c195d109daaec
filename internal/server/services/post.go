package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/logging"
	"github.com/rustblog/rustblog/internal/server/models"
	"github.com/rustblog/rustblog/internal/server/repositories/posts"
	"github.com/rustblog/rustblog/internal/server/storage"
)

// PostService implements post CRUD and the image attach/replace/delete
// protocol against the blob store. Every mutation preserves the
// invariant that a non-nil image_id points at an existing blob.
type PostService struct {
	repo   posts.Repository
	store  storage.Store
	logger logging.Logger
}

func NewPostService(repo posts.Repository, store storage.Store, logger logging.Logger) *PostService {
	return &PostService{repo: repo, store: store, logger: logger}
}

func (s *PostService) GetAll(ctx context.Context) ([]*models.Post, error) {
	return s.repo.GetAll(ctx)
}

func (s *PostService) GetOne(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.repo.GetOne(ctx, id)
}

func (s *PostService) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	return s.repo.Create(ctx, post)
}

// Update rewrites title and body only. Authorship, image reference and
// timestamps are preserved because they are never copied from the
// incoming value.
func (s *PostService) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	existing, err := s.repo.GetOne(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = post.Title
	existing.Body = post.Body

	return s.repo.Update(ctx, existing)
}

// AddImage attaches content to the post, replacing any previous image.
// Ordering is upload-new, swap pointer, delete-old: a crash at any point
// leaves the post's image_id pointing at an existing blob. The old blob
// is deleted best effort; a leftover is reclaimable offline.
func (s *PostService) AddImage(ctx context.Context, id uuid.UUID, content []byte, contentType string) (*models.Post, error) {
	post, err := s.repo.GetOne(ctx, id)
	if err != nil {
		return nil, err
	}

	imageID, err := s.store.Save(ctx, content, contentType)
	if err != nil {
		return nil, fmt.Errorf("error saving image: %w", err)
	}

	oldImageID := post.ImageID
	post.ImageID = imageID

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		if delErr := s.store.Delete(ctx, imageID); delErr != nil {
			s.logger.Warn(ctx, "error deleting orphaned image", "image_id", imageID, "error", delErr)
		}
		return nil, fmt.Errorf("error updating post: %w", err)
	}

	if oldImageID != uuid.Nil {
		if err := s.store.Delete(ctx, oldImageID); err != nil {
			s.logger.Warn(ctx, "error deleting replaced image", "image_id", oldImageID, "error", err)
		}
	}

	return updated, nil
}

// Delete removes the post and its image. The blob goes first: if that
// fails the post is left intact rather than half-deleted.
func (s *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	post, err := s.repo.GetOne(ctx, id)
	if err != nil {
		return err
	}

	if post.ImageID != uuid.Nil {
		if err := s.store.Delete(ctx, post.ImageID); err != nil {
			return fmt.Errorf("error deleting image: %w", err)
		}
	}

	return s.repo.Delete(ctx, id)
}
