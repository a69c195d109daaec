package services

import (
	"context"
	"fmt"

	"github.com/rustblog/rustblog/internal/server/auth"
	"github.com/rustblog/rustblog/internal/server/models"
	"github.com/rustblog/rustblog/internal/server/repositories/users"
)

type UserService struct {
	repo users.Repository
}

func NewUserService(repo users.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// Create hashes the cleartext password and stores the new user.
func (s *UserService) Create(ctx context.Context, email, username, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, Username: username, Password: hash}
	return s.repo.Create(ctx, user)
}
