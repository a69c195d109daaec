package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/common"
	"github.com/rustblog/rustblog/internal/dbx"
	"github.com/rustblog/rustblog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPost(row interface{ Scan(dest ...any) error }, post *models.Post) error {
	return row.Scan(&post.ID, &post.Title, &post.Body, &post.ImageID, &post.UserID,
		&post.CreatedAt, &post.UpdatedAt)
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Post, error) {
	query :=
		`SELECT id, title, body, image_id, user_id, created_at, updated_at FROM posts
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		post := &models.Post{}
		if err := scanPost(rows, post); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetOne(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query :=
		`SELECT id, title, body, image_id, user_id, created_at, updated_at FROM posts
		 WHERE id = $1
		 `

	post := &models.Post{}
	err := scanPost(r.db.QueryRowContext(ctx, query, id), post)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`INSERT INTO posts (title, body, image_id, user_id)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Body, post.ImageID, post.UserID).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`UPDATE posts
		 SET title = $1, body = $2, image_id = $3, updated_at = now()
		 WHERE id = $4
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Body, post.ImageID, post.ID).Scan(&post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query :=
		`DELETE FROM posts
		 WHERE id = $1
		 `

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
