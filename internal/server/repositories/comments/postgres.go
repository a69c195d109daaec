package comments

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

func (r *PostgresRepository) GetAllForPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	query :=
		`SELECT id, body, user_id, post_id, created_at, updated_at FROM comments
		 WHERE post_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Comment{}
	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(&comment.ID, &comment.Body, &comment.UserID, &comment.PostID,
			&comment.CreatedAt, &comment.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetOne(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query :=
		`SELECT id, body, user_id, post_id, created_at, updated_at FROM comments
		 WHERE id = $1
		 `

	comment := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.Body, &comment.UserID, &comment.PostID,
		&comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (body, user_id, post_id)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.Body, comment.UserID, comment.PostID).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) Update(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query :=
		`UPDATE comments
		 SET body = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, comment.Body, comment.ID).Scan(&comment.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}
