// Package seed creates the demo accounts on startup when they are absent.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustblog/rustblog/internal/common"
	"github.com/rustblog/rustblog/internal/dbx"
	"github.com/rustblog/rustblog/internal/server/repositories/users"
	"github.com/rustblog/rustblog/internal/server/services"
)

func createUser(ctx context.Context, svc *services.UserService, username, email, password string) error {
	_, err := svc.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	if _, err := svc.Create(ctx, email, username, password); err != nil {
		return fmt.Errorf("failed to create %s: %w", username, err)
	}
	return nil
}

// InitDemo seeds the demo users, all-or-nothing.
func InitDemo(ctx context.Context, db *sql.DB) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		svc := services.NewUserService(users.NewPostgresRepository(tx))

		if err := createUser(ctx, svc, "jonn", "john@rustblog.com", "password"); err != nil {
			return err
		}
		return createUser(ctx, svc, "jane", "jane@rustblog.com", "password")
	})
}
