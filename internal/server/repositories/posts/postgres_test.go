package posts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/rustblog/rustblog/internal/common"
	"github.com/rustblog/rustblog/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func postColumns() []string {
	return []string{"id", "title", "body", "image_id", "user_id", "created_at", "updated_at"}
}

func TestGetAll_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*title,\s*body,\s*image_id,\s*user_id,\s*created_at,\s*updated_at\s+FROM\s+posts\s+ORDER\s+BY\s+created_at\s*$`

	now := time.Now()
	id1, id2 := uuid.New(), uuid.New()
	userID := uuid.New()
	rows := sqlmock.NewRows(postColumns()).
		AddRow(id1, "first", "body1", uuid.Nil, userID, now, now).
		AddRow(id2, "second", "body2", uuid.New(), userID, now, now)
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(got) != 2 || got[0].ID != id1 || got[1].ID != id2 {
		t.Fatalf("unexpected posts: %+v", got)
	}
	if got[0].ImageID != uuid.Nil {
		t.Fatalf("expected nil image id, got %v", got[0].ImageID)
	}
}

func TestGetOne_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*title,\s*body,\s*image_id,\s*user_id,\s*created_at,\s*updated_at\s+FROM\s+posts\s+WHERE\s+id\s*=\s*\$1\s*$`

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(postColumns()).AddRow(id, "hello", "world", uuid.Nil, uuid.New(), now, now)
	mock.ExpectQuery(q).WithArgs(id).WillReturnRows(rows)

	got, err := repo.GetOne(context.Background(), id)
	if err != nil {
		t.Fatalf("GetOne error: %v", err)
	}
	if got.ID != id || got.Title != "hello" {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestGetOne_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*title`).WithArgs(id).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetOne(context.Background(), id)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+posts\s*\(title,\s*body,\s*image_id,\s*user_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

	id := uuid.New()
	userID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now)
	mock.ExpectQuery(q).
		WithArgs("hello", "world", uuid.Nil, userID).
		WillReturnRows(rows)

	post := &models.Post{Title: "hello", Body: "world", UserID: userID}
	got, err := repo.Create(context.Background(), post)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != id {
		t.Fatalf("unexpected post id: %v", got.ID)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+posts\s+SET\s+title\s*=\s*\$1,\s*body\s*=\s*\$2,\s*image_id\s*=\s*\$3,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$4\s+RETURNING\s+updated_at\s*$`

	id := uuid.New()
	imageID := uuid.New()
	updated := time.Now()
	rows := sqlmock.NewRows([]string{"updated_at"}).AddRow(updated)
	mock.ExpectQuery(q).
		WithArgs("new title", "new body", imageID, id).
		WillReturnRows(rows)

	post := &models.Post{ID: id, Title: "new title", Body: "new body", ImageID: imageID}
	got, err := repo.Update(context.Background(), post)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !got.UpdatedAt.Equal(updated) {
		t.Fatalf("unexpected updated_at: %v", got.UpdatedAt)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`(?s)^UPDATE\s+posts`).
		WithArgs("t", "b", uuid.Nil, id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Post{ID: id, Title: "t", Body: "b"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+posts\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+posts`).
		WithArgs(id).
		WillReturnError(errors.New("db down"))

	err := repo.Delete(context.Background(), id)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
