package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"commentary/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" ORDER BY id asc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body", "user_id", "created_at", "updated_at"}).
			AddRow(1, "Comment 1", 101, now, now).
			AddRow(2, "Comment 2", 102, now, now))

	// Preload User for each comment
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2)`)).
		WithArgs(101, 102).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(101, "user101").
			AddRow(102, "user102"))

	comments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Comment 1", comments[0].Body)
	require.NotNil(t, comments[1].User)
	assert.Equal(t, "user102", comments[1].User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_List_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body", "user_id"}))

	comments, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_List_StoreError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments"`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, 500, models.StatusCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_GetByID(t *testing.T) {
	tests := []struct {
		name         string
		mockBehavior func(mock sqlmock.Sqlmock)
		wantErr      bool
		wantNotFound bool
	}{
		{
			name: "found with user",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE "comments"."id" = $1`)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "body", "user_id"}).AddRow(7, "hello", 3))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(3, "alice"))
			},
		},
		{
			name: "not found",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE "comments"."id" = $1`)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "body", "user_id"}))
			},
			wantErr:      true,
			wantNotFound: true,
		},
		{
			name: "store failure",
			mockBehavior: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments"`)).
					WillReturnError(errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewCommentRepository(db)
			tt.mockBehavior(mock)

			comment, err := repo.GetByID(context.Background(), 7)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, comment)
				assert.Equal(t, tt.wantNotFound, models.IsNotFound(err))
				if tt.wantNotFound {
					assert.Equal(t, "Comment not found", err.Error())
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(7), comment.ID)
				require.NotNil(t, comment.User)
				assert.Equal(t, "alice", comment.User.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	comment := &models.Comment{Body: "Nice post!", UserID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), comment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Create_ForeignKeyViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnError(errors.New(`violates foreign key constraint "fk_comments_user"`))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Comment{Body: "x", UserID: 99})
	require.Error(t, err)
	assert.False(t, models.IsNotFound(err))
	assert.Equal(t, 500, models.StatusCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "comments" SET "body"=$1,"user_id"=$2`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &models.Comment{ID: 5, Body: "edited", UserID: 2})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE "comments"."id" = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
