package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"myboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// Store failures must surface immediately as internal errors; nothing in the
// data layer retries.
func TestRepositories_StoreFailureSurfaces(t *testing.T) {
	boom := errors.New("connection reset by peer")

	t.Run("account lookup", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewAccountRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "accounts" WHERE user_id = $1 ORDER BY "accounts"."id" LIMIT $2`)).
			WithArgs("alice", 1).
			WillReturnError(boom)

		_, err := repo.GetByUserID(context.Background(), "alice")
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("post listing", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE writer IN ($1) ORDER BY created_at DESC`)).
			WithArgs("alice").
			WillReturnError(boom)

		_, err := repo.ListByWriters(context.Background(), []string{"alice"})
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("friend edge insert", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewFriendRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "friends"`)).
			WillReturnError(boom)
		mock.ExpectRollback()

		err := repo.Add(context.Background(), "alice", "bob")
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	})
}
