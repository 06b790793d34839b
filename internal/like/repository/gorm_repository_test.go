package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tair/article-likes/internal/like/domain"
	"github.com/tair/article-likes/pkg/database"
)

func setupTestRepo(t *testing.T) *GormLikeRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormOptions())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every new connection would see its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	repo := NewGormLikeRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for failure paths.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), database.GormOptions())
	require.NoError(t, err)
	return db, mock
}

func TestGormLikeRepository_CreateAndFind(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	like := &domain.Like{ArticleID: 1, UserID: 5}
	require.NoError(t, repo.Create(ctx, like))
	assert.NotZero(t, like.ID)
	assert.False(t, like.CreatedAt.IsZero())

	found, err := repo.FindByArticleAndUser(ctx, 1, 5)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, like.ID, found.ID)

	missing, err := repo.FindByArticleAndUser(ctx, 1, 6)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGormLikeRepository_DuplicatePairIsConflict(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Like{ArticleID: 1, UserID: 5}))

	err := repo.Create(ctx, &domain.Like{ArticleID: 1, UserID: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, domain.MsgAlreadyLiked, err.Error())

	// same user on another article and another user on the same article are fine
	require.NoError(t, repo.Create(ctx, &domain.Like{ArticleID: 2, UserID: 5}))
	require.NoError(t, repo.Create(ctx, &domain.Like{ArticleID: 1, UserID: 6}))

	count, err := repo.CountByArticle(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormLikeRepository_FindByArticlePaginates(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for userID := uint(1); userID <= 15; userID++ {
		require.NoError(t, repo.Create(ctx, &domain.Like{ArticleID: 7, UserID: userID}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Like{ArticleID: 8, UserID: 1}))

	first, err := repo.FindByArticle(ctx, 7, 10, 0)
	require.NoError(t, err)
	assert.Len(t, first, 10)
	assert.Equal(t, uint(1), first[0].UserID)

	second, err := repo.FindByArticle(ctx, 7, 10, 10)
	require.NoError(t, err)
	assert.Len(t, second, 5)
	assert.Equal(t, uint(11), second[0].UserID)

	for _, l := range append(first, second...) {
		assert.Equal(t, uint(7), l.ArticleID)
	}

	none, err := repo.FindByArticle(ctx, 99, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormLikeRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	like := &domain.Like{ArticleID: 1, UserID: 5}
	require.NoError(t, repo.Create(ctx, like))

	require.NoError(t, repo.Delete(ctx, like))

	found, err := repo.FindByArticleAndUser(ctx, 1, 5)
	require.NoError(t, err)
	assert.Nil(t, found)

	err = repo.Delete(ctx, like)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// a hard delete frees the pair for a new like
	require.NoError(t, repo.Create(ctx, &domain.Like{ArticleID: 1, UserID: 5}))
}

func TestGormLikeRepository_StoreFailuresPropagate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormLikeRepository(db)
	ctx := context.Background()
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "likes" WHERE article_id = $1 AND user_id = $2`)).
		WillReturnError(boom)

	_, err := repo.FindByArticleAndUser(ctx, 1, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE article_id = $1`)).
		WillReturnError(boom)

	_, err = repo.CountByArticle(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	require.NoError(t, mock.ExpectationsWereMet())
}
