package like

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tair/article-likes/internal/config"
	"github.com/tair/article-likes/internal/like/repository"
	"github.com/tair/article-likes/pkg/database"
)

func TestInitializeService(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormOptions())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.NewGormLikeRepository(db).AutoMigrate())

	cfg := &config.Config{
		ArticleServiceURL: "http://articles.invalid",
		UserServiceURL:    "http://users.invalid",
		JWTSecret:         "secret",
		MaxPageSize:       50,
	}

	svc, err := InitializeService(db, nil, cfg, nil, prometheus.NewRegistry())
	require.NoError(t, err)
	require.NotNil(t, svc.Handler)
	assert.Len(t, svc.Breakers, 2)

	router := mux.NewRouter()
	svc.Handler.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/1/likes", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
