package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/article-likes/pkg/logger"
)

type row struct {
	ID   uint
	Name string
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger.Logger
	logger.Logger = zerolog.New(&buf)
	t.Cleanup(func() { logger.Logger = prev })
	return &buf
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), GormOptions())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestGormLogger_SkipsRecordNotFound(t *testing.T) {
	buf := captureLogs(t)

	db := openSQLite(t)
	require.NoError(t, db.AutoMigrate(&row{}))

	var r row
	err := db.First(&r, "name = ?", "missing").Error
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	assert.Empty(t, buf.String())
}

func TestGormLogger_QueryErrorCarriesTraceID(t *testing.T) {
	buf := captureLogs(t)
	db := openSQLite(t)

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "query")
	defer span.End()

	var r row
	require.Error(t, db.WithContext(ctx).Table("no_such_table").First(&r).Error)

	out := buf.String()
	assert.Contains(t, out, "GORM query error")
	assert.Contains(t, out, "no_such_table")
	assert.Contains(t, out, span.SpanContext().TraceID().String())
}

func TestGormLogger_Levels(t *testing.T) {
	buf := captureLogs(t)
	l := NewGormLogger()
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT 1", 1 }

	l.Info(ctx, "hidden %d", 1)
	l.Trace(ctx, time.Now(), query, nil)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	assert.Contains(t, buf.String(), "GORM slow query")

	buf.Reset()
	l.LogMode(gormlogger.Silent).Trace(ctx, time.Now(), query, errors.New("boom"))
	assert.Empty(t, buf.String())

	l.LogMode(gormlogger.Info).Info(ctx, "shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}
