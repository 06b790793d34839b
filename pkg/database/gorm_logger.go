package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/article-likes/pkg/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger routes gorm's logs through the service logger so query lines
// carry the trace and span IDs of the request that issued them.
type GormLogger struct {
	Config gormlogger.Config
}

// NewGormLogger returns a warn-level gorm logger that ignores ErrRecordNotFound
func NewGormLogger() *GormLogger {
	return &GormLogger{
		Config: gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	}
}

// LogMode sets the logging level and returns a new instance
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.Config.LogLevel = level
	return &newLogger
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= gormlogger.Info {
		logger.Info(ctx).Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= gormlogger.Warn {
		logger.Warn(ctx).Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= gormlogger.Error {
		logger.Error(ctx).Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace logs failed, slow and (at info level) all queries
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Config.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	notFound := errors.Is(err, gorm.ErrRecordNotFound) && l.Config.IgnoreRecordNotFoundError

	switch {
	case err != nil && !notFound && l.Config.LogLevel >= gormlogger.Error:
		sql, rows := fc()
		logger.Error(ctx).
			Err(err).
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("GORM query error")
	case l.Config.SlowThreshold != 0 && elapsed > l.Config.SlowThreshold && l.Config.LogLevel >= gormlogger.Warn:
		sql, rows := fc()
		logger.Warn(ctx).
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("GORM slow query")
	case l.Config.LogLevel >= gormlogger.Info:
		sql, rows := fc()
		logger.Info(ctx).
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("GORM query")
	}
}
