package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/goldenhive/inventory/logger"
)

// GormLogger routes gorm's messages and SQL traces to slog.
// Queries are traced at debug level; ones slower than slowThreshold at warn.
type GormLogger struct {
	base          *slog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*GormLogger)(nil)

func NewGormLogger(base *slog.Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{base: base, level: gormlogger.Warn, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.from(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.from(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.from(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	log := l.from(ctx)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		log.Debug("sql failed", "sql", sql, "rows", rows, "elapsed", elapsed, "error", err)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		log.Warn("slow sql", "sql", sql, "rows", rows, "elapsed", elapsed)
	case log.Enabled(ctx, slog.LevelDebug):
		sql, rows := fc()
		log.Debug("sql", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}

// from prefers the request-scoped logger so SQL lines carry the request id.
func (l *GormLogger) from(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log := logger.FromContext(ctx); log != slog.Default() {
			return log
		}
	}
	return l.base
}
