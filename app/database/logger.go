package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogcms/app/logs"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Logger sends gorm's output through logs.LogJSON so database lines share the
// application's format. Missing rows and duplicate keys are ordinary outcomes
// handled by the repositories and are not logged.
type Logger struct {
	level         logger.LogLevel
	slowThreshold time.Duration
}

func NewLogger(level logger.LogLevel, slowThreshold time.Duration) *Logger {
	return &Logger{level: level, slowThreshold: slowThreshold}
}

func (l *Logger) LogMode(level logger.LogLevel) logger.Interface {
	copied := *l
	copied.level = level
	return &copied
}

func (l *Logger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		logs.Info(fmt.Sprintf(msg, args...), map[string]interface{}{"component": "gorm"})
	}
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		logs.Warn(fmt.Sprintf(msg, args...), map[string]interface{}{"component": "gorm"})
	}
}

func (l *Logger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		logs.Error(fmt.Sprintf(msg, args...), nil, map[string]interface{}{"component": "gorm"})
	}
}

func (l *Logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	fields := func() map[string]interface{} {
		sql, rows := fc()
		return map[string]interface{}{
			"component":  "gorm",
			"sql":        sql,
			"rows":       rows,
			"elapsed_ms": elapsed.Milliseconds(),
		}
	}

	switch {
	case err != nil && l.level >= logger.Error && !expected(err):
		logs.Error("query failed", err, fields())
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		logs.Warn("slow query", fields())
	case l.level >= logger.Info:
		logs.Info("query", fields())
	}
}

func expected(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey)
}
