package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finboard-io/engine/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps the shared Gorm handle. The handle is created once at startup
// and reused for the process lifetime. When the DSN is missing or the
// dial fails, the handle stays nil and every repository call degrades to
// an unavailable result instead of an error at boot: the service must be
// able to start and answer health checks without a backend.
type DB struct {
	gorm *gorm.DB
}

// Open attempts to construct a database handle. It never returns an
// error: a failed connection yields a disconnected handle. There is no
// reconnect after startup; a disconnected handle stays disconnected
// until the process restarts.
func Open(ctx context.Context, dsn string, appEnv string) *DB {
	if dsn == "" {
		logger.L().Warn("DATABASE_URL not set, starting without a database backend")
		return &DB{}
	}

	gdb, err := dial(ctx, dsn, appEnv)
	if err != nil {
		logger.L().Error("database connection failed, starting disconnected", zap.Error(err))
		return &DB{}
	}
	return &DB{gorm: gdb}
}

// Connected reports whether a working backend handle exists.
func (d *DB) Connected() bool {
	return d != nil && d.gorm != nil
}

// Gorm returns the underlying handle, or nil when disconnected.
func (d *DB) Gorm() *gorm.DB {
	if d == nil {
		return nil
	}
	return d.gorm
}

func dial(ctx context.Context, dsn, appEnv string) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if appEnv == "development" || appEnv == "test" {
		logLevel = gormlogger.Warn
	}

	b := backoff{
		maxRetries: 5,
		delay:      500 * time.Millisecond,
		maxDelay:   5 * time.Second,
	}

	var gdb *gorm.DB
	var err error
	for attempt := 0; ; attempt++ {
		gdb, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: zapGormLogger{zap: logger.L(), level: logLevel},
		})
		if err == nil {
			break
		}
		if attempt >= b.maxRetries {
			return nil, fmt.Errorf("open postgres failed after retries: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("open postgres canceled: %w", ctx.Err())
		case <-time.After(b.nextDelay(attempt)):
		}
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("db db() error: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctxPing); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return gdb, nil
}

type zapGormLogger struct {
	zap   *zap.Logger
	level gormlogger.LogLevel
}

func (l zapGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	l.level = level
	return l
}

func (l zapGormLogger) Info(ctx context.Context, s string, args ...interface{}) {
	if l.level <= gormlogger.Info {
		l.zap.Sugar().Infof(s, args...)
	}
}

func (l zapGormLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	if l.level <= gormlogger.Warn {
		l.zap.Sugar().Warnf(s, args...)
	}
}

func (l zapGormLogger) Error(ctx context.Context, s string, args ...interface{}) {
	if l.level <= gormlogger.Error {
		l.zap.Sugar().Errorf(s, args...)
	}
}

func (l zapGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}
	sql, rows := fc()
	dur := time.Since(begin)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.zap.Error("gorm query error", zap.Duration("duration", dur), zap.Int64("rows", rows), zap.String("sql", sql), zap.Error(err))
		return
	}
	l.zap.Debug("gorm query", zap.Duration("duration", dur), zap.Int64("rows", rows), zap.String("sql", sql))
}

type backoff struct {
	maxRetries int
	delay      time.Duration
	maxDelay   time.Duration
}

func (b backoff) nextDelay(attempt int) time.Duration {
	d := b.delay << attempt
	if d > b.maxDelay {
		return b.maxDelay
	}
	return d
}
