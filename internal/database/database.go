// Package database handles the SQLite connection, schema migration and the
// startup ordering guarantee: Connect runs migration (and the caller runs
// seeding) to completion before the HTTP listener starts, so no request can
// observe a missing table.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"szlak/internal/config"
	"szlak/internal/middleware"
	"szlak/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slogGormLogger bridges GORM logging to slog.
type slogGormLogger struct {
	logger *slog.Logger
	Config logger.Config
}

// LogMode sets the logging level and returns a new interface instance.
func (l *slogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	newlogger := *l
	newlogger.Config.LogLevel = level
	return &newlogger
}

func (l *slogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= logger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= logger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= logger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace logs SQL statements, latency and errors at the configured level.
func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Config.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && l.Config.LogLevel >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.logger.ErrorContext(ctx, "GORM query error",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
	case elapsed > l.Config.SlowThreshold && l.Config.SlowThreshold != 0 && l.Config.LogLevel >= logger.Warn:
		l.logger.WarnContext(ctx, "GORM slow query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		)
	case l.Config.LogLevel >= logger.Info:
		l.logger.InfoContext(ctx, "GORM query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		)
	}
}

// Connect opens the SQLite database at cfg.DBPath and migrates the schema.
// It returns only after every table and index exists.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.DBPath)
}

// Open opens a SQLite database at the given path (":memory:" for tests)
// and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	gormLogger := &slogGormLogger{
		logger: middleware.Logger,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	}

	// _foreign_keys=on: SQLite does not enforce FKs unless asked.
	dsn := path + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows one writer at a time. The default driver returns
	// "database is locked" under write concurrency unless all statements
	// funnel through a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		return nil, err
	}

	middleware.Logger.Info("Database connected and migrated", slog.String("path", path))
	return db, nil
}

// migrate creates missing tables, columns and indexes. AutoMigrate covers
// the defensive "add column if missing" evolution (onboarding_completed was
// added after the first schema version shipped).
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserPreferences{},
		&models.Activity{},
		&models.UserProgress{},
		&models.Challenge{},
		&models.UserChallenge{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Databases created before the uniqueness constraints existed may lack
	// the indexes the upsert paths rely on; AutoMigrate will not add a
	// unique index to a pre-existing column.
	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_preferences_user_id ON user_preferences(user_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_activity ON user_progress(user_id, activity_id)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to ensure index: %w", err)
		}
	}

	return nil
}
