package storage

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lessonbot/config"
	"lessonbot/types"
)

// Open connects to postgres and runs migrations for the lesson schema.
// TranslateError is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.PostgresHost, cfg.PostgresUser, cfg.PostgresPassword,
		cfg.PostgresName, cfg.PostgresPort,
	)

	logLevel := gormlogger.Warn
	if cfg.LogMode == "dev" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables backing lessons and progress.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.Lesson{},
		&types.Section{},
		&types.SectionProgress{},
	); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
