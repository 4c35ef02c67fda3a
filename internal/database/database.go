package database

import (
	"log"
	"os"
	"time"

	"gamevault/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database connection, runs migrations, and returns the
// handle for the caller to wire into the repository.
func Connect(dsn string) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs GORM auto-migrations for the catalogue tables, including the
// game_genres, wishlist_games, and user_favourite_games junction tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Publisher{},
		&models.Genre{},
		&models.Game{},
		&models.User{},
		&models.Review{},
	)
}
