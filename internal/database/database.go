package database

import (
	"fmt"

	"skillswap_backend/internal/config"
	"skillswap_backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a gorm connection using the configured driver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "postgres", "":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// AutoMigrate migrates all models and the supporting indexes.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Skill{},
		&models.Post{},
		&models.Proposition{},
		&models.Review{},
	)
	if err != nil {
		return err
	}

	// One standing (pending) proposition per sender and post. The locked
	// insert in the proposition repository enforces this on every dialect;
	// the partial index is an extra safety net where supported.
	if db.Dialector.Name() == "postgres" {
		err = db.Exec(`
			CREATE UNIQUE INDEX IF NOT EXISTS idx_propositions_pending_sender_post
			ON propositions (post_id, sender_id)
			WHERE state = 'pending'
		`).Error
		if err != nil {
			return err
		}
	}

	return nil
}
