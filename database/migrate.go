package database

import (
	"fmt"

	"fichaje_backend/internal/config"
	"fichaje_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens the shared GORM connection using the configured DSN.
// TranslateError turns driver unique-violation errors into
// gorm.ErrDuplicatedKey, which the services rely on.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate brings the schema up to date, including the partial unique
// index that keeps at most one open fichaje per user.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Fichaje{},
		&models.RecoveryCode{},
	)
}
