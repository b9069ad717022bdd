package services

import (
	"testing"

	"fichaje_backend/internal/auth"
	"fichaje_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema. Every
// test gets its own database, so tests stay independent.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection, or each pooled connection would see its own empty
	// in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Fichaje{},
		&models.RecoveryCode{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string, hourlyRate float64) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test Worker",
		Email:        email,
		PasswordHash: hash,
		HourlyRate:   hourlyRate,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
