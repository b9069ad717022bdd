package repositories

import (
	"errors"
	"time"

	"fichaje_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRecoveryCodeNotFound = errors.New("recovery code not found")

type RecoveryCodeRepository interface {
	Create(db *gorm.DB, code *models.RecoveryCode) error
	FindIssuedOn(db *gorm.DB, userID, day string) (*models.RecoveryCode, error)
	FindUnused(db *gorm.DB, userID, code string) (*models.RecoveryCode, error)
	MarkUsed(db *gorm.DB, id string) error
	PurgeExpired(db *gorm.DB, userID string, now time.Time) error
}

type RecoveryCodeRepositoryImpl struct{}

func NewRecoveryCodeRepository() RecoveryCodeRepository {
	return &RecoveryCodeRepositoryImpl{}
}

func (r *RecoveryCodeRepositoryImpl) Create(db *gorm.DB, code *models.RecoveryCode) error {
	return db.Create(code).Error
}

// FindIssuedOn returns the code issued to the user on the given calendar day,
// or nil when none was.
func (r *RecoveryCodeRepositoryImpl) FindIssuedOn(db *gorm.DB, userID, day string) (*models.RecoveryCode, error) {
	var code models.RecoveryCode
	err := db.Where("user_id = ? AND issued_on = ?", userID, day).First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

func (r *RecoveryCodeRepositoryImpl) FindUnused(db *gorm.DB, userID, code string) (*models.RecoveryCode, error) {
	var rc models.RecoveryCode
	err := db.Where("user_id = ? AND code = ? AND used = ?", userID, code, false).First(&rc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecoveryCodeNotFound
		}
		return nil, err
	}
	return &rc, nil
}

func (r *RecoveryCodeRepositoryImpl) MarkUsed(db *gorm.DB, id string) error {
	result := db.Model(&models.RecoveryCode{}).Where("id = ?", id).Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecoveryCodeNotFound
	}
	return nil
}

func (r *RecoveryCodeRepositoryImpl) PurgeExpired(db *gorm.DB, userID string, now time.Time) error {
	return db.Where("user_id = ? AND expires_at < ?", userID, now).Delete(&models.RecoveryCode{}).Error
}
