package repositories

import (
	"errors"

	"fichaje_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFichajeNotFound = errors.New("fichaje not found")

type FichajeRepository interface {
	Create(db *gorm.DB, fichaje *models.Fichaje) error
	FindByID(db *gorm.DB, id string) (*models.Fichaje, error)
	FindOpenByUser(db *gorm.DB, userID string) (*models.Fichaje, error)
	FindAllByUser(db *gorm.DB, userID string) ([]models.Fichaje, error)
	Save(db *gorm.DB, fichaje *models.Fichaje) error
	Delete(db *gorm.DB, id, userID string) error
	DeleteAllByUser(db *gorm.DB, userID string) error
}

type FichajeRepositoryImpl struct{}

func NewFichajeRepository() FichajeRepository {
	return &FichajeRepositoryImpl{}
}

func (r *FichajeRepositoryImpl) Create(db *gorm.DB, fichaje *models.Fichaje) error {
	return db.Create(fichaje).Error
}

func (r *FichajeRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Fichaje, error) {
	var fichaje models.Fichaje
	err := db.First(&fichaje, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFichajeNotFound
		}
		return nil, err
	}
	return &fichaje, nil
}

// FindOpenByUser returns the user's open session, newest clock-in first in
// case more than one ever exists. A missing session is not an error.
func (r *FichajeRepositoryImpl) FindOpenByUser(db *gorm.DB, userID string) (*models.Fichaje, error) {
	var fichaje models.Fichaje
	err := db.Where("user_id = ? AND clock_out_at IS NULL", userID).
		Order("clock_in_at DESC").
		First(&fichaje).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fichaje, nil
}

func (r *FichajeRepositoryImpl) FindAllByUser(db *gorm.DB, userID string) ([]models.Fichaje, error) {
	var fichajes []models.Fichaje
	err := db.Where("user_id = ?", userID).
		Order("clock_in_at DESC").
		Find(&fichajes).Error
	return fichajes, err
}

func (r *FichajeRepositoryImpl) Save(db *gorm.DB, fichaje *models.Fichaje) error {
	return db.Save(fichaje).Error
}

func (r *FichajeRepositoryImpl) Delete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Fichaje{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFichajeNotFound
	}
	return nil
}

// DeleteAllByUser is idempotent; deleting an empty history succeeds.
func (r *FichajeRepositoryImpl) DeleteAllByUser(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Fichaje{}).Error
}
