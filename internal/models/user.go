package models

import "time"

type User struct {
	BaseModel
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	HourlyRate   float64 `gorm:"not null;default:0" json:"hourly_rate"`
	PhotoURL     string  `json:"photo_url,omitempty"`

	// Set on every password change after registration; tokens issued before
	// this moment are rejected.
	PasswordChangedAt *time.Time `json:"-"`

	// Relations
	Fichajes      []Fichaje      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RecoveryCodes []RecoveryCode `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
