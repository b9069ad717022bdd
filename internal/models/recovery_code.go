package models

import "time"

// RecoveryCode is a short-lived one-time code proving email ownership.
// IssuedOn holds the local calendar day of issuance; the composite unique
// index enforces one code per user per day at the store.
type RecoveryCode struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index;uniqueIndex:uniq_recovery_per_day" json:"user_id"`
	Code      string    `gorm:"not null" json:"-"`
	IssuedOn  string    `gorm:"type:date;not null;uniqueIndex:uniq_recovery_per_day" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
}
