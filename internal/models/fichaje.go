package models

import "time"

// Fichaje is one clock-in to clock-out work interval. A session with a nil
// ClockOutAt is open; the partial unique index keeps at most one open session
// per user even under concurrent clock-ins.
type Fichaje struct {
	BaseModel
	UserID        string     `gorm:"type:uuid;not null;index;uniqueIndex:uniq_open_fichaje,where:clock_out_at IS NULL" json:"user_id"`
	ClockInAt     time.Time  `gorm:"not null" json:"clock_in_at"`
	ClockOutAt    *time.Time `json:"clock_out_at"`
	DurationHours float64    `gorm:"not null;default:0" json:"duration_hours"`
	PayAmount     float64    `gorm:"not null;default:0" json:"pay_amount"`
	IsOvertime    bool       `gorm:"not null;default:false" json:"is_overtime"`
}

// IsOpen reports whether the session has not been clocked out yet.
func (f *Fichaje) IsOpen() bool {
	return f.ClockOutAt == nil
}
