package models

import "time"

// PasswordReset holds at most one active reset code per email; a new
// request overwrites the previous row. Codes are single-use and
// time-bounded.
type PasswordReset struct {
	BaseModel
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Code      string    `gorm:"not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Used      bool      `gorm:"default:false" json:"used"`
}
