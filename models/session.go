package models

import "time"

// SessionToken is one active login of a user. A user may hold several.
type SessionToken struct {
	ID        uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint       `json:"user_id" gorm:"not null;index"`
	Token     string     `json:"-" gorm:"size:512;uniqueIndex;not null"`
	IssuedAt  time.Time  `json:"issued_at" gorm:"not null"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (SessionToken) TableName() string { return "session_tokens" }

// Expired reports whether the token has an expiry that is not after now.
func (t *SessionToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
