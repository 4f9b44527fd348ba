package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is hashed into users created without an explicit password.
// It exists for seed data only.
const DefaultPassword = "Test@123"

// PasswordCost is the bcrypt work factor used by SetPassword.
var PasswordCost = bcrypt.DefaultCost

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"size:64;uniqueIndex;not null" validate:"required,max=64"`
	Email        string    `json:"email" gorm:"size:120;uniqueIndex;not null" validate:"required,email,max=120"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"`
	Admin        bool      `json:"admin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Restaurants []Restaurant   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Sessions    []SessionToken `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// NewUser builds a user with a hashed password. An empty password falls back
// to DefaultPassword.
func NewUser(username, email, password string, admin bool) (*User, error) {
	u := &User{Username: username, Email: email, Admin: admin}
	u.Normalize()
	if password == "" {
		password = DefaultPassword
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

func (User) TableName() string          { return "users" }
func (User) PrimaryKey() string         { return "id" }
func (u *User) EntityID() uint          { return u.ID }
func (u *User) String() string          { return u.Username }
func (u *User) IsAdmin() bool           { return u.Admin }
func (u *User) References() []Reference { return nil }

func (u *User) Normalize() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

func (u *User) UniqueFields() []UniqueField {
	return []UniqueField{
		{Column: "username", Value: u.Username},
		{Column: "email", Value: u.Email},
	}
}

// SetPassword replaces the stored hash with a salted bcrypt hash of plaintext.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), PasswordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// Avatar returns the gravatar identicon URL for the user's email.
func (u *User) Avatar(size int) string {
	digest := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon&s=%d", hex.EncodeToString(digest[:]), size)
}
