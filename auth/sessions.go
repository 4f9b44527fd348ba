// Package auth issues and verifies login session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant-admin/models"
	"restaurant-admin/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LastLoginLayout formats the last_login claim as dd-mm-yyyy HH:MM:SS.
const LastLoginLayout = "02-01-2006 15:04:05"

// Claims are embedded in every session token.
type Claims struct {
	UserID    uint   `json:"user_id"`
	LastLogin string `json:"last_login"`
	jwt.RegisteredClaims
}

// Sessions keeps each user's set of active tokens. A user may be logged in
// from several places at once; each login adds one token.
type Sessions struct {
	store  *store.Store
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions signs tokens with secret. A zero ttl issues tokens that stay
// valid until removed.
func NewSessions(st *store.Store, secret string, ttl time.Duration) *Sessions {
	return &Sessions{
		store:  st,
		db:     st.DB(),
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// GenerateToken signs a new token for userID and adds it to the user's
// active set.
func (s *Sessions) GenerateToken(ctx context.Context, userID uint) (string, error) {
	now := s.now().UTC()
	claims := Claims{
		UserID:    userID,
		LastLogin: now.Format(LastLoginLayout),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	row := models.SessionToken{UserID: userID, IssuedAt: now}
	if s.ttl > 0 {
		exp := now.Add(s.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
		row.ExpiresAt = &exp
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	row.Token = token
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

// VerifyToken reports whether token is in userID's active set and has not
// expired.
func (s *Sessions) VerifyToken(ctx context.Context, userID uint, token string) (bool, error) {
	row, err := s.lookup(ctx, userID, token)
	if err != nil || row == nil {
		return false, err
	}
	return !row.Expired(s.now()), nil
}

// RemoveToken drops token from userID's active set. It returns false when the
// token was not there.
func (s *Sessions) RemoveToken(ctx context.Context, userID uint, token string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.SessionToken{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Authenticate resolves a raw token to its user. The signature, expiry and
// active-set membership are all checked.
func (s *Sessions) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	ok, err := s.VerifyToken(ctx, claims.UserID, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("session revoked or expired: %w", models.ErrAuthenticationFailure)
	}

	var user models.User
	if err := s.store.Get(ctx, &user, claims.UserID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("unknown user: %w", models.ErrAuthenticationFailure)
		}
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials and opens a new session.
func (s *Sessions) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.store.UserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", &models.FieldError{Field: "username", Err: models.ErrAuthenticationFailure, Message: "invalid user"}
	}
	if err != nil {
		return nil, "", err
	}
	if !user.CheckPassword(password) {
		return nil, "", &models.FieldError{Field: "password", Err: models.ErrAuthenticationFailure, Message: "invalid password"}
	}

	token, err := s.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Register creates a non-admin user and logs them in.
func (s *Sessions) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	user, err := models.NewUser(username, email, password, false)
	if err != nil {
		return nil, "", err
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := s.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout ends the session identified by token. Unknown or malformed tokens
// return false.
func (s *Sessions) Logout(ctx context.Context, token string) (bool, error) {
	claims, err := s.parse(token)
	if err != nil {
		return false, nil
	}
	return s.RemoveToken(ctx, claims.UserID, token)
}

// PurgeExpired deletes every session whose expiry has passed and returns how
// many were removed.
func (s *Sessions) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now().UTC()).
		Delete(&models.SessionToken{})
	return res.RowsAffected, res.Error
}

func (s *Sessions) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", models.ErrAuthenticationFailure)
	}
	return claims, nil
}

func (s *Sessions) lookup(ctx context.Context, userID uint, token string) (*models.SessionToken, error) {
	var row models.SessionToken
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
