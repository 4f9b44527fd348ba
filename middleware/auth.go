package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"restaurant-admin/access"
	"restaurant-admin/models"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "session"

const callerKey = "caller"

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Authenticate resolves the caller from a Bearer header or the session
// cookie. Requests without a valid token continue as anonymous.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c)
		if token == "" {
			c.Set(callerKey, access.Caller{})
			c.Next()
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(callerKey, access.Caller{User: user, Token: token})
		case errors.Is(err, models.ErrAuthenticationFailure):
			c.Set(callerKey, access.Caller{})
		default:
			log.Printf("authenticate: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.Next()
	}
}

// LoginRequired redirects anonymous callers to loginPath, remembering the
// page they asked for.
func LoginRequired(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetCaller(c).Authenticated() {
			RedirectToLogin(c, loginPath)
			return
		}
		c.Next()
	}
}

// RedirectToLogin aborts the request with a redirect to loginPath.
func RedirectToLogin(c *gin.Context, loginPath string) {
	c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

// AuthRequired rejects anonymous API callers with 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetCaller(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required (Bearer <token>)"})
			return
		}
		c.Next()
	}
}

// GetCaller returns the caller resolved by Authenticate.
func GetCaller(c *gin.Context) access.Caller {
	val, ok := c.Get(callerKey)
	if !ok {
		return access.Caller{}
	}
	return val.(access.Caller)
}

// GetUserID extracts the caller's user ID, 0 when anonymous.
func GetUserID(c *gin.Context) uint {
	if u := GetCaller(c).User; u != nil {
		return u.ID
	}
	return 0
}

func requestToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
