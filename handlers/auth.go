package handlers

import (
	"net/http"

	"restaurant-admin/middleware"
	"restaurant-admin/models"
	"restaurant-admin/statemachine"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=64"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=4,max=25"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Login authenticates an anonymous admin caller and opens a session
func (h *Handler) Login(c *gin.Context) {
	if h.transition(c, statemachine.EventLogin) {
		h.login(c)
	}
}

// Register creates a non-admin account for an anonymous admin caller
func (h *Handler) Register(c *gin.Context) {
	if h.transition(c, statemachine.EventLogin) {
		h.register(c)
	}
}

// LoginPage describes the login form to anonymous callers
func (h *Handler) LoginPage(c *gin.Context) {
	if !h.transition(c, statemachine.EventLogin) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form":     []string{"username", "password"},
		"next":     nextPage(c),
		"register": "/admin/register/",
		"message":  "Don't have an account? Register first.",
	})
}

// APILogin issues an additional Bearer session; API clients may hold several.
func (h *Handler) APILogin(c *gin.Context) { h.login(c) }

func (h *Handler) APIRegister(c *gin.Context) { h.register(c) }

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.Sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"user":     profile(user),
		"redirect": nextPage(c),
	})
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.Sessions.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Account created successfully",
		"token":    token,
		"user":     profile(user),
		"redirect": AdminIndexPath,
	})
}

// Logout removes the caller's session token
func (h *Handler) Logout(c *gin.Context) {
	if !h.transition(c, statemachine.EventLogout) {
		return
	}
	caller := middleware.GetCaller(c)
	if _, err := h.Sessions.RemoveToken(c.Request.Context(), caller.User.ID, caller.Token); err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, AdminIndexPath)
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": profile(middleware.GetCaller(c).User)})
}

// APILogout ends the Bearer session of an API client
func (h *Handler) APILogout(c *gin.Context) {
	caller := middleware.GetCaller(c)
	removed, err := h.Sessions.RemoveToken(c.Request.Context(), caller.User.ID, caller.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "removed": removed})
}

// transition applies a session event for the caller. Events the current
// state does not accept send the caller back to the index.
func (h *Handler) transition(c *gin.Context, event statemachine.Event) bool {
	if _, err := statemachine.Next(middleware.GetCaller(c).State(), event); err != nil {
		c.Redirect(http.StatusFound, AdminIndexPath)
		c.Abort()
		return false
	}
	return true
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)
}

// nextPage returns the local page a login should continue to.
func nextPage(c *gin.Context) string {
	next := c.Query("next")
	if len(next) < 2 || next[0] != '/' || next[1] == '/' {
		return AdminIndexPath
	}
	return next
}

func profile(u *models.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"admin":    u.IsAdmin(),
		"avatar":   u.Avatar(128),
	}
}
