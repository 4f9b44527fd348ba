package handlers

import (
	"net/http"

	"restaurant-admin/middleware"
	"restaurant-admin/statemachine"

	"github.com/gin-gonic/gin"
)

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if sqlDB, err := h.Store.DB().DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, code = "database unavailable", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "Restaurant Admin",
	})
}

// Index lists the admin views available to the caller
func (h *Handler) Index(c *gin.Context) {
	caller := middleware.GetCaller(c)
	views := make([]gin.H, 0, len(h.Registry.Views()))
	for _, v := range h.Registry.Views() {
		views = append(views, gin.H{
			"name":       v.Name,
			"endpoint":   v.Endpoint,
			"url":        AdminIndexPath + v.Endpoint + "/",
			"can_create": v.CanCreate,
			"can_edit":   v.CanEdit,
			"can_delete": v.CanDelete,
			"can_export": v.CanExport,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"name":  "Restaurant",
		"user":  profile(caller.User),
		"views": views,
	})
}

// SessionStates documents the login state machine
func (h *Handler) SessionStates(c *gin.Context) {
	info := make([]gin.H, 0, len(statemachine.GetAllTransitions()))
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "event": t.Event})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine": info,
		"description":   "Admin session lifecycle",
	})
}
