package handlers

import (
	"restaurant-admin/admin"
	"restaurant-admin/auth"
	"restaurant-admin/store"
)

// Paths of the admin session pages.
const (
	AdminIndexPath = "/admin/"
	LoginPath      = "/admin/login/"
)

// Handler serves the admin surface and the user API.
type Handler struct {
	Store    *store.Store
	Sessions *auth.Sessions
	Registry *admin.Registry
}

func New(st *store.Store, sessions *auth.Sessions, reg *admin.Registry) *Handler {
	return &Handler{Store: st, Sessions: sessions, Registry: reg}
}
