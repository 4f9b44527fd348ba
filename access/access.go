// Package access decides what a caller may do with an entity.
package access

import (
	"fmt"

	"restaurant-admin/models"
	"restaurant-admin/statemachine"

	"gorm.io/gorm"
)

// Action is an operation requested through the admin surface.
type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
)

// ErrLoginRequired is returned for anonymous callers.
var ErrLoginRequired = fmt.Errorf("login required: %w", models.ErrAuthenticationFailure)

// Caller is whoever issued the request. A nil User is an anonymous caller.
type Caller struct {
	User  *models.User
	Token string
}

func (c Caller) Authenticated() bool { return c.User != nil }

func (c Caller) IsAdmin() bool { return c.User != nil && c.User.IsAdmin() }

// State is the caller's position in the session state machine.
func (c Caller) State() statemachine.SessionState {
	if c.Authenticated() {
		return statemachine.StateAuthenticated
	}
	return statemachine.StateAnonymous
}

// Policy allows or denies an action. target is nil for list and create
// checks made before a row exists.
type Policy func(c Caller, action Action, target models.Entity) error

// Authenticated permits every action to any logged-in caller.
func Authenticated(c Caller, _ Action, _ models.Entity) error {
	if !c.Authenticated() {
		return ErrLoginRequired
	}
	return nil
}

// UserPolicy guards User rows: a caller may only touch their own row unless
// they are an admin, and only admins create users here.
func UserPolicy(c Caller, action Action, target models.Entity) error {
	if !c.Authenticated() {
		return ErrLoginRequired
	}
	if c.IsAdmin() {
		return nil
	}
	switch action {
	case ActionList:
		// rows are narrowed by UserScope
		return nil
	case ActionCreate, ActionExport:
		return fmt.Errorf("%s users: %w", action, models.ErrAuthorizationFailure)
	}
	if target == nil || target.EntityID() != c.User.ID {
		return fmt.Errorf("%s user: %w", action, models.ErrAuthorizationFailure)
	}
	return nil
}

// UserScope narrows a user listing to the caller's own row for non-admins.
func UserScope(c Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if c.IsAdmin() {
			return db
		}
		if !c.Authenticated() {
			return db.Where("1 = 0")
		}
		return db.Where("id = ?", c.User.ID)
	}
}
