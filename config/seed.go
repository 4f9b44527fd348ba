package config

import (
	"context"
	"errors"
	"log"

	"restaurant-admin/models"
	"restaurant-admin/store"
)

// SeedAdmin creates the configured admin account unless it already exists.
// Without ADMIN_USERNAME and ADMIN_EMAIL it does nothing.
func SeedAdmin(ctx context.Context, cfg *Config, st *store.Store) error {
	if cfg.AdminUsername == "" || cfg.AdminEmail == "" {
		log.Println("skip seeding admin: ADMIN_USERNAME/ADMIN_EMAIL not set")
		return nil
	}

	_, err := st.UserByUsername(ctx, cfg.AdminUsername)
	switch {
	case err == nil:
		log.Println("admin already exists:", cfg.AdminUsername)
		return nil
	case !errors.Is(err, models.ErrNotFound):
		return err
	}

	// An empty ADMIN_PASSWORD falls back to the default seed password.
	admin, err := models.NewUser(cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword, true)
	if err != nil {
		return err
	}
	if err := st.Create(ctx, admin); err != nil {
		return err
	}
	log.Println("seeded admin:", admin.Username)
	return nil
}
