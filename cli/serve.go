package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant-admin/admin"
	"restaurant-admin/auth"
	"restaurant-admin/config"
	"restaurant-admin/handlers"
	"restaurant-admin/models"
	"restaurant-admin/routes"
	"restaurant-admin/store"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)
	models.PasswordCost = cfg.BcryptCost

	db, err := config.OpenDB(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	st := store.New(db)
	if err := config.SeedAdmin(ctx, cfg, st); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	reg := admin.NewRegistry()
	if err := reg.Register(admin.DefaultViews()...); err != nil {
		return err
	}
	sessions := auth.NewSessions(st, cfg.SecretKey, cfg.TokenTTL)
	if cfg.TokenTTL > 0 {
		go purgeSessions(ctx, sessions, cfg.TokenTTL)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(handlers.New(st, sessions, reg)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server running on http://localhost:%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// purgeSessions deletes expired session tokens once per ttl until ctx ends.
func purgeSessions(ctx context.Context, sessions *auth.Sessions, ttl time.Duration) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.PurgeExpired(ctx)
			if err != nil {
				log.Printf("purge expired sessions: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("purged %d expired sessions", n)
			}
		}
	}
}
