package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DBDriver    string
	DatabaseURL string
	SecretKey   string
	TokenTTL    time.Duration // 0 keeps sessions until logout
	Port        string
	GinMode     string
	BcryptCost  int

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment. Values in envFiles (or
// ./.env when none are given) are loaded first; a missing file is ignored.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DATABASE_URL", "restaurant.db")
	v.SetDefault("SECRET_KEY", "Sample Secret Key")
	v.SetDefault("TOKEN_TTL", "0s")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)

	cfg := &Config{
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		SecretKey:     v.GetString("SECRET_KEY"),
		TokenTTL:      v.GetDuration("TOKEN_TTL"),
		Port:          v.GetString("PORT"),
		GinMode:       v.GetString("GIN_MODE"),
		BcryptCost:    v.GetInt("BCRYPT_COST"),
		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = driverFor(cfg.DatabaseURL)
	}

	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY must not be empty")
	}
	if cfg.TokenTTL < 0 {
		return nil, fmt.Errorf("TOKEN_TTL must not be negative")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cfg, nil
}

func driverFor(url string) string {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}
