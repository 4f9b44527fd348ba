package config

import (
	"log"
	"strings"

	"restaurant-admin/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// tables lists every persisted model, parents before children.
var tables = []any{
	&models.User{},
	&models.SessionToken{},
	&models.Restaurant{},
	&models.Ingredient{},
	&models.Recipe{},
	&models.RecipeIngredient{},
	&models.MenuCard{},
	&models.MenuCardRecipe{},
}

// OpenDB connects to the configured database. SQLite connections enable
// foreign key enforcement.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(sqliteDSN(cfg.DatabaseURL))
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(tables...); err != nil {
		return err
	}
	log.Println("database migrated")
	return nil
}

// DropTables removes every table, children first.
func DropTables(db *gorm.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return err
		}
	}
	log.Println("database tables dropped")
	return nil
}
