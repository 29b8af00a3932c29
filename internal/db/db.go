package db

import (
	"fmt"
	"strings"

	"yatube/internal/config"
	"yatube/internal/logger"
	"yatube/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var logg = logger.New()

// Open connects to the database selected by cfg.DBDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{}
	if cfg.Mode == "test" || cfg.Mode == "release" {
		gcfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	switch cfg.DBDriver {
	case "postgres":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			// Fallback for local dev if not set
			dsn = "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable TimeZone=UTC"
		}
		conn, err := gorm.Open(postgres.Open(dsn), gcfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		logg.Info("db", "postgres connection established")
		return conn, nil
	case "sqlite", "":
		return openSQLite(cfg.SQLitePath, gcfg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

// OpenSQLite opens a sqlite database with foreign keys enforced.
// ":memory:" gives a private database, used by tests.
func OpenSQLite(path string) (*gorm.DB, error) {
	return openSQLite(path, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
}

func openSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=1"
	} else {
		dsn += "?_foreign_keys=1"
	}

	conn, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// sqlite serializes writers; one connection also keeps ":memory:" a single database.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return conn, nil
}

// Migrate creates or updates the schema.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logg.Info("db", "database migration completed")
	return nil
}
