package config

import (
	"time"

	"yatube/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port          string
	Mode          string
	SessionSecret string
	LoginURL      string

	// Database
	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	// Content
	PageSize      int
	IndexCacheTTL time.Duration
	CacheSize     int
	MediaRoot     string
	MaxUploadMB   int64
}

var (
	cfg  *Config
	logg = logger.New()
)

// Init loads .env (if any), then resolves every key through viper so that
// real environment variables and an optional config.yaml win over defaults.
func Init() *Config {
	if err := godotenv.Load(); err != nil {
		logg.Info("config", "no .env file found, using environment")
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("SESSION_SECRET", "secret_key_change_me")
	viper.SetDefault("LOGIN_URL", "/auth/login/")

	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable")
	viper.SetDefault("SQLITE_PATH", "yatube.db")

	viper.SetDefault("PAGE_SIZE", 10)
	viper.SetDefault("INDEX_CACHE_TTL", "20s")
	viper.SetDefault("CACHE_SIZE", 500)
	viper.SetDefault("MEDIA_ROOT", "media")
	viper.SetDefault("MAX_UPLOAD_MB", 10)

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	_ = viper.ReadInConfig() // optional

	cfg = &Config{
		Port:          viper.GetString("PORT"),
		Mode:          viper.GetString("GIN_MODE"),
		SessionSecret: viper.GetString("SESSION_SECRET"),
		LoginURL:      viper.GetString("LOGIN_URL"),
		DBDriver:      viper.GetString("DB_DRIVER"),
		DatabaseURL:   viper.GetString("DATABASE_URL"),
		SQLitePath:    viper.GetString("SQLITE_PATH"),
		PageSize:      positive(viper.GetInt("PAGE_SIZE"), 10),
		IndexCacheTTL: parseDuration(viper.GetString("INDEX_CACHE_TTL"), 20*time.Second),
		CacheSize:     positive(viper.GetInt("CACHE_SIZE"), 500),
		MediaRoot:     viper.GetString("MEDIA_ROOT"),
		MaxUploadMB:   int64(positive(viper.GetInt("MAX_UPLOAD_MB"), 10)),
	}

	return cfg
}

// Default returns the configuration used when nothing is overridden.
// Tests build on it instead of touching the environment.
func Default() *Config {
	return &Config{
		Port:          "8080",
		Mode:          "test",
		SessionSecret: "secret",
		LoginURL:      "/auth/login/",
		DBDriver:      "sqlite",
		SQLitePath:    ":memory:",
		PageSize:      10,
		IndexCacheTTL: 20 * time.Second,
		CacheSize:     500,
		MediaRoot:     "media",
		MaxUploadMB:   10,
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

func positive(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Get returns the loaded config instance
func Get() *Config {
	return cfg
}
