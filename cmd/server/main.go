package main

import (
	"os"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/logger"
	"yatube/internal/router"
	"yatube/internal/services"
	"yatube/internal/store"
	"yatube/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

var logg = logger.New()

func main() {
	config.Init()
	cfg := config.Get()

	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	// Initialize Database
	conn, err := db.Open(cfg)
	if err != nil {
		fatal("failed to connect to database", err)
	}
	if err := db.Migrate(conn); err != nil {
		fatal("failed to migrate database", err)
	}

	pages, err := cache.New(cfg.CacheSize)
	if err != nil {
		fatal("failed to create page cache", err)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 14 * 24 * 3600})
	r.Use(sessions.Sessions("yatube_session", sessionStore))

	renderer, err := web.LoadTemplates()
	if err != nil {
		fatal("failed to load templates", err)
	}
	r.HTMLRender = renderer
	r.MaxMultipartMemory = cfg.MaxUploadMB << 20

	router.RegisterRoutes(r, router.Deps{
		Store: store.New(conn),
		Pages: pages,
		Media: services.NewMediaStorage(cfg.MediaRoot),
		Cfg:   cfg,
	})

	logg.Info("main", "yatube server starting on :"+cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		fatal("server stopped", err)
	}
}

func fatal(msg string, err error) {
	logg.Error("main", msg, err)
	os.Exit(1)
}
