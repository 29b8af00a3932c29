package router

import (
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/handlers"
	"yatube/internal/middleware"
	"yatube/internal/policy"
	"yatube/internal/services"
	"yatube/internal/store"

	"github.com/gin-gonic/gin"
)

// Deps are the shared services handlers are built from.
type Deps struct {
	Store *store.Store
	Pages *cache.Cache
	Media *services.MediaStorage
	Cfg   *config.Config
}

// RegisterRoutes expects the session middleware to be installed on r already.
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.LoadUser(d.Store))

	postHandler := handlers.NewPostHandler(d.Store, d.Pages, d.Media, d.Cfg)
	followHandler := handlers.NewFollowHandler(d.Store, d.Cfg)
	authHandler := handlers.NewAuthHandler(d.Store)

	login := d.Cfg.LoginURL
	authed := func(a policy.Action) gin.HandlerFunc {
		return middleware.AuthRequired(a, login)
	}

	// only guests share the cached index
	indexCache := cache.PageMiddleware(d.Pages, cache.IndexKey, d.Cfg.IndexCacheTTL, middleware.IsAuthenticated)

	// Public Routes
	r.GET("/", indexCache, postHandler.Index)
	r.GET("/group/:slug/", postHandler.GroupPosts)
	r.GET("/profile/:username/", postHandler.Profile)
	r.GET("/posts/:id/", postHandler.PostDetail)

	// Authenticated Routes
	r.GET("/create/", authed(policy.CreatePost), postHandler.ShowCreate)
	r.POST("/create/", authed(policy.CreatePost), postHandler.Create)
	// edit resolves the post before checking access
	r.GET("/posts/:id/edit/", postHandler.ShowEdit)
	r.POST("/posts/:id/edit/", postHandler.Update)
	r.GET("/posts/:id/comment/", authed(policy.AddComment), postHandler.AddComment)
	r.POST("/posts/:id/comment/", authed(policy.AddComment), postHandler.AddComment)

	r.GET("/follow/", authed(policy.ViewFollowFeed), followHandler.Index)
	r.GET("/profile/:username/follow/", authed(policy.ToggleFollow), followHandler.Follow)
	r.GET("/profile/:username/unfollow/", authed(policy.ToggleFollow), followHandler.Unfollow)

	// Auth
	r.GET("/auth/signup/", authHandler.ShowSignup)
	r.POST("/auth/signup/", authHandler.Signup)
	r.GET("/auth/login/", authHandler.ShowLogin)
	r.POST("/auth/login/", authHandler.Login)
	r.GET("/auth/logout/", authHandler.Logout)

	// About
	r.GET("/about/author/", handlers.AboutAuthor)
	r.GET("/about/tech/", handlers.AboutTech)

	if d.Cfg.MediaRoot != "" {
		r.Static("/media", d.Cfg.MediaRoot)
	}

	r.NoRoute(handlers.NotFound)
}
