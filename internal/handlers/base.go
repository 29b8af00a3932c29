package handlers

import (
	"errors"
	"net/http"

	"yatube/internal/logger"
	"yatube/internal/middleware"
	"yatube/internal/store"

	"github.com/gin-gonic/gin"
)

var logg = logger.New()

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Code": code, "Error": message})
}

func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found")
}

// fail answers err with 404 for missing rows and 500 otherwise.
func fail(c *gin.Context, module string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		NotFound(c)
		return
	}
	logg.Error(module, c.Request.Method+" "+c.Request.URL.Path, err)
	RenderError(c, http.StatusInternalServerError, "Internal server error")
}
