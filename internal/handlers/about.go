package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func AboutAuthor(c *gin.Context) {
	Render(c, http.StatusOK, "about/author.html", gin.H{"Title": "Об авторе"})
}

func AboutTech(c *gin.Context) {
	Render(c, http.StatusOK, "about/tech.html", gin.H{"Title": "Технологии"})
}
