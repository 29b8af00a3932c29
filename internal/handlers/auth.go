package handlers

import (
	"errors"
	"net/http"
	"strings"

	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/store"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	store *store.Store
}

func NewAuthHandler(st *store.Store) *AuthHandler {
	return &AuthHandler{store: st}
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "users/signup.html", gin.H{
		"Title":  "Зарегистрироваться",
		"Form":   forms.SignupForm{},
		"Errors": forms.Errors{},
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	form := forms.SignupForm{
		Username:  c.PostForm("username"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Email:     c.PostForm("email"),
		Password1: c.PostForm("password1"),
		Password2: c.PostForm("password2"),
	}
	// never echo passwords back
	shown := form
	shown.Password1, shown.Password2 = "", ""

	res := form.Validate()
	if !res.Ok() {
		Render(c, http.StatusOK, "users/signup.html", gin.H{"Title": "Зарегистрироваться", "Form": shown, "Errors": res.Errors})
		return
	}

	hash, err := utils.HashPassword(res.Value.Password)
	if err != nil {
		fail(c, "auth", err)
		return
	}
	user := &models.User{
		Username:  res.Value.Username,
		FirstName: res.Value.FirstName,
		LastName:  res.Value.LastName,
		Email:     res.Value.Email,
		Password:  hash,
	}
	if err := h.store.CreateUser(user); err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			res.Errors.Merge(verr.Fields)
			Render(c, http.StatusOK, "users/signup.html", gin.H{"Title": "Зарегистрироваться", "Form": shown, "Errors": res.Errors})
			return
		}
		fail(c, "auth", err)
		return
	}

	if err := middleware.Login(c, user); err != nil {
		fail(c, "auth", err)
		return
	}
	logg.Info("auth", "user signed up: "+user.Username)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "users/login.html", gin.H{
		"Title":  "Войти",
		"Form":   forms.LoginForm{},
		"Errors": forms.Errors{},
		"Next":   c.Query("next"),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	form := forms.LoginForm{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}
	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}

	res := form.Validate()
	if res.Ok() {
		user, err := h.store.GetUser(res.Value.Username)
		switch {
		case err == nil && utils.CheckPasswordHash(res.Value.Password, user.Password):
			if err := middleware.Login(c, user); err != nil {
				fail(c, "auth", err)
				return
			}
			c.Redirect(http.StatusFound, safeNext(next))
			return
		case err == nil, errors.Is(err, store.ErrNotFound):
			res.Errors.Add(forms.NonField, "Please enter a correct username and password. Note that both fields may be case-sensitive.")
		default:
			fail(c, "auth", err)
			return
		}
	}

	Render(c, http.StatusOK, "users/login.html", gin.H{
		"Title":  "Войти",
		"Form":   forms.LoginForm{Username: form.Username},
		"Errors": res.Errors,
		"Next":   next,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		fail(c, "auth", err)
		return
	}
	Render(c, http.StatusOK, "users/logged_out.html", gin.H{"Title": "Вы вышли из системы"})
}
