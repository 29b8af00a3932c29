package middleware

import (
	"errors"
	"net/http"

	"yatube/internal/logger"
	"yatube/internal/models"
	"yatube/internal/policy"
	"yatube/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CheckUserKey  = "user"
	SessionUserID = "user_id"
)

var logg = logger.New()

// UserLoader is the part of the store LoadUser needs.
type UserLoader interface {
	GetUserByID(id uint) (*models.User, error)
}

// sessionUserID normalizes whatever integer type the session codec returned.
func sessionUserID(v interface{}) (uint, bool) {
	switch id := v.(type) {
	case uint:
		return id, id != 0
	case int:
		return uint(id), id > 0
	case int64:
		return uint(id), id > 0
	case uint64:
		return uint(id), id != 0
	}
	return 0, false
}

// LoadUser retrieves user from session and sets to context
func LoadUser(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := sessionUserID(session.Get(SessionUserID)); ok {
			user, err := users.GetUserByID(id)
			switch {
			case err == nil:
				c.Set(CheckUserKey, user)
			case errors.Is(err, store.ErrNotFound):
				// stale session of a deleted user
				session.Delete(SessionUserID)
				_ = session.Save()
			default:
				logg.Error("auth", "load session user", err)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the logged in user or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CheckUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func IsAuthenticated(c *gin.Context) bool {
	return CurrentUser(c) != nil
}

// ActorFrom describes the requester for policy decisions.
func ActorFrom(c *gin.Context) policy.Actor {
	if u := CurrentUser(c); u != nil {
		return policy.Actor{ID: u.ID, Authenticated: true}
	}
	return policy.Guest
}

// Login stores the user id in the session.
func Login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(SessionUserID, user.ID)
	return session.Save()
}

// Logout clears the session.
func Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	c.Set(CheckUserKey, nil)
	return session.Save()
}

// AuthRequired redirects guests to the login page for action.
func AuthRequired(action policy.Action, loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy.Decide(action, IsAuthenticated(c), false) == policy.DenyRedirectLogin {
			c.Redirect(http.StatusFound, policy.LoginRedirect(loginURL, c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}
