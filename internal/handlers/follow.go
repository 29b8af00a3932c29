package handlers

import (
	"errors"
	"net/http"

	"yatube/internal/config"
	"yatube/internal/middleware"
	"yatube/internal/store"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	store *store.Store
	cfg   *config.Config
}

func NewFollowHandler(st *store.Store, cfg *config.Config) *FollowHandler {
	return &FollowHandler{store: st, cfg: cfg}
}

// Index lists posts of every author the current user follows.
func (h *FollowHandler) Index(c *gin.Context) {
	user := middleware.CurrentUser(c)
	posts, page, err := listPage(c, h.store, h.cfg.PageSize, store.PostFilter{FollowerID: user.ID})
	if err != nil {
		fail(c, "follow", err)
		return
	}
	Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title": "Избранные авторы",
		"Posts": posts,
		"Page":  page,
	})
}

func (h *FollowHandler) Follow(c *gin.Context) {
	h.toggle(c, true)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	h.toggle(c, false)
}

func (h *FollowHandler) toggle(c *gin.Context, follow bool) {
	user := middleware.CurrentUser(c)
	author, err := h.store.GetUser(c.Param("username"))
	if err != nil {
		fail(c, "follow", err)
		return
	}

	if follow {
		err = h.store.Follow(user.ID, author.ID)
		if errors.Is(err, store.ErrSelfFollow) {
			err = nil
		}
	} else {
		err = h.store.Unfollow(user.ID, author.ID)
	}
	if err != nil {
		fail(c, "follow", err)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
