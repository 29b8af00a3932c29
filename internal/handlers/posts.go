package handlers

import (
	"errors"
	"net/http"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/policy"
	"yatube/internal/services"
	"yatube/internal/store"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	store *store.Store
	pages *cache.Cache
	media *services.MediaStorage
	cfg   *config.Config
}

func NewPostHandler(st *store.Store, pages *cache.Cache, media *services.MediaStorage, cfg *config.Config) *PostHandler {
	return &PostHandler{store: st, pages: pages, media: media, cfg: cfg}
}

// listPage loads the page selected by ?page= of the filtered listing.
func listPage(c *gin.Context, st *store.Store, perPage int, f store.PostFilter) ([]models.Post, paginator.Page, error) {
	count, err := st.CountPosts(f)
	if err != nil {
		return nil, paginator.Page{}, err
	}
	page := paginator.New(count, perPage).Page(c.Query("page"))
	posts, err := st.ListPosts(f, page.Offset(), page.Limit())
	if err != nil {
		return nil, paginator.Page{}, err
	}
	return posts, page, nil
}

func (h *PostHandler) Index(c *gin.Context) {
	posts, page, err := listPage(c, h.store, h.cfg.PageSize, store.PostFilter{})
	if err != nil {
		fail(c, "posts", err)
		return
	}
	Render(c, http.StatusOK, "posts/index.html", gin.H{
		"Title": "Последние обновления на сайте",
		"Posts": posts,
		"Page":  page,
	})
}

func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, err := h.store.GetGroup(c.Param("slug"))
	if err != nil {
		fail(c, "posts", err)
		return
	}
	posts, page, err := listPage(c, h.store, h.cfg.PageSize, store.PostFilter{GroupID: group.ID})
	if err != nil {
		fail(c, "posts", err)
		return
	}
	Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Title": group.String(),
		"Group": group,
		"Posts": posts,
		"Page":  page,
	})
}

func (h *PostHandler) Profile(c *gin.Context) {
	author, err := h.store.GetUser(c.Param("username"))
	if err != nil {
		fail(c, "posts", err)
		return
	}
	posts, page, err := listPage(c, h.store, h.cfg.PageSize, store.PostFilter{AuthorID: author.ID})
	if err != nil {
		fail(c, "posts", err)
		return
	}

	actor := middleware.ActorFrom(c)
	following, err := h.store.IsFollowing(actor.ID, author.ID)
	if err != nil {
		fail(c, "posts", err)
		return
	}

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":      "Профайл пользователя " + author.FullName(),
		"Author":     author,
		"Posts":      posts,
		"Page":       page,
		"PostsCount": page.Count,
		"Following":  following,
		"IsSelf":     policy.IsOwner(actor.ID, author.ID),
	})
}

// loadPost resolves :id or answers 404.
func (h *PostHandler) loadPost(c *gin.Context) (*models.Post, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		NotFound(c)
		return nil, false
	}
	post, err := h.store.GetPost(id)
	if err != nil {
		fail(c, "posts", err)
		return nil, false
	}
	return post, true
}

func (h *PostHandler) PostDetail(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	comments, err := h.store.ListComments(post.ID)
	if err != nil {
		fail(c, "posts", err)
		return
	}
	count, err := h.store.CountPosts(store.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		fail(c, "posts", err)
		return
	}

	actor := middleware.ActorFrom(c)
	Render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"Title":      "Пост " + post.String(),
		"Post":       post,
		"Comments":   comments,
		"PostsCount": count,
		"Form":       forms.CommentForm{},
		"Errors":     forms.Errors{},
		"CanEdit":    policy.DecideFor(policy.EditPost, actor, post.AuthorID) == policy.Allow,
	})
}

func (h *PostHandler) renderPostForm(c *gin.Context, form forms.PostForm, errs forms.Errors, post *models.Post) {
	groups, err := h.store.ListGroups()
	if err != nil {
		fail(c, "posts", err)
		return
	}
	title := "Новый пост"
	if post != nil {
		title = "Редактировать пост"
	}
	Render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"Title":  title,
		"Form":   form,
		"Errors": errs,
		"Groups": groups,
		"Post":   post,
		"IsEdit": post != nil,
	})
}

// bindPostForm reads text, group and an optional image from the request.
func bindPostForm(c *gin.Context) (forms.PostForm, error) {
	form := forms.PostForm{
		Text:    c.PostForm("text"),
		GroupID: c.PostForm("group"),
	}
	header, err := c.FormFile("image")
	switch {
	case err == nil:
		form.Image = header
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return form, err
	}
	return form, nil
}

// removeUpload drops an image stored for a post that was never saved.
func (h *PostHandler) removeUpload(rel string) {
	if err := h.media.Delete(rel); err != nil {
		logg.Error("posts", "remove unsaved image", err)
	}
}

func (h *PostHandler) maxUpload() int64 {
	return h.cfg.MaxUploadMB << 20
}

// validate runs the form and stores an uploaded image. The returned errors are
// non-empty when the form must be shown again.
func (h *PostHandler) validate(c *gin.Context) (forms.PostForm, forms.Result[forms.PostInput], string, error) {
	form, err := bindPostForm(c)
	if err != nil {
		return form, forms.Result[forms.PostInput]{}, "", err
	}
	res, err := form.Validate(h.store, h.maxUpload())
	if err != nil || !res.Ok() || res.Value.Image == nil {
		return form, res, "", err
	}
	image, err := h.media.SaveImage(res.Value.Image)
	return form, res, image, err
}

// persistFailed folds store validation errors into res. It returns false for
// any other error, which has already been answered.
func persistFailed(c *gin.Context, err error, res *forms.Result[forms.PostInput]) bool {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		res.Errors.Merge(verr.Fields)
		return true
	}
	fail(c, "posts", err)
	return false
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderPostForm(c, forms.PostForm{}, forms.Errors{}, nil)
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	form, res, image, err := h.validate(c)
	if err != nil {
		fail(c, "posts", err)
		return
	}
	if !res.Ok() {
		h.renderPostForm(c, form, res.Errors, nil)
		return
	}

	post := &models.Post{
		Text:     res.Value.Text,
		AuthorID: user.ID,
		GroupID:  res.Value.GroupID,
		Image:    image,
	}
	if err := h.store.CreatePost(post); err != nil {
		h.removeUpload(image)
		if persistFailed(c, err, &res) {
			h.renderPostForm(c, form, res.Errors, nil)
		}
		return
	}

	h.pages.InvalidateIndex()
	logg.Info("posts", "post created by "+user.Username)
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// editable resolves the post, then applies the author-only rule.
func (h *PostHandler) editable(c *gin.Context) (*models.Post, bool) {
	post, ok := h.loadPost(c)
	if !ok {
		return nil, false
	}
	outcome := policy.DecideFor(policy.EditPost, middleware.ActorFrom(c), post.AuthorID)
	if outcome != policy.Allow {
		c.Redirect(http.StatusFound, policy.Target(outcome, h.cfg.LoginURL, c.Request.URL.RequestURI(), post.ID))
		return nil, false
	}
	return post, true
}

func postFormFrom(p *models.Post) forms.PostForm {
	form := forms.PostForm{Text: p.Text}
	if p.GroupID != nil {
		form.GroupID = utils.FormatID(*p.GroupID)
	}
	return form
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	post, ok := h.editable(c)
	if !ok {
		return
	}
	h.renderPostForm(c, postFormFrom(post), forms.Errors{}, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	post, ok := h.editable(c)
	if !ok {
		return
	}

	form, res, image, err := h.validate(c)
	if err != nil {
		fail(c, "posts", err)
		return
	}
	if !res.Ok() {
		h.renderPostForm(c, form, res.Errors, post)
		return
	}

	previous := post.Image
	post.Text = res.Value.Text
	post.GroupID = res.Value.GroupID
	if image != "" {
		post.Image = image
	}
	if err := h.store.UpdatePost(post); err != nil {
		h.removeUpload(image)
		if persistFailed(c, err, &res) {
			h.renderPostForm(c, form, res.Errors, post)
		}
		return
	}
	if image != "" && previous != "" {
		if err := h.media.Delete(previous); err != nil {
			logg.Error("posts", "remove replaced image", err)
		}
	}

	h.pages.InvalidateIndex()
	c.Redirect(http.StatusFound, policy.PostPath(post.ID))
}

// AddComment always returns to the post; invalid comments are dropped.
func (h *PostHandler) AddComment(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if c.Request.Method == http.MethodPost {
		res := forms.CommentForm{Text: c.PostForm("text")}.Validate()
		if res.Ok() {
			comment := &models.Comment{
				PostID:   post.ID,
				AuthorID: middleware.CurrentUser(c).ID,
				Text:     res.Value,
			}
			var verr *store.ValidationError
			if err := h.store.CreateComment(comment); err != nil && !errors.As(err, &verr) {
				fail(c, "comments", err)
				return
			}
		}
	}
	c.Redirect(http.StatusFound, policy.PostPath(post.ID))
}
