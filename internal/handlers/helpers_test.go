package handlers_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/router"
	"yatube/internal/services"
	"yatube/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/stretchr/testify/require"
)

// recordingRender replaces the template renderer and remembers what each
// response was rendered from. Bodies list the posts on the page so that
// cached and fresh responses can be compared byte for byte.
type recordingRender struct {
	mu   sync.Mutex
	name string
	data gin.H
}

func (r *recordingRender) Instance(name string, data any) render.Render {
	h, _ := data.(gin.H)
	return &recorded{owner: r, name: name, data: h}
}

func (r *recordingRender) last() (string, gin.H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name, r.data
}

func (r *recordingRender) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name, r.data = "", nil
}

type recorded struct {
	owner *recordingRender
	name  string
	data  gin.H
}

func (x *recorded) Render(w http.ResponseWriter) error {
	x.owner.mu.Lock()
	x.owner.name, x.owner.data = x.name, x.data
	x.owner.mu.Unlock()

	x.WriteContentType(w)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "template=%s\n", x.name)
	if posts, ok := x.data["Posts"].([]models.Post); ok {
		for _, p := range posts {
			fmt.Fprintf(&buf, "post=%d:%s\n", p.ID, p.Text)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (x *recorded) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type testEnv struct {
	router *gin.Engine
	store  *store.Store
	pages  *cache.Cache
	render *recordingRender
	cfg    *config.Config
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	cfg := config.Default()
	cfg.MediaRoot = t.TempDir()
	cfg.MaxUploadMB = 1

	pages, err := cache.New(cfg.CacheSize)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test-session", cookie.NewStore([]byte(cfg.SessionSecret))))

	// test-only shortcut to an authenticated session
	r.GET("/__login/:id", func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))
		_ = middleware.Login(c, &models.User{ID: uint(id)})
		c.Status(http.StatusNoContent)
	})

	rec := &recordingRender{}
	r.HTMLRender = rec

	st := store.New(conn)
	router.RegisterRoutes(r, router.Deps{
		Store: st,
		Pages: pages,
		Media: services.NewMediaStorage(cfg.MediaRoot),
		Cfg:   cfg,
	})

	return &testEnv{router: r, store: st, pages: pages, render: rec, cfg: cfg}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Password: "hashedpassword"}
	require.NoError(t, e.store.CreateUser(u))
	return u
}

func (e *testEnv) createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: "Тестовая группа " + slug, Slug: slug, Description: "Тестовое описание"}
	require.NoError(t, e.store.CreateGroup(g))
	return g
}

func (e *testEnv) createPost(t *testing.T, author *models.User, group *models.Group, text string) *models.Post {
	t.Helper()
	p := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, e.store.CreatePost(p))
	return p
}

// login returns a Cookie header value authenticating as u.
func (e *testEnv) login(t *testing.T, u *models.User) string {
	t.Helper()
	w := e.do(t, "GET", "/__login/"+strconv.Itoa(int(u.ID)), nil, "", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	return strings.Split(w.Header().Get("Set-Cookie"), ";")[0]
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, target, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, "GET", target, nil, "", cookie)
}

func (e *testEnv) postForm(t *testing.T, target string, form url.Values, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, "POST", target, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", cookie)
}

// postMultipart posts fields plus one file under "image".
func (e *testEnv) postMultipart(t *testing.T, target string, fields map[string]string, filename, fileType string, content []byte, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	h.Set("Content-Type", fileType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return e.do(t, "POST", target, &body, mw.FormDataContentType(), cookie)
}

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
