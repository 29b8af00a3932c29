package cache

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// Page is a captured response body.
type Page struct {
	Body []byte
	ETag string
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageKey is the slot of one page query under prefix.
func PageKey(prefix, page string) string {
	return prefix + "?page=" + page
}

func etagFor(body []byte) string {
	return `W/"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
}

// PageMiddleware caches successful HTML GET responses under key, one slot per
// ?page= value. Requests for which skip returns true bypass the cache.
func PageMiddleware(pages *Cache, key string, ttl time.Duration, skip func(*gin.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || (skip != nil && skip(c)) {
			c.Next()
			return
		}

		slot := PageKey(key, c.Query("page"))

		if cached, ok := pages.Get(slot).(Page); ok {
			c.Header("X-Cache", "HIT")
			c.Header("ETag", cached.ETag)
			if c.GetHeader("If-None-Match") == cached.ETag {
				c.AbortWithStatus(http.StatusNotModified)
				return
			}
			c.Data(http.StatusOK, htmlContentType, cached.Body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK &&
			c.Writer.Header().Get("Content-Type") == htmlContentType {
			body := append([]byte(nil), writer.body.Bytes()...)
			pages.Set(slot, Page{Body: body, ETag: etagFor(body)}, ttl)
		}
	}
}
