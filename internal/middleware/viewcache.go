package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultViewCacheTTL     = 15 * time.Second
	defaultViewCacheMaxBody = 1 << 20 // 1 MiB
)

// ViewCache memoizes successful GET responses in process memory. Mutating
// handlers call Invalidate with the affected path prefixes so stale listings
// never outlive a write.
type ViewCache struct {
	store        *gocache.Cache
	ttl          time.Duration
	maxBodyBytes int
}

type cachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

type cacheBodyWriter struct {
	gin.ResponseWriter
	body         []byte
	maxBodyBytes int
	overflow     bool
}

func (w *cacheBodyWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *cacheBodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *cacheBodyWriter) capture(data []byte) {
	if w.maxBodyBytes <= 0 || w.overflow || len(data) == 0 {
		return
	}
	remaining := w.maxBodyBytes - len(w.body)
	if remaining <= 0 {
		w.overflow = true
		return
	}
	if len(data) > remaining {
		w.body = append(w.body, data[:remaining]...)
		w.overflow = true
		return
	}
	w.body = append(w.body, data...)
}

func NewViewCache(ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = defaultViewCacheTTL
	}
	return &ViewCache{
		store:        gocache.New(ttl, 2*ttl),
		ttl:          ttl,
		maxBodyBytes: defaultViewCacheMaxBody,
	}
}

// Middleware serves cached bodies for repeated GETs and records fresh 200
// responses on the way out.
func (v *ViewCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if entry, ok := v.store.Get(key); ok {
			payload := entry.(cachedResponse)
			c.Header("x-view-cache", "hit")
			c.Data(payload.Status, payload.ContentType, payload.Body)
			c.Abort()
			return
		}

		buffer := &cacheBodyWriter{
			ResponseWriter: c.Writer,
			maxBodyBytes:   v.maxBodyBytes,
		}
		c.Writer = buffer
		c.Next()

		status := c.Writer.Status()
		if status != http.StatusOK || buffer.overflow || len(buffer.body) == 0 {
			return
		}

		v.store.Set(key, cachedResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        buffer.body,
		}, v.ttl)
	}
}

// Invalidate drops every cached view whose request path starts with one of
// the given prefixes. Query strings are ignored when matching.
func (v *ViewCache) Invalidate(pathPrefixes ...string) {
	if len(pathPrefixes) == 0 {
		return
	}
	for key := range v.store.Items() {
		path := key
		if i := strings.IndexByte(path, '?'); i >= 0 {
			path = path[:i]
		}
		for _, prefix := range pathPrefixes {
			if strings.HasPrefix(path, prefix) {
				v.store.Delete(key)
				break
			}
		}
	}
}
