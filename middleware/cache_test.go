package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedRouter(hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/stats", Cache(time.Minute), func(c *gin.Context) {
		*hits++
		c.JSON(http.StatusOK, gin.H{"hits": *hits})
	})
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCacheServesRepeatedGets(t *testing.T) {
	PurgeCache()
	hits := 0
	r := newCachedRouter(&hits)

	first := doGet(r, "Bearer token-a")
	require.Equal(t, http.StatusOK, first.Code)
	second := doGet(r, "Bearer token-a")

	assert.Equal(t, 1, hits, "第二次请求应命中缓存")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestCacheKeyIncludesAuthorization(t *testing.T) {
	// 仪表盘响应因用户而异，不同令牌不能共享缓存
	PurgeCache()
	hits := 0
	r := newCachedRouter(&hits)

	doGet(r, "Bearer token-a")
	doGet(r, "Bearer token-b")

	assert.Equal(t, 2, hits)
}

func TestPurgeCache(t *testing.T) {
	PurgeCache()
	hits := 0
	r := newCachedRouter(&hits)

	doGet(r, "Bearer token-a")
	PurgeCache()
	doGet(r, "Bearer token-a")

	assert.Equal(t, 2, hits)
}

func TestCacheSkipsNonGet(t *testing.T) {
	PurgeCache()
	gin.SetMode(gin.TestMode)
	hits := 0
	r := gin.New()
	r.POST("/stats", Cache(time.Minute), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/stats", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "第"+strconv.Itoa(i+1)+"次请求")
	}
	assert.Equal(t, 2, hits)
}
