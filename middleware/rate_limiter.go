package middleware

import (
	"sync"
	"time"

	"ambulance-dispatch-service/internal/error/code"
	"ambulance-dispatch-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// 令牌桶限流器
type tokenBucket struct {
	rate       float64 // 每秒填充的令牌数
	capacity   int     // 桶的容量
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
	mu         sync.Mutex
}

func newTokenBucket(rate float64, capacity int) *tokenBucket {
	now := time.Now()
	return &tokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: now,
		lastSeen:   now,
	}
}

// Allow 尝试获取一个令牌
func (tb *tokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now
	tb.lastSeen = now

	// 填充令牌
	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// 按键（IP或IP:路径）维护的限流器集合
var (
	limiters   = make(map[string]*tokenBucket)
	limitersMu sync.RWMutex
)

func getLimiter(key string, rate float64, burst int) *tokenBucket {
	limitersMu.RLock()
	limiter, exists := limiters[key]
	limitersMu.RUnlock()

	if !exists {
		limiter = newTokenBucket(rate, burst)
		limitersMu.Lock()
		limiters[key] = limiter
		limitersMu.Unlock()
	}
	return limiter
}

// IPRateLimiter 按客户端IP限流
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := getLimiter(c.ClientIP(), rate, burst)
		if !limiter.Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "请求频率过高，请稍后再试", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CombinedRateLimiter 按IP和路径组合限流，用于登录、报单等敏感接口
func CombinedRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.Request.URL.Path
		limiter := getLimiter(key, rate, burst)
		if !limiter.Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "请求频率过高，请稍后再试", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// 定期清理长时间未活动的限流器
func init() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			cleanIdleLimiters(1 * time.Hour)
		}
	}()
}

func cleanIdleLimiters(idle time.Duration) {
	cutoff := time.Now().Add(-idle)

	limitersMu.Lock()
	defer limitersMu.Unlock()

	for key, limiter := range limiters {
		limiter.mu.Lock()
		stale := limiter.lastSeen.Before(cutoff)
		limiter.mu.Unlock()
		if stale {
			delete(limiters, key)
		}
	}
}
