package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketBurstThenDeny(t *testing.T) {
	// 填充速率极低，突发额度用尽后应被拒绝
	tb := newTokenBucket(0.001, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow(), "第%d次请求应在突发额度内", i+1)
	}
	assert.False(t, tb.Allow())
}

func TestTokenBucketRefill(t *testing.T) {
	tb := newTokenBucket(100, 1)

	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	// 100令牌/秒，等待足够时间后恢复
	time.Sleep(20 * time.Millisecond)
	assert.True(t, tb.Allow())
}

func TestTokenBucketCapacityCap(t *testing.T) {
	tb := newTokenBucket(1000, 2)

	// 闲置后令牌不超过桶容量
	time.Sleep(10 * time.Millisecond)
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestCleanIdleLimiters(t *testing.T) {
	limitersMu.Lock()
	limiters = make(map[string]*tokenBucket)
	limitersMu.Unlock()

	stale := getLimiter("10.0.0.1", 1, 5)
	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-2 * time.Hour)
	stale.mu.Unlock()
	getLimiter("10.0.0.2:/api/auth/login", 1, 5)

	cleanIdleLimiters(1 * time.Hour)

	limitersMu.RLock()
	defer limitersMu.RUnlock()
	assert.NotContains(t, limiters, "10.0.0.1")
	assert.Contains(t, limiters, "10.0.0.2:/api/auth/login")
}
