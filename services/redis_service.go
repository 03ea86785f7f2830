package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"ambulance-dispatch-service/config"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService 定义Redis缓存服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheDashboardStats(role string, userID uint, stats interface{}, expiration time.Duration) error
	GetDashboardStats(role string, userID uint, dest interface{}) error
	InvalidateDashboardStats() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// dashboardStatsKey 仪表盘统计缓存键，按角色和用户区分
func dashboardStatsKey(role string, userID uint) string {
	return "dashboard_stats:" + role + ":" + strconv.FormatUint(uint64(userID), 10)
}

// CacheDashboardStats 缓存仪表盘统计数据
func (s *RedisService) CacheDashboardStats(role string, userID uint, stats interface{}, expiration time.Duration) error {
	return s.Set(dashboardStatsKey(role, userID), stats, expiration)
}

// GetDashboardStats 读取缓存的仪表盘统计数据
func (s *RedisService) GetDashboardStats(role string, userID uint, dest interface{}) error {
	return s.Get(dashboardStatsKey(role, userID), dest)
}

// InvalidateDashboardStats 清除所有仪表盘统计缓存
func (s *RedisService) InvalidateDashboardStats() error {
	keys, err := s.Client.Keys(s.Ctx, "dashboard_stats:*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(s.Ctx, keys...).Err()
}
