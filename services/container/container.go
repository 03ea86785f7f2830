package container

import (
	"context"
	"log"
	"sync"
	"time"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据存储服务
	redisService services.InterfaceRedisService

	// MQTT调度服务
	mqttDispatchService services.InterfaceMQTTDispatchService

	// 业务服务
	userService      services.InterfaceUserService
	paramedicService services.InterfaceParamedicService
	requestService   services.InterfaceRequestService
	ambulanceService services.InterfaceAmbulanceService
	statsService     services.InterfaceStatsService
	emailService     services.InterfaceEmailService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)

	// 初始化Redis服务
	c.redisService = services.NewRedisService(c.config)

	// 初始化MQTT调度服务
	c.mqttDispatchService = services.NewMQTTDispatchService(c.db, c.config)

	// 连接MQTT服务器，失败不阻塞启动，调度事件发布会降级为日志告警
	if err := c.mqttDispatchService.Connect(); err != nil {
		log.Printf("MQTT服务连接失败: %v", err)
	}

	// 初始化业务服务
	c.userService = services.NewUserService(c.db, c.config)
	c.paramedicService = services.NewParamedicService(c.db, c.config)
	c.requestService = services.NewRequestService(c.db, c.config, c.mqttDispatchService)
	c.ambulanceService = services.NewAmbulanceService(c.db, c.config)
	c.statsService = services.NewStatsService(c.db, c.config, c.redisService)
	c.emailService = services.NewEmailService(c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "mqtt_dispatch":
		return c.mqttDispatchService
	case "user":
		return c.userService
	case "paramedic":
		return c.paramedicService
	case "request":
		return c.requestService
	case "ambulance":
		return c.ambulanceService
	case "stats":
		return c.statsService
	case "email":
		return c.emailService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
