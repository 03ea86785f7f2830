package routes

import (
	"time"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/controllers"
	_ "ambulance-dispatch-service/docs"
	"ambulance-dispatch-service/middleware"
	"ambulance-dispatch-service/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// 初始化认证中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	healthController := controllers.NewHealthCheckController()
	api.GET("/ping", healthController.Ping)

	// 认证路由，按IP+路径限流防止暴力破解
	auth := api.Group("/auth")
	auth.Use(middleware.CombinedRateLimiter(1, 5))
	auth.POST("/login", controllers.HandleJWTFunc(container, "login"))
	auth.POST("/register", controllers.HandleJWTFunc(container, "register"))
	auth.POST("/password/forgot", controllers.HandleJWTFunc(container, "forgot_password"))
	auth.POST("/password/reset", controllers.HandleJWTFunc(container, "reset_password"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 任意已登录用户可访问的路由
	user := api.Group("/")
	user.Use(middleware.AuthenticateUser())

	// 个人资料路由
	user.Group("/profile").GET("", controllers.HandleUserFunc(container, "getProfile"))
	user.Group("/profile").PUT("", controllers.HandleUserFunc(container, "updateProfile"))
	user.Group("/profile").PUT("/password", controllers.HandleUserFunc(container, "changePassword"))

	// 急救请求路由：创建接口限流，防止重复报单
	user.Group("/requests").POST("", middleware.CombinedRateLimiter(0.5, 3), controllers.HandleRequestFunc(container, "createRequest"))
	user.Group("/requests").GET("", controllers.HandleRequestFunc(container, "getRequests"))
	user.Group("/requests").GET("/recent", controllers.HandleRequestFunc(container, "getRecentRequests"))
	user.Group("/requests").GET("/:id", controllers.HandleRequestFunc(container, "getRequest"))
	user.Group("/requests").GET("/:id/history", controllers.HandleRequestFunc(container, "getStatusHistory"))

	// 仪表盘统计路由，响应短暂缓存
	user.Group("/stats").GET("/dashboard", middleware.Cache(15*time.Second), controllers.HandleStatsFunc(container, "getDashboardStats"))

	// 调度人员（管理员或急救员）路由
	staff := api.Group("/")
	staff.Use(middleware.AuthenticateDispatchStaff())

	// 请求工作流路由
	staff.Group("/requests").POST("/:id/assign", controllers.HandleRequestFunc(container, "assignParamedic"))
	staff.Group("/requests").POST("/:id/accept", controllers.HandleRequestFunc(container, "acceptRequest"))
	staff.Group("/requests").PUT("/:id/status", controllers.HandleRequestFunc(container, "updateStatus"))

	// 急救员路由
	staff.Group("/paramedics").GET("", controllers.HandleParamedicFunc(container, "getParamedics"))
	staff.Group("/paramedics").GET("/available", controllers.HandleParamedicFunc(container, "getAvailableParamedics"))
	staff.Group("/paramedics").GET("/assignments", controllers.HandleParamedicFunc(container, "getActiveAssignments"))
	staff.Group("/paramedics").PUT("/availability", controllers.HandleParamedicFunc(container, "toggleAvailability"))

	// 车队查询与位置上报路由
	staff.Group("/ambulances").GET("", controllers.HandleAmbulanceFunc(container, "getAmbulances"))
	staff.Group("/ambulances").GET("/available", controllers.HandleAmbulanceFunc(container, "getAvailableAmbulances"))
	staff.Group("/ambulances").GET("/:id", controllers.HandleAmbulanceFunc(container, "getAmbulance"))
	staff.Group("/ambulances").PUT("/:id/location", controllers.HandleAmbulanceFunc(container, "updateLocation"))

	// 仅管理员可访问的路由
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateAdmin())

	// 用户管理路由
	admin.Group("/users").GET("", controllers.HandleUserFunc(container, "getUsers"))
	admin.Group("/users").GET("/:id", controllers.HandleUserFunc(container, "getUser"))
	admin.Group("/users").POST("", controllers.HandleUserFunc(container, "createUser"))
	admin.Group("/users").PUT("/:id", controllers.HandleUserFunc(container, "updateUser"))
	admin.Group("/users").DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))

	// 车队管理路由
	admin.Group("/ambulances").POST("", controllers.HandleAmbulanceFunc(container, "createAmbulance"))
	admin.Group("/ambulances").PUT("/:id", controllers.HandleAmbulanceFunc(container, "updateAmbulance"))
	admin.Group("/ambulances").DELETE("/:id", controllers.HandleAmbulanceFunc(container, "deleteAmbulance"))
	admin.Group("/ambulances").PUT("/:id/paramedic", controllers.HandleAmbulanceFunc(container, "assignParamedic"))
}
