package middleware

import (
	"net/http"
	"strings"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"
	"ambulance-dispatch-service/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// authenticate 通用认证逻辑：验证令牌并检查角色是否在允许集合内
func authenticate(c *gin.Context, allowedRoles ...models.Role) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Authorization header is required",
			"data":    nil,
		})
		c.Abort()
		return false
	}

	// 提取token
	tokenString := extractToken(authHeader)
	token, err := jwtService.ValidateToken(tokenString)
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid or expired token",
			"data":    nil,
		})
		c.Abort()
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid token claims",
			"data":    nil,
		})
		c.Abort()
		return false
	}

	roleStr, exists := claims["role"].(string)
	role := models.Role(roleStr)
	if !exists || !role.Valid() {
		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "Insufficient permissions: requires valid user role",
			"data":    nil,
		})
		c.Abort()
		return false
	}

	allowed := false
	for _, r := range allowedRoles {
		if role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "Insufficient permissions",
			"data":    nil,
		})
		c.Abort()
		return false
	}

	// 存储claims到上下文
	c.Set("userID", claims["user_id"])
	c.Set("role", string(role))
	c.Set("claims", claims)
	return true
}

// AuthenticateAdmin 验证系统管理员权限
func AuthenticateAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, models.RoleAdmin) {
			c.Next()
		}
	}
}

// AuthenticateDispatchStaff 验证调度人员权限（管理员或急救员）
func AuthenticateDispatchStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, models.RoleAdmin, models.RoleParamedic) {
			c.Next()
		}
	}
}

// AuthenticateUser 验证任意已登录用户
func AuthenticateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, models.RoleAdmin, models.RoleParamedic, models.RolePatient) {
			c.Next()
		}
	}
}
