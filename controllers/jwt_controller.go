package controllers

import (
	"ambulance-dispatch-service/internal/error/code"
	"ambulance-dispatch-service/internal/error/response"
	"ambulance-dispatch-service/models"
	"ambulance-dispatch-service/services"
	"ambulance-dispatch-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Login()
	Register()
	ForgotPassword()
	ResetPassword()
}

// JWTController 处理身份验证请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// RegisterRequest 表示患者自助注册请求
type RegisterRequest struct {
	Username    string `json:"username" binding:"required" example:"zhangsan"`
	Password    string `json:"password" binding:"required,min=8" example:"secret123"`
	Email       string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	FirstName   string `json:"first_name" example:"三"`
	LastName    string `json:"last_name" example:"张"`
	PhoneNumber string `json:"phone_number" example:"13800138000"`
}

// ForgotPasswordRequest 表示忘记密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
}

// ResetPasswordRequest 表示重置密码请求
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// LoginResponse 表示登录响应
type LoginResponse struct {
	Code    int         `json:"code" example:"100000"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"100005"`
	Message string      `json:"message" example:"权限不足"`
	Data    interface{} `json:"data"`
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "register":
			controller.Register()
		case "forgot_password":
			controller.ForgotPassword()
		case "reset_password":
			controller.ResetPassword()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Login 处理用户登录
// @Summary      用户登录
// @Description  验证用户名密码并返回JWT令牌，令牌中携带用户角色
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录请求参数"
// @Success      200  {object}  LoginResponse  "登录成功，返回token"
// @Failure      400  {object}  ErrorResponse  "请求参数错误"
// @Failure      401  {object}  ErrorResponse  "用户名或密码错误"
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)

	user, err := userService.Authenticate(req.Username, req.Password)
	if err != nil {
		// 不区分用户不存在和密码错误，避免账户枚举
		response.Unauthorized(c.Ctx)
		return
	}

	token, err := jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "生成令牌失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token":      token,
		"user_id":    user.ID,
		"role":       user.Role,
		"username":   user.Username,
		"full_name":  user.FullName(),
		"created_at": user.CreatedAt,
	})
}

// Register 处理患者自助注册
// @Summary      患者注册
// @Description  创建一个患者账户并返回JWT令牌。急救员和管理员账户只能由管理员创建
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "注册请求参数"
// @Success      200  {object}  LoginResponse  "注册成功，返回token"
// @Failure      400  {object}  ErrorResponse  "请求参数错误或用户已存在"
// @Router       /auth/register [post]
func (c *JWTController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)

	// 自助注册只能创建患者账户
	user := &models.User{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Role:        models.RolePatient,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}

	if err := userService.CreateUser(user); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	token, err := jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "生成令牌失败", nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token":    token,
		"user_id":  user.ID,
		"role":     user.Role,
		"username": user.Username,
	})
}

// ForgotPassword 发起密码重置
// @Summary      忘记密码
// @Description  为指定邮箱生成密码重置令牌并通过邮件发送。无论邮箱是否存在都返回成功
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body ForgotPasswordRequest true "忘记密码请求参数"
// @Success      200  {object}  LoginResponse  "请求已受理"
// @Failure      400  {object}  ErrorResponse  "请求参数错误"
// @Router       /auth/password/forgot [post]
func (c *JWTController) ForgotPassword() {
	var req ForgotPasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	emailService := c.Container.GetService("email").(services.InterfaceEmailService)

	token, user, err := userService.CreateResetToken(req.Email)
	if err == nil {
		emailService.SendPasswordResetEmail(user, token.Token)
	}

	// 邮箱不存在时也返回成功，避免账户枚举
	response.Success(c.Ctx, gin.H{
		"message": "如果该邮箱已注册，重置邮件将在几分钟内送达",
	})
}

// ResetPassword 使用令牌重置密码
// @Summary      重置密码
// @Description  校验密码重置令牌并设置新密码，令牌一次性有效
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "重置密码请求参数"
// @Success      200  {object}  LoginResponse  "重置成功"
// @Failure      400  {object}  ErrorResponse  "令牌无效或已过期"
// @Router       /auth/password/reset [post]
func (c *JWTController) ResetPassword() {
	var req ResetPasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.ResetPassword(req.Token, req.NewPassword); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"message": "密码重置成功，请使用新密码登录",
	})
}
