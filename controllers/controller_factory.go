package controllers

import (
	"errors"

	"ambulance-dispatch-service/internal/error/code"
	"ambulance-dispatch-service/internal/error/response"
	"ambulance-dispatch-service/models"
	"ambulance-dispatch-service/services"
	"ambulance-dispatch-service/services/container"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// BaseController 是所有控制器的基础接口
type BaseController interface {
	// 获取服务容器
	GetContainer() *container.ServiceContainer
	// 获取Gin上下文
	GetContext() *gin.Context
}

// BaseControllerImpl 是控制器的基础实现
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer 实现 BaseController 接口
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext 实现 BaseController 接口
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ControllerFactory 用于创建控制器的工厂
type ControllerFactory struct {
	Container *container.ServiceContainer
}

// NewControllerFactory 创建一个新的控制器工厂
func NewControllerFactory(container *container.ServiceContainer) *ControllerFactory {
	return &ControllerFactory{
		Container: container,
	}
}

// currentUser 从认证中间件写入的claims中取出用户ID并加载完整用户记录。
// 加载失败时直接写出401响应并返回false，调用方应立即返回。
func currentUser(ctx *gin.Context, cnt *container.ServiceContainer) (*models.User, bool) {
	claimsValue, exists := ctx.Get("claims")
	if !exists {
		response.Unauthorized(ctx)
		return nil, false
	}

	claims, ok := claimsValue.(jwt.MapClaims)
	if !ok {
		response.Unauthorized(ctx)
		return nil, false
	}

	// MapClaims中的数值默认解码为float64
	idValue, ok := claims["user_id"].(float64)
	if !ok {
		response.Unauthorized(ctx)
		return nil, false
	}

	userService := cnt.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(uint(idValue))
	if err != nil {
		response.Unauthorized(ctx)
		return nil, false
	}

	return user, true
}

// failWithServiceError 将服务层哨兵错误翻译为统一错误码响应
func failWithServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		response.FailWithMessage(ctx, code.ErrPermissionDenied, err.Error(), nil)
	case errors.Is(err, services.ErrUserNotFound):
		response.FailWithMessage(ctx, code.ErrUserNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrRequestNotFound):
		response.FailWithMessage(ctx, code.ErrRequestNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrAmbulanceNotFound):
		response.FailWithMessage(ctx, code.ErrAmbulanceNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrRoleInvalid):
		response.FailWithMessage(ctx, code.ErrRoleInvalid, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidStatus):
		response.FailWithMessage(ctx, code.ErrValidation, err.Error(), nil)
	case errors.Is(err, services.ErrNotParamedic):
		response.FailWithMessage(ctx, code.ErrNotParamedic, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidTransition):
		response.FailWithMessage(ctx, code.ErrInvalidTransition, err.Error(), nil)
	case errors.Is(err, services.ErrRequestTerminal):
		response.FailWithMessage(ctx, code.ErrRequestTerminal, err.Error(), nil)
	case errors.Is(err, services.ErrDuplicateStatus):
		response.FailWithMessage(ctx, code.ErrDuplicateStatus, err.Error(), nil)
	case errors.Is(err, services.ErrParamedicUnavailable):
		response.FailWithMessage(ctx, code.ErrParamedicUnavailable, err.Error(), nil)
	case errors.Is(err, services.ErrUserAlreadyExist):
		response.FailWithMessage(ctx, code.ErrUserAlreadyExist, err.Error(), nil)
	case errors.Is(err, services.ErrAmbulanceExists):
		response.FailWithMessage(ctx, code.ErrAmbulanceAlreadyExist, err.Error(), nil)
	case errors.Is(err, services.ErrResetTokenInvalid):
		response.FailWithMessage(ctx, code.ErrResetTokenInvalid, err.Error(), nil)
	case errors.Is(err, services.ErrPasswordIncorrect):
		response.FailWithMessage(ctx, code.ErrUserPasswordIncorrect, err.Error(), nil)
	default:
		response.FailWithMessage(ctx, code.ErrDatabase, "操作失败: "+err.Error(), nil)
	}
}
