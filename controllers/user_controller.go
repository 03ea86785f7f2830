package controllers

import (
	"strconv"

	"ambulance-dispatch-service/internal/error/code"
	"ambulance-dispatch-service/internal/error/response"
	"ambulance-dispatch-service/models"
	"ambulance-dispatch-service/services"
	"ambulance-dispatch-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceUserController 定义用户管理控制器接口
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	CreateUser()
	UpdateUser()
	DeleteUser()
	GetProfile()
	UpdateProfile()
	ChangePassword()
}

// UserController 处理用户账户相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateUserRequest 表示创建用户请求（仅管理员）
type CreateUserRequest struct {
	Username          string `json:"username" binding:"required" example:"paramedic01"`
	Password          string `json:"password" binding:"required,min=8" example:"secret123"`
	Email             string `json:"email" binding:"required,email" example:"paramedic01@example.com"`
	Role              string `json:"role" binding:"required" example:"paramedic"`
	FirstName         string `json:"first_name" example:"伟"`
	LastName          string `json:"last_name" example:"李"`
	PhoneNumber       string `json:"phone_number" example:"13900139000"`
	Address           string `json:"address"`
	EmergencyContact  string `json:"emergency_contact"`
	MedicalConditions string `json:"medical_conditions"`
	LicenseNumber     string `json:"license_number" example:"EMT-2024-0013"`
}

// UpdateUserRequest 表示更新用户请求。角色创建后不可修改
type UpdateUserRequest struct {
	Email             *string `json:"email"`
	Password          *string `json:"password"`
	FirstName         *string `json:"first_name"`
	LastName          *string `json:"last_name"`
	PhoneNumber       *string `json:"phone_number"`
	Address           *string `json:"address"`
	EmergencyContact  *string `json:"emergency_contact"`
	MedicalConditions *string `json:"medical_conditions"`
	LicenseNumber     *string `json:"license_number"`
}

// ChangePasswordRequest 表示修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// HandleUserFunc 返回一个处理用户管理请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		case "getProfile":
			controller.GetProfile()
		case "updateProfile":
			controller.UpdateProfile()
		case "changePassword":
			controller.ChangePassword()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetUsers 获取用户列表
// @Summary      获取用户列表
// @Description  获取所有用户，支持按角色过滤、搜索和分页，仅管理员可用
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        role query string false "角色过滤(patient/paramedic/admin)" example:"paramedic"
// @Param        search query string false "搜索关键词(用户名、姓名、邮箱)" example:"zhang"
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /users [get]
// @Security     BearerAuth
func (c *UserController) GetUsers() {
	var page models.PaginationQuery
	if err := c.Ctx.ShouldBindQuery(&page); err != nil {
		response.ParamError(c.Ctx, "无效的分页参数")
		return
	}
	page.Normalize()

	search := c.Ctx.Query("search")
	role := models.Role(c.Ctx.Query("role"))
	if role != "" && !role.Valid() {
		response.ParamError(c.Ctx, "无效的角色参数")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	users, total, err := userService.GetAllUsers(role, search, page.Page, page.PageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询用户列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page.Page, page.PageSize),
		"data":       users,
	})
}

// GetUser 获取单个用户详情
// @Summary      获取用户详情
// @Description  根据ID获取特定用户的详细信息，仅管理员可用
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (c *UserController) GetUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(uint(id))
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}

// CreateUser 创建用户
// @Summary      创建用户
// @Description  创建任意角色的用户账户，仅管理员可用
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "创建用户请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /users [post]
// @Security     BearerAuth
func (c *UserController) CreateUser() {
	var req CreateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	user := &models.User{
		Username:          req.Username,
		Password:          req.Password,
		Email:             req.Email,
		Role:              models.Role(req.Role),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		PhoneNumber:       req.PhoneNumber,
		Address:           req.Address,
		EmergencyContact:  req.EmergencyContact,
		MedicalConditions: req.MedicalConditions,
		LicenseNumber:     req.LicenseNumber,
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.CreateUser(user); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}

// UpdateUser 更新用户
// @Summary      更新用户
// @Description  更新用户资料，角色不可修改，仅管理员可用
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID" example:"1"
// @Param        request body UpdateUserRequest true "更新用户请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [put]
// @Security     BearerAuth
func (c *UserController) UpdateUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	updates := buildUserUpdates(&req)
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "没有需要更新的字段")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.UpdateUser(uint(id), updates)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Description  删除指定用户，最后一名管理员不可删除，仅管理员可用
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "用户ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (c *UserController) DeleteUser() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.DeleteUser(uint(id)); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"message": "用户已删除",
	})
}

// GetProfile 获取当前用户资料
// @Summary      获取个人资料
// @Description  获取当前登录用户的完整资料
// @Tags         User
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /profile [get]
// @Security     BearerAuth
func (c *UserController) GetProfile() {
	user, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	response.Success(c.Ctx, user)
}

// UpdateProfile 更新当前用户资料
// @Summary      更新个人资料
// @Description  更新当前登录用户的资料，角色不可修改
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body UpdateUserRequest true "更新资料请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /profile [put]
// @Security     BearerAuth
func (c *UserController) UpdateProfile() {
	user, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	// 个人资料入口不允许改密码，密码走独立接口
	req.Password = nil

	updates := buildUserUpdates(&req)
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "没有需要更新的字段")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	updated, err := userService.UpdateUser(user.ID, updates)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, updated)
}

// ChangePassword 修改当前用户密码
// @Summary      修改密码
// @Description  校验旧密码后为当前登录用户设置新密码
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "修改密码请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile/password [put]
// @Security     BearerAuth
func (c *UserController) ChangePassword() {
	user, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	if err := userService.ChangePassword(user.ID, req.OldPassword, req.NewPassword); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"message": "密码修改成功",
	})
}

// buildUserUpdates 把非nil字段收集为更新映射
func buildUserUpdates(req *UpdateUserRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.EmergencyContact != nil {
		updates["emergency_contact"] = *req.EmergencyContact
	}
	if req.MedicalConditions != nil {
		updates["medical_conditions"] = *req.MedicalConditions
	}
	if req.LicenseNumber != nil {
		updates["license_number"] = *req.LicenseNumber
	}
	return updates
}
