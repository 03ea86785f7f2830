package controllers

import (
	"strconv"
	"time"

	"ambulance-dispatch-service/internal/error/code"
	"ambulance-dispatch-service/internal/error/response"
	"ambulance-dispatch-service/models"
	"ambulance-dispatch-service/services"
	"ambulance-dispatch-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceRequestController 定义急救请求控制器接口
type InterfaceRequestController interface {
	CreateRequest()
	GetRequests()
	GetRequest()
	GetRecentRequests()
	AssignParamedic()
	AcceptRequest()
	UpdateStatus()
	GetStatusHistory()
}

// RequestController 处理急救请求相关的请求
type RequestController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRequestController 创建一个新的急救请求控制器
func NewRequestController(ctx *gin.Context, container *container.ServiceContainer) *RequestController {
	return &RequestController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateRequestRequest 表示创建急救请求的参数
type CreateRequestRequest struct {
	PickupAddress        string   `json:"pickup_address" binding:"required" example:"人民路88号"`
	PickupLatitude       *float64 `json:"pickup_latitude" example:"31.2304"`
	PickupLongitude      *float64 `json:"pickup_longitude" example:"121.4737"`
	DestinationAddress   string   `json:"destination_address" example:"市第一医院"`
	DestinationLatitude  *float64 `json:"destination_latitude"`
	DestinationLongitude *float64 `json:"destination_longitude"`
	Description          string   `json:"description" binding:"required" example:"胸痛，呼吸困难"`
	Priority             string   `json:"priority" example:"high"`
	ContactPhone         string   `json:"contact_phone" binding:"required" example:"13800138000"`
	Notes                string   `json:"notes"`
}

// AssignParamedicRequest 表示指派急救员的参数
type AssignParamedicRequest struct {
	ParamedicID uint   `json:"paramedic_id" binding:"required" example:"3"`
	Notes       string `json:"notes" example:"距离最近的空闲急救员"`
}

// UpdateStatusRequest 表示更新请求状态的参数
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"en_route"`
	Notes  string `json:"notes" example:"已出发，预计10分钟到达"`
}

// HandleRequestFunc 返回一个处理急救请求的Gin处理函数
func HandleRequestFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRequestController(ctx, container)

		switch method {
		case "createRequest":
			controller.CreateRequest()
		case "getRequests":
			controller.GetRequests()
		case "getRequest":
			controller.GetRequest()
		case "getRecentRequests":
			controller.GetRecentRequests()
		case "assignParamedic":
			controller.AssignParamedic()
		case "acceptRequest":
			controller.AcceptRequest()
		case "updateStatus":
			controller.UpdateStatus()
		case "getStatusHistory":
			controller.GetStatusHistory()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// CreateRequest 创建急救请求
// @Summary      创建急救请求
// @Description  患者提交新的急救请求，初始状态为pending
// @Tags         Request
// @Accept       json
// @Produce      json
// @Param        request body CreateRequestRequest true "急救请求参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /requests [post]
// @Security     BearerAuth
func (c *RequestController) CreateRequest() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	var req CreateRequestRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	priority := models.Priority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}

	request := &models.AmbulanceRequest{
		PickupAddress:        req.PickupAddress,
		PickupLatitude:       req.PickupLatitude,
		PickupLongitude:      req.PickupLongitude,
		DestinationAddress:   req.DestinationAddress,
		DestinationLatitude:  req.DestinationLatitude,
		DestinationLongitude: req.DestinationLongitude,
		Description:          req.Description,
		Priority:             priority,
		ContactPhone:         req.ContactPhone,
		Notes:                req.Notes,
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	if err := requestService.CreateRequest(actor, request); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, request)
}

// GetRequests 获取急救请求列表
// @Summary      获取急救请求列表
// @Description  按角色过滤请求列表：管理员看全部，患者看自己的，急救员看待处理和分配给自己的。按优先级和创建时间排序
// @Tags         Request
// @Accept       json
// @Produce      json
// @Param        status query string false "状态过滤" example:"pending"
// @Param        priority query string false "优先级过滤" example:"critical"
// @Param        paramedic_id query int false "急救员ID过滤"
// @Param        search query string false "搜索关键词(地址、描述)"
// @Param        date_from query string false "开始日期(RFC3339)"
// @Param        date_to query string false "结束日期(RFC3339)"
// @Param        page query int false "页码，默认为1"
// @Param        page_size query int false "每页条数，默认为10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /requests [get]
// @Security     BearerAuth
func (c *RequestController) GetRequests() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	var page models.PaginationQuery
	if err := c.Ctx.ShouldBindQuery(&page); err != nil {
		response.ParamError(c.Ctx, "无效的分页参数")
		return
	}
	page.Normalize()

	filter := services.RequestFilter{
		Status:   models.RequestStatus(c.Ctx.Query("status")),
		Priority: models.Priority(c.Ctx.Query("priority")),
		Search:   c.Ctx.Query("search"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		response.ParamError(c.Ctx, "无效的状态参数")
		return
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		response.ParamError(c.Ctx, "无效的优先级参数")
		return
	}
	if idStr := c.Ctx.Query("paramedic_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			response.ParamError(c.Ctx, "无效的急救员ID参数")
			return
		}
		filter.ParamedicID = uint(id)
	}
	if fromStr := c.Ctx.Query("date_from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			response.ParamError(c.Ctx, "无效的开始日期格式")
			return
		}
		filter.DateFrom = &from
	}
	if toStr := c.Ctx.Query("date_to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			response.ParamError(c.Ctx, "无效的结束日期格式")
			return
		}
		filter.DateTo = &to
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	requests, total, err := requestService.ListRequests(actor, filter, page.Page, page.PageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询请求列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page.Page, page.PageSize),
		"data":       requests,
	})
}

// GetRequest 获取单个急救请求详情
// @Summary      获取急救请求详情
// @Description  根据ID获取请求详情。患者只能查看自己的请求，急救员只能查看待处理或分配给自己的请求
// @Tags         Request
// @Accept       json
// @Produce      json
// @Param        id path int true "请求ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id} [get]
// @Security     BearerAuth
func (c *RequestController) GetRequest() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	request, err := requestService.GetRequestByID(uint(id), actor)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, request)
}

// GetRecentRequests 获取最近的请求
// @Summary      获取最近的请求
// @Description  返回当前用户可见的最近10条请求，用于仪表盘
// @Tags         Request
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /requests/recent [get]
// @Security     BearerAuth
func (c *RequestController) GetRecentRequests() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	requests, err := requestService.RecentRequests(actor)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询最近请求失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, requests)
}

// AssignParamedic 指派急救员
// @Summary      指派急救员
// @Description  将指定急救员指派到请求上，请求进入assigned状态。管理员和急救员可操作
// @Tags         Request
// @Accept       json
// @Produce      json
// @Param        id path int true "请求ID" example:"1"
// @Param        request body AssignParamedicRequest true "指派参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id}/assign [post]
// @Security     BearerAuth
func (c *RequestController) AssignParamedic() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req AssignParamedicRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	request, err := requestService.AssignParamedic(uint(id), req.ParamedicID, actor, req.Notes)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, request)
}

// AcceptRequest 急救员接单
// @Summary      急救员接单
// @Description  急救员接受一个待处理请求并把自己设为响应人。只有pending状态的请求可以接单
// @Tags         Request
// @Accept       json
// @Produce      json
// @Param        id path int true "请求ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id}/accept [post]
// @Security     BearerAuth
func (c *RequestController) AcceptRequest() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	request, err := requestService.AcceptRequest(uint(id), actor)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, request)
}

// UpdateStatus 更新请求状态
// @Summary      更新请求状态
// @Description  沿工作流推进请求状态，每次变更写入一条审计记录。管理员或被指派的急救员可操作
// @Tags         Request
// @Accept       json
// @Produce      json
// @Param        id path int true "请求ID" example:"1"
// @Param        request body UpdateStatusRequest true "状态更新参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id}/status [put]
// @Security     BearerAuth
func (c *RequestController) UpdateStatus() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	request, err := requestService.UpdateStatus(uint(id), models.RequestStatus(req.Status), actor, req.Notes)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, request)
}

// GetStatusHistory 获取请求状态历史
// @Summary      获取状态历史
// @Description  返回请求的全部状态变更记录，按时间倒序排列
// @Tags         Request
// @Accept       json
// @Produce      json
// @Param        id path int true "请求ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id}/history [get]
// @Security     BearerAuth
func (c *RequestController) GetStatusHistory() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	history, err := requestService.StatusHistory(uint(id), actor)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, history)
}
