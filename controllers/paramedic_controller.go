package controllers

import (
	"ambulance-dispatch-service/internal/error/code"
	"ambulance-dispatch-service/internal/error/response"
	"ambulance-dispatch-service/models"
	"ambulance-dispatch-service/services"
	"ambulance-dispatch-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceParamedicController 定义急救员控制器接口
type InterfaceParamedicController interface {
	GetParamedics()
	GetAvailableParamedics()
	ToggleAvailability()
	GetActiveAssignments()
}

// ParamedicController 处理急救员相关的请求
type ParamedicController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewParamedicController 创建一个新的急救员控制器
func NewParamedicController(ctx *gin.Context, container *container.ServiceContainer) *ParamedicController {
	return &ParamedicController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleParamedicFunc 返回一个处理急救员请求的Gin处理函数
func HandleParamedicFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewParamedicController(ctx, container)

		switch method {
		case "getParamedics":
			controller.GetParamedics()
		case "getAvailableParamedics":
			controller.GetAvailableParamedics()
		case "toggleAvailability":
			controller.ToggleAvailability()
		case "getActiveAssignments":
			controller.GetActiveAssignments()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetParamedics 获取急救员列表
// @Summary      获取急救员列表
// @Description  分页获取全部急救员账户，调度人员可用
// @Tags         Paramedic
// @Accept       json
// @Produce      json
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /paramedics [get]
// @Security     BearerAuth
func (c *ParamedicController) GetParamedics() {
	var page models.PaginationQuery
	if err := c.Ctx.ShouldBindQuery(&page); err != nil {
		response.ParamError(c.Ctx, "无效的分页参数")
		return
	}
	page.Normalize()

	paramedicService := c.Container.GetService("paramedic").(services.InterfaceParamedicService)
	paramedics, total, err := paramedicService.GetParamedics(page.Page, page.PageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询急救员列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page.Page, page.PageSize),
		"data":       paramedics,
	})
}

// GetAvailableParamedics 获取当前可用的急救员
// @Summary      获取可用急救员
// @Description  返回所有标记为可用的急救员，用于指派时选择
// @Tags         Paramedic
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /paramedics/available [get]
// @Security     BearerAuth
func (c *ParamedicController) GetAvailableParamedics() {
	paramedicService := c.Container.GetService("paramedic").(services.InterfaceParamedicService)
	paramedics, err := paramedicService.GetAvailableParamedics()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询可用急救员失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, paramedics)
}

// ToggleAvailability 切换当前急救员的可用状态
// @Summary      切换可用状态
// @Description  急救员上下班打卡：在可用与不可用之间切换自己的状态
// @Tags         Paramedic
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /paramedics/availability [put]
// @Security     BearerAuth
func (c *ParamedicController) ToggleAvailability() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	paramedicService := c.Container.GetService("paramedic").(services.InterfaceParamedicService)
	available, err := paramedicService.ToggleAvailability(actor.ID)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"is_available": available,
	})
}

// GetActiveAssignments 获取当前急救员的进行中任务
// @Summary      获取进行中任务
// @Description  返回分配给当前急救员且尚未结束的请求列表
// @Tags         Paramedic
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /paramedics/assignments [get]
// @Security     BearerAuth
func (c *ParamedicController) GetActiveAssignments() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	paramedicService := c.Container.GetService("paramedic").(services.InterfaceParamedicService)
	assignments, err := paramedicService.ActiveAssignments(actor.ID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询进行中任务失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, assignments)
}
