package controllers

import (
	"ambulance-dispatch-service/internal/error/code"
	"ambulance-dispatch-service/internal/error/response"
	"ambulance-dispatch-service/services"
	"ambulance-dispatch-service/services/container"

	"github.com/gin-gonic/gin"
)

// InterfaceStatsController 定义统计控制器接口
type InterfaceStatsController interface {
	GetDashboardStats()
}

// StatsController 处理仪表盘统计请求
type StatsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStatsController 创建一个新的统计控制器
func NewStatsController(ctx *gin.Context, container *container.ServiceContainer) *StatsController {
	return &StatsController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleStatsFunc 返回一个处理统计请求的Gin处理函数
func HandleStatsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStatsController(ctx, container)

		switch method {
		case "getDashboardStats":
			controller.GetDashboardStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetDashboardStats 获取仪表盘统计
// @Summary      获取仪表盘统计
// @Description  返回按角色定制的仪表盘统计数据：请求总量、各状态数量、可用急救员与车辆数量
// @Tags         Stats
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /stats/dashboard [get]
// @Security     BearerAuth
func (c *StatsController) GetDashboardStats() {
	actor, ok := currentUser(c.Ctx, c.Container)
	if !ok {
		return
	}

	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	stats, err := statsService.GetDashboardStats(actor)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询统计数据失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}
