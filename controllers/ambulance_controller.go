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

// InterfaceAmbulanceController 定义车队管理控制器接口
type InterfaceAmbulanceController interface {
	GetAmbulances()
	GetAmbulance()
	GetAvailableAmbulances()
	CreateAmbulance()
	UpdateAmbulance()
	DeleteAmbulance()
	AssignParamedic()
	UpdateLocation()
}

// AmbulanceController 处理救护车队相关的请求
type AmbulanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAmbulanceController 创建一个新的车队控制器
func NewAmbulanceController(ctx *gin.Context, container *container.ServiceContainer) *AmbulanceController {
	return &AmbulanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateAmbulanceRequest 表示创建救护车的参数
type CreateAmbulanceRequest struct {
	VehicleNumber string `json:"vehicle_number" binding:"required" example:"AMB-001"`
	LicensePlate  string `json:"license_plate" binding:"required" example:"沪A12345"`
	Model         string `json:"model" example:"奔驰Sprinter"`
	Year          *int   `json:"year" example:"2023"`
	Status        string `json:"status" example:"available"`
}

// UpdateAmbulanceRequest 表示更新救护车的参数
type UpdateAmbulanceRequest struct {
	VehicleNumber *string `json:"vehicle_number"`
	LicensePlate  *string `json:"license_plate"`
	Model         *string `json:"model"`
	Year          *int    `json:"year"`
	Status        *string `json:"status"`
}

// AssignVehicleParamedicRequest 表示车辆与急救员绑定的参数。
// paramedic_id为null时解除绑定
type AssignVehicleParamedicRequest struct {
	ParamedicID *uint `json:"paramedic_id" example:"3"`
}

// UpdateLocationRequest 表示车辆GPS位置上报的参数
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required" example:"31.2304"`
	Longitude float64 `json:"longitude" binding:"required" example:"121.4737"`
}

// HandleAmbulanceFunc 返回一个处理车队管理请求的Gin处理函数
func HandleAmbulanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAmbulanceController(ctx, container)

		switch method {
		case "getAmbulances":
			controller.GetAmbulances()
		case "getAmbulance":
			controller.GetAmbulance()
		case "getAvailableAmbulances":
			controller.GetAvailableAmbulances()
		case "createAmbulance":
			controller.CreateAmbulance()
		case "updateAmbulance":
			controller.UpdateAmbulance()
		case "deleteAmbulance":
			controller.DeleteAmbulance()
		case "assignParamedic":
			controller.AssignParamedic()
		case "updateLocation":
			controller.UpdateLocation()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetAmbulances 获取救护车列表
// @Summary      获取救护车列表
// @Description  分页获取车队全部车辆，支持按状态过滤
// @Tags         Ambulance
// @Accept       json
// @Produce      json
// @Param        status query string false "状态过滤(available/busy/maintenance/out_of_service)" example:"available"
// @Param        page query int false "页码，默认为1" example:"1"
// @Param        page_size query int false "每页条数，默认为10" example:"10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /ambulances [get]
// @Security     BearerAuth
func (c *AmbulanceController) GetAmbulances() {
	var page models.PaginationQuery
	if err := c.Ctx.ShouldBindQuery(&page); err != nil {
		response.ParamError(c.Ctx, "无效的分页参数")
		return
	}
	page.Normalize()

	status := models.AmbulanceStatus(c.Ctx.Query("status"))
	if status != "" && !status.Valid() {
		response.ParamError(c.Ctx, "无效的状态参数")
		return
	}

	ambulanceService := c.Container.GetService("ambulance").(services.InterfaceAmbulanceService)
	ambulances, total, err := ambulanceService.GetAllAmbulances(status, page.Page, page.PageSize)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询救护车列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page.Page, page.PageSize),
		"data":       ambulances,
	})
}

// GetAmbulance 获取单辆救护车详情
// @Summary      获取救护车详情
// @Description  根据ID获取车辆详情，包含绑定的急救员信息
// @Tags         Ambulance
// @Accept       json
// @Produce      json
// @Param        id path int true "救护车ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /ambulances/{id} [get]
// @Security     BearerAuth
func (c *AmbulanceController) GetAmbulance() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	ambulanceService := c.Container.GetService("ambulance").(services.InterfaceAmbulanceService)
	ambulance, err := ambulanceService.GetAmbulanceByID(uint(id))
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, ambulance)
}

// GetAvailableAmbulances 获取可调度的救护车
// @Summary      获取可用救护车
// @Description  返回所有状态为available的车辆
// @Tags         Ambulance
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /ambulances/available [get]
// @Security     BearerAuth
func (c *AmbulanceController) GetAvailableAmbulances() {
	ambulanceService := c.Container.GetService("ambulance").(services.InterfaceAmbulanceService)
	ambulances, err := ambulanceService.GetAvailableAmbulances()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询可用救护车失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, ambulances)
}

// CreateAmbulance 登记新救护车
// @Summary      登记救护车
// @Description  向车队登记一辆新救护车，车牌和车辆编号必须唯一，仅管理员可用
// @Tags         Ambulance
// @Accept       json
// @Produce      json
// @Param        request body CreateAmbulanceRequest true "登记参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /ambulances [post]
// @Security     BearerAuth
func (c *AmbulanceController) CreateAmbulance() {
	var req CreateAmbulanceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	ambulance := &models.Ambulance{
		VehicleNumber: req.VehicleNumber,
		LicensePlate:  req.LicensePlate,
		Model:         req.Model,
		Year:          req.Year,
		Status:        models.AmbulanceStatus(req.Status),
	}

	ambulanceService := c.Container.GetService("ambulance").(services.InterfaceAmbulanceService)
	if err := ambulanceService.CreateAmbulance(ambulance); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, ambulance)
}

// UpdateAmbulance 更新救护车信息
// @Summary      更新救护车
// @Description  更新车辆信息或运行状态，仅管理员可用
// @Tags         Ambulance
// @Accept       json
// @Produce      json
// @Param        id path int true "救护车ID" example:"1"
// @Param        request body UpdateAmbulanceRequest true "更新参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /ambulances/{id} [put]
// @Security     BearerAuth
func (c *AmbulanceController) UpdateAmbulance() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateAmbulanceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	updates := make(map[string]interface{})
	if req.VehicleNumber != nil {
		updates["vehicle_number"] = *req.VehicleNumber
	}
	if req.LicensePlate != nil {
		updates["license_plate"] = *req.LicensePlate
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "没有需要更新的字段")
		return
	}

	ambulanceService := c.Container.GetService("ambulance").(services.InterfaceAmbulanceService)
	ambulance, err := ambulanceService.UpdateAmbulance(uint(id), updates)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, ambulance)
}

// DeleteAmbulance 删除救护车
// @Summary      删除救护车
// @Description  从车队移除一辆救护车，仅管理员可用
// @Tags         Ambulance
// @Accept       json
// @Produce      json
// @Param        id path int true "救护车ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /ambulances/{id} [delete]
// @Security     BearerAuth
func (c *AmbulanceController) DeleteAmbulance() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	ambulanceService := c.Container.GetService("ambulance").(services.InterfaceAmbulanceService)
	if err := ambulanceService.DeleteAmbulance(uint(id)); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"message": "救护车已删除",
	})
}

// AssignParamedic 绑定或解绑车辆急救员
// @Summary      绑定车辆急救员
// @Description  将急救员与车辆一对一绑定，传入null解除绑定，仅管理员可用
// @Tags         Ambulance
// @Accept       json
// @Produce      json
// @Param        id path int true "救护车ID" example:"1"
// @Param        request body AssignVehicleParamedicRequest true "绑定参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /ambulances/{id}/paramedic [put]
// @Security     BearerAuth
func (c *AmbulanceController) AssignParamedic() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req AssignVehicleParamedicRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	ambulanceService := c.Container.GetService("ambulance").(services.InterfaceAmbulanceService)
	ambulance, err := ambulanceService.AssignParamedic(uint(id), req.ParamedicID)
	if err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, ambulance)
}

// UpdateLocation 上报车辆位置
// @Summary      上报车辆位置
// @Description  更新车辆当前GPS坐标。车载终端通常走MQTT上报，此接口作为HTTP备用通道
// @Tags         Ambulance
// @Accept       json
// @Produce      json
// @Param        id path int true "救护车ID" example:"1"
// @Param        request body UpdateLocationRequest true "位置参数"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /ambulances/{id}/location [put]
// @Security     BearerAuth
func (c *AmbulanceController) UpdateLocation() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req UpdateLocationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	ambulanceService := c.Container.GetService("ambulance").(services.InterfaceAmbulanceService)
	if err := ambulanceService.UpdateLocation(uint(id), req.Latitude, req.Longitude); err != nil {
		failWithServiceError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"message": "位置已更新",
	})
}
