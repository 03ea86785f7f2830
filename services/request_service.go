package services

import (
	"errors"
	"time"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"

	"gorm.io/gorm"
)

// InterfaceDispatchNotifier 调度事件通知接口，由MQTT调度服务实现
type InterfaceDispatchNotifier interface {
	PublishRequestCreated(request *models.AmbulanceRequest) error
	PublishRequestAssigned(request *models.AmbulanceRequest) error
	PublishStatusChanged(request *models.AmbulanceRequest, oldStatus models.RequestStatus) error
}

// RequestFilter 急救请求列表过滤条件
type RequestFilter struct {
	Status      models.RequestStatus
	Priority    models.Priority
	ParamedicID uint
	Search      string // 匹配地址和描述
	DateFrom    *time.Time
	DateTo      *time.Time
}

// InterfaceRequestService 定义急救请求工作流服务接口
type InterfaceRequestService interface {
	CreateRequest(actor *models.User, request *models.AmbulanceRequest) error
	GetRequestByID(id uint, actor *models.User) (*models.AmbulanceRequest, error)
	ListRequests(actor *models.User, filter RequestFilter, page, pageSize int) ([]models.AmbulanceRequest, int64, error)
	RecentRequests(actor *models.User) ([]models.AmbulanceRequest, error)
	AssignParamedic(requestID, paramedicID uint, actor *models.User, notes string) (*models.AmbulanceRequest, error)
	AcceptRequest(requestID uint, actor *models.User) (*models.AmbulanceRequest, error)
	UpdateStatus(requestID uint, newStatus models.RequestStatus, actor *models.User, notes string) (*models.AmbulanceRequest, error)
	StatusHistory(requestID uint, actor *models.User) ([]models.RequestStatusUpdate, error)
}

// RequestService 急救请求状态工作流的唯一入口：
// 所有状态变更都经过这里，每次成功的转换都写入一条审计记录。
type RequestService struct {
	DB       *gorm.DB
	Config   *config.Config
	Notifier InterfaceDispatchNotifier // 可为nil，此时不发布调度事件
}

// NewRequestService 创建新的急救请求服务
func NewRequestService(db *gorm.DB, cfg *config.Config, notifier InterfaceDispatchNotifier) InterfaceRequestService {
	return &RequestService{
		DB:       db,
		Config:   cfg,
		Notifier: notifier,
	}
}

// CreateRequest 创建急救请求（仅患者角色），初始状态固定为pending
func (s *RequestService) CreateRequest(actor *models.User, request *models.AmbulanceRequest) error {
	if actor.Role != models.RolePatient {
		return ErrPermissionDenied
	}

	if request.Priority == "" {
		request.Priority = models.PriorityMedium
	}
	if !request.Priority.Valid() {
		return ErrInvalidStatus
	}

	// 创建时强制初始字段，忽略调用方传入的状态
	request.PatientID = actor.ID
	request.ParamedicID = nil
	request.Status = models.StatusPending
	request.AssignedAt = nil
	request.CompletedAt = nil
	request.ActualArrivalTime = nil

	if err := s.DB.Create(request).Error; err != nil {
		return err
	}

	if s.Notifier != nil {
		if err := s.Notifier.PublishRequestCreated(request); err != nil {
			config.Warning("发布请求创建事件失败: %v", err)
		}
	}

	return nil
}

// canView 请求读取范围：管理员不限；患者仅限本人发起的；急救员仅限分配给自己的或待处理的
func canView(request *models.AmbulanceRequest, actor *models.User) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RolePatient:
		return request.PatientID == actor.ID
	case models.RoleParamedic:
		if request.Status == models.StatusPending {
			return true
		}
		return request.ParamedicID != nil && *request.ParamedicID == actor.ID
	}
	return false
}

// GetRequestByID 按ID获取请求详情
func (s *RequestService) GetRequestByID(id uint, actor *models.User) (*models.AmbulanceRequest, error) {
	var request models.AmbulanceRequest
	if err := s.DB.Preload("Patient").Preload("Paramedic").Preload("Ambulance").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if !canView(&request, actor) {
		return nil, ErrPermissionDenied
	}

	return &request, nil
}

// scopedQuery 按角色缩小请求查询范围
func (s *RequestService) scopedQuery(actor *models.User) *gorm.DB {
	query := s.DB.Model(&models.AmbulanceRequest{})
	switch actor.Role {
	case models.RolePatient:
		query = query.Where("patient_id = ?", actor.ID)
	case models.RoleParamedic:
		query = query.Where("paramedic_id = ? OR status = ?", actor.ID, models.StatusPending)
	}
	return query
}

// priorityOrderExpr 按优先级排序的表达式，critical最先
const priorityOrderExpr = "CASE priority WHEN 'critical' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC, created_at DESC"

// ListRequests 按角色范围列出急救请求，支持状态/优先级/日期/关键词过滤和分页
func (s *RequestService) ListRequests(actor *models.User, filter RequestFilter, page, pageSize int) ([]models.AmbulanceRequest, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	query := s.scopedQuery(actor)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.ParamedicID != 0 {
		query = query.Where("paramedic_id = ?", filter.ParamedicID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("pickup_address LIKE ? OR destination_address LIKE ? OR description LIKE ?", like, like, like)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.AmbulanceRequest
	offset := (page - 1) * pageSize
	if err := query.Order(priorityOrderExpr).
		Limit(pageSize).Offset(offset).
		Preload("Patient").Preload("Paramedic").
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// RecentRequests 按角色范围返回最近10条请求
func (s *RequestService) RecentRequests(actor *models.User) ([]models.AmbulanceRequest, error) {
	var requests []models.AmbulanceRequest
	if err := s.scopedQuery(actor).Order("created_at DESC").Limit(10).
		Preload("Patient").Preload("Paramedic").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// AssignParamedic 将急救员分配到请求（管理员或任意急救员可操作）。
// 仅pending/assigned状态的请求可以（重新）分配；assigned_at只在首次分配时写入。
func (s *RequestService) AssignParamedic(requestID, paramedicID uint, actor *models.User, notes string) (*models.AmbulanceRequest, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleParamedic {
		return nil, ErrPermissionDenied
	}

	var request models.AmbulanceRequest
	if err := s.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	var paramedic models.User
	if err := s.DB.First(&paramedic, paramedicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if paramedic.Role != models.RoleParamedic {
		return nil, ErrNotParamedic
	}
	if !paramedic.IsAvailable {
		return nil, ErrParamedicUnavailable
	}

	if request.Status.IsTerminal() {
		return nil, ErrRequestTerminal
	}
	if request.Status != models.StatusPending && request.Status != models.StatusAssigned {
		return nil, ErrInvalidTransition
	}

	oldStatus := request.Status
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"paramedic_id": paramedicID,
			"status":       models.StatusAssigned,
		}
		// assigned_at 只在首次进入assigned状态时写入
		if request.AssignedAt == nil {
			updates["assigned_at"] = now
		}

		// 条件更新：并发写入者抢先变更状态时这里匹配0行
		result := tx.Model(&models.AmbulanceRequest{}).
			Where("id = ? AND status = ?", request.ID, oldStatus).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		audit := models.RequestStatusUpdate{
			RequestID:   request.ID,
			UpdatedByID: actor.ID,
			OldStatus:   oldStatus,
			NewStatus:   models.StatusAssigned,
			Notes:       notes,
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		return nil, err
	}

	request.ParamedicID = &paramedicID
	request.Status = models.StatusAssigned
	if request.AssignedAt == nil {
		request.AssignedAt = &now
	}

	if s.Notifier != nil {
		if err := s.Notifier.PublishRequestAssigned(&request); err != nil {
			config.Warning("发布请求分配事件失败: %v", err)
		}
	}

	return &request, nil
}

// AcceptRequest 急救员自行接受一个待处理请求
func (s *RequestService) AcceptRequest(requestID uint, actor *models.User) (*models.AmbulanceRequest, error) {
	if actor.Role != models.RoleParamedic {
		return nil, ErrPermissionDenied
	}

	// 自接单只对pending请求有效，其他情况一律视为不存在
	var request models.AmbulanceRequest
	if err := s.DB.Where("id = ? AND status = ?", requestID, models.StatusPending).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	oldStatus := request.Status
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"paramedic_id": actor.ID,
			"status":       models.StatusAssigned,
		}
		if request.AssignedAt == nil {
			updates["assigned_at"] = now
		}

		result := tx.Model(&models.AmbulanceRequest{}).
			Where("id = ? AND status = ?", request.ID, models.StatusPending).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// 另一名急救员先接了
			return ErrRequestNotFound
		}

		audit := models.RequestStatusUpdate{
			RequestID:   request.ID,
			UpdatedByID: actor.ID,
			OldStatus:   oldStatus,
			NewStatus:   models.StatusAssigned,
			Notes:       "急救员已接单",
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		return nil, err
	}

	paramedicID := actor.ID
	request.ParamedicID = &paramedicID
	request.Status = models.StatusAssigned
	if request.AssignedAt == nil {
		request.AssignedAt = &now
	}

	if s.Notifier != nil {
		if err := s.Notifier.PublishRequestAssigned(&request); err != nil {
			config.Warning("发布请求分配事件失败: %v", err)
		}
	}

	return &request, nil
}

// UpdateStatus 更新请求状态（管理员或当前被分配的急救员）。
// 进入arrived/completed时写入对应时间戳（各只写一次），每次转换追加一条审计记录。
func (s *RequestService) UpdateStatus(requestID uint, newStatus models.RequestStatus, actor *models.User, notes string) (*models.AmbulanceRequest, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	var request models.AmbulanceRequest
	if err := s.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	// 权限：管理员，或该请求当前分配的急救员
	isAssignedParamedic := actor.Role == models.RoleParamedic &&
		request.ParamedicID != nil && *request.ParamedicID == actor.ID
	if actor.Role != models.RoleAdmin && !isAssignedParamedic {
		return nil, ErrPermissionDenied
	}

	if newStatus == request.Status {
		return nil, ErrDuplicateStatus
	}
	if request.Status.IsTerminal() {
		return nil, ErrRequestTerminal
	}
	if !models.CanTransition(request.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	oldStatus := request.Status
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status": newStatus,
		}
		switch newStatus {
		case models.StatusArrived:
			// 实际到达时间只写一次
			if request.ActualArrivalTime == nil {
				updates["actual_arrival_time"] = now
			}
		case models.StatusCompleted:
			if request.CompletedAt == nil {
				updates["completed_at"] = now
			}
		}

		result := tx.Model(&models.AmbulanceRequest{}).
			Where("id = ? AND status = ?", request.ID, oldStatus).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		audit := models.RequestStatusUpdate{
			RequestID:   request.ID,
			UpdatedByID: actor.ID,
			OldStatus:   oldStatus,
			NewStatus:   newStatus,
			Notes:       notes,
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		return nil, err
	}

	request.Status = newStatus
	switch newStatus {
	case models.StatusArrived:
		if request.ActualArrivalTime == nil {
			request.ActualArrivalTime = &now
		}
	case models.StatusCompleted:
		if request.CompletedAt == nil {
			request.CompletedAt = &now
		}
	}

	if s.Notifier != nil {
		if err := s.Notifier.PublishStatusChanged(&request, oldStatus); err != nil {
			config.Warning("发布状态变更事件失败: %v", err)
		}
	}

	return &request, nil
}

// StatusHistory 获取请求的状态变更历史，按时间倒序
func (s *RequestService) StatusHistory(requestID uint, actor *models.User) ([]models.RequestStatusUpdate, error) {
	var request models.AmbulanceRequest
	if err := s.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if !canView(&request, actor) {
		return nil, ErrPermissionDenied
	}

	var updates []models.RequestStatusUpdate
	if err := s.DB.Where("request_id = ?", requestID).
		Order("timestamp DESC").
		Preload("UpdatedBy").
		Find(&updates).Error; err != nil {
		return nil, err
	}

	return updates, nil
}
