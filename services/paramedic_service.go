package services

import (
	"errors"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"

	"gorm.io/gorm"
)

// InterfaceParamedicService 定义急救员相关服务接口
type InterfaceParamedicService interface {
	ToggleAvailability(userID uint) (bool, error)
	GetAvailableParamedics() ([]models.User, error)
	GetParamedics(page, pageSize int) ([]models.User, int64, error)
	ActiveAssignments(paramedicID uint) ([]models.AmbulanceRequest, error)
}

// ParamedicService 提供急救员可用性与任务相关服务
type ParamedicService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewParamedicService 创建新的急救员服务
func NewParamedicService(db *gorm.DB, cfg *config.Config) InterfaceParamedicService {
	return &ParamedicService{
		DB:     db,
		Config: cfg,
	}
}

// ToggleAvailability 切换急救员可用状态，返回切换后的值。
// 可用标记仅对急救员角色有意义，其他角色一律拒绝。
func (s *ParamedicService) ToggleAvailability(userID uint) (bool, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	if user.Role != models.RoleParamedic {
		return false, ErrPermissionDenied
	}

	newValue := !user.IsAvailable
	if err := s.DB.Model(&user).Update("is_available", newValue).Error; err != nil {
		return false, err
	}

	return newValue, nil
}

// GetAvailableParamedics 获取当前可接单的急救员列表
func (s *ParamedicService) GetAvailableParamedics() ([]models.User, error) {
	var paramedics []models.User
	if err := s.DB.Where("role = ? AND is_available = ?", models.RoleParamedic, true).
		Find(&paramedics).Error; err != nil {
		return nil, err
	}
	return paramedics, nil
}

// GetParamedics 分页获取所有急救员
func (s *ParamedicService) GetParamedics(page, pageSize int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	var total int64
	query := s.DB.Model(&models.User{}).Where("role = ?", models.RoleParamedic)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var paramedics []models.User
	offset := (page - 1) * pageSize
	if err := query.Limit(pageSize).Offset(offset).Find(&paramedics).Error; err != nil {
		return nil, 0, err
	}

	return paramedics, total, nil
}

// ActiveAssignments 获取急救员当前进行中的任务
func (s *ParamedicService) ActiveAssignments(paramedicID uint) ([]models.AmbulanceRequest, error) {
	var requests []models.AmbulanceRequest
	if err := s.DB.Where("paramedic_id = ? AND status IN ?", paramedicID,
		[]models.RequestStatus{models.StatusAssigned, models.StatusEnRoute, models.StatusArrived}).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
