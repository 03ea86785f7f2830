package services

import (
	"errors"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"

	"gorm.io/gorm"
)

// InterfaceAmbulanceService 定义救护车队服务接口
type InterfaceAmbulanceService interface {
	GetAllAmbulances(status models.AmbulanceStatus, page, pageSize int) ([]models.Ambulance, int64, error)
	GetAmbulanceByID(id uint) (*models.Ambulance, error)
	GetAvailableAmbulances() ([]models.Ambulance, error)
	CreateAmbulance(ambulance *models.Ambulance) error
	UpdateAmbulance(id uint, updates map[string]interface{}) (*models.Ambulance, error)
	DeleteAmbulance(id uint) error
	AssignParamedic(ambulanceID uint, paramedicID *uint) (*models.Ambulance, error)
	UpdateLocation(id uint, latitude, longitude float64) error
}

// AmbulanceService 提供救护车队管理服务
type AmbulanceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAmbulanceService 创建新的车队服务
func NewAmbulanceService(db *gorm.DB, cfg *config.Config) InterfaceAmbulanceService {
	return &AmbulanceService{
		DB:     db,
		Config: cfg,
	}
}

// GetAllAmbulances 获取救护车列表，支持按状态过滤和分页
func (s *AmbulanceService) GetAllAmbulances(status models.AmbulanceStatus, page, pageSize int) ([]models.Ambulance, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 15
	}

	query := s.DB.Model(&models.Ambulance{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ambulances []models.Ambulance
	offset := (page - 1) * pageSize
	if err := query.Order("vehicle_number").Limit(pageSize).Offset(offset).
		Preload("AssignedParamedic").
		Find(&ambulances).Error; err != nil {
		return nil, 0, err
	}

	return ambulances, total, nil
}

// GetAmbulanceByID 根据ID获取救护车
func (s *AmbulanceService) GetAmbulanceByID(id uint) (*models.Ambulance, error) {
	var ambulance models.Ambulance
	if err := s.DB.Preload("AssignedParamedic").First(&ambulance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAmbulanceNotFound
		}
		return nil, err
	}
	return &ambulance, nil
}

// GetAvailableAmbulances 获取所有可调度的救护车
func (s *AmbulanceService) GetAvailableAmbulances() ([]models.Ambulance, error) {
	var ambulances []models.Ambulance
	if err := s.DB.Where("status = ?", models.AmbulanceAvailable).
		Order("vehicle_number").
		Find(&ambulances).Error; err != nil {
		return nil, err
	}
	return ambulances, nil
}

// CreateAmbulance 登记新救护车，车牌与编号必须唯一
func (s *AmbulanceService) CreateAmbulance(ambulance *models.Ambulance) error {
	if ambulance.Status == "" {
		ambulance.Status = models.AmbulanceAvailable
	}
	if !ambulance.Status.Valid() {
		return ErrInvalidStatus
	}

	var count int64
	if err := s.DB.Model(&models.Ambulance{}).
		Where("vehicle_number = ? OR license_plate = ?", ambulance.VehicleNumber, ambulance.LicensePlate).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAmbulanceExists
	}

	return s.DB.Create(ambulance).Error
}

// UpdateAmbulance 更新救护车信息
func (s *AmbulanceService) UpdateAmbulance(id uint, updates map[string]interface{}) (*models.Ambulance, error) {
	ambulance, err := s.GetAmbulanceByID(id)
	if err != nil {
		return nil, err
	}

	if status, ok := updates["status"].(string); ok {
		if !models.AmbulanceStatus(status).Valid() {
			return nil, ErrInvalidStatus
		}
	}

	if err := s.DB.Model(ambulance).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetAmbulanceByID(id)
}

// DeleteAmbulance 删除救护车
func (s *AmbulanceService) DeleteAmbulance(id uint) error {
	ambulance, err := s.GetAmbulanceByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(ambulance).Error
}

// AssignParamedic 将急救员分配到车辆（传nil解除分配）。
// 一对一关系：一名急救员同一时刻最多驾驶一辆车。
func (s *AmbulanceService) AssignParamedic(ambulanceID uint, paramedicID *uint) (*models.Ambulance, error) {
	if _, err := s.GetAmbulanceByID(ambulanceID); err != nil {
		return nil, err
	}

	if paramedicID != nil {
		var paramedic models.User
		if err := s.DB.First(&paramedic, *paramedicID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if paramedic.Role != models.RoleParamedic {
			return nil, ErrNotParamedic
		}

		// 该急救员若已分配到其他车辆，先解除旧的分配
		if err := s.DB.Model(&models.Ambulance{}).
			Where("assigned_paramedic_id = ? AND id != ?", *paramedicID, ambulanceID).
			Update("assigned_paramedic_id", nil).Error; err != nil {
			return nil, err
		}
	}

	// 不能通过带Preload的记录更新：关联保存会用已加载的AssignedParamedic回填外键，导致传nil解绑失效
	if err := s.DB.Model(&models.Ambulance{}).
		Where("id = ?", ambulanceID).
		Update("assigned_paramedic_id", paramedicID).Error; err != nil {
		return nil, err
	}

	return s.GetAmbulanceByID(ambulanceID)
}

// UpdateLocation 更新车辆最后上报位置
func (s *AmbulanceService) UpdateLocation(id uint, latitude, longitude float64) error {
	result := s.DB.Model(&models.Ambulance{}).Where("id = ?", id).Updates(map[string]interface{}{
		"current_latitude":  latitude,
		"current_longitude": longitude,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAmbulanceNotFound
	}
	return nil
}
