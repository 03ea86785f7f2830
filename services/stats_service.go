package services

import (
	"time"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"

	"gorm.io/gorm"
)

// DashboardStats 仪表盘统计数据
type DashboardStats struct {
	TotalRequests       int64 `json:"total_requests"`
	PendingRequests     int64 `json:"pending_requests"`
	ActiveRequests      int64 `json:"active_requests"`
	CompletedRequests   int64 `json:"completed_requests"`
	AvailableParamedics int64 `json:"available_paramedics"`
	AvailableAmbulances int64 `json:"available_ambulances"`

	// 角色相关统计
	MyRequests   *int64 `json:"my_requests,omitempty"`   // 患者：本人发起的请求数
	AssignedToMe *int64 `json:"assigned_to_me,omitempty"` // 急救员：分配给自己的进行中请求数
}

// InterfaceStatsService 定义仪表盘统计服务接口
type InterfaceStatsService interface {
	GetDashboardStats(actor *models.User) (*DashboardStats, error)
}

// StatsService 聚合仪表盘统计，结果短暂缓存在Redis中
type StatsService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService // 可为nil，此时不使用缓存
}

// 缓存有效期：统计数据允许短暂滞后
const statsCacheTTL = 30 * time.Second

// NewStatsService 创建新的统计服务
func NewStatsService(db *gorm.DB, cfg *config.Config, redisService InterfaceRedisService) InterfaceStatsService {
	return &StatsService{
		DB:     db,
		Config: cfg,
		Redis:  redisService,
	}
}

// GetDashboardStats 计算当前用户视角下的仪表盘统计
func (s *StatsService) GetDashboardStats(actor *models.User) (*DashboardStats, error) {
	if s.Redis != nil {
		var cached DashboardStats
		if err := s.Redis.GetDashboardStats(string(actor.Role), actor.ID, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{}
	activeStatuses := []models.RequestStatus{models.StatusAssigned, models.StatusEnRoute, models.StatusArrived}

	requests := s.DB.Model(&models.AmbulanceRequest{})
	if err := requests.Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.AmbulanceRequest{}).
		Where("status = ?", models.StatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.AmbulanceRequest{}).
		Where("status IN ?", activeStatuses).
		Count(&stats.ActiveRequests).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.AmbulanceRequest{}).
		Where("status = ?", models.StatusCompleted).
		Count(&stats.CompletedRequests).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.User{}).
		Where("role = ? AND is_available = ?", models.RoleParamedic, true).
		Count(&stats.AvailableParamedics).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Ambulance{}).
		Where("status = ?", models.AmbulanceAvailable).
		Count(&stats.AvailableAmbulances).Error; err != nil {
		return nil, err
	}

	// 角色相关统计
	switch actor.Role {
	case models.RolePatient:
		var mine int64
		if err := s.DB.Model(&models.AmbulanceRequest{}).
			Where("patient_id = ?", actor.ID).
			Count(&mine).Error; err != nil {
			return nil, err
		}
		stats.MyRequests = &mine
	case models.RoleParamedic:
		var assigned int64
		if err := s.DB.Model(&models.AmbulanceRequest{}).
			Where("paramedic_id = ? AND status IN ?", actor.ID, activeStatuses).
			Count(&assigned).Error; err != nil {
			return nil, err
		}
		stats.AssignedToMe = &assigned
	}

	if s.Redis != nil {
		if err := s.Redis.CacheDashboardStats(string(actor.Role), actor.ID, stats, statsCacheTTL); err != nil {
			config.Warning("缓存仪表盘统计失败: %v", err)
		}
	}

	return stats, nil
}
