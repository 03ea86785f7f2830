package models

import "time"

// RequestStatus 急救请求状态
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"   // 待处理（初始状态）
	StatusAssigned  RequestStatus = "assigned"  // 已分配急救员
	StatusEnRoute   RequestStatus = "en_route"  // 急救员出发途中
	StatusArrived   RequestStatus = "arrived"   // 已到达现场
	StatusCompleted RequestStatus = "completed" // 已完成（终态）
	StatusCancelled RequestStatus = "cancelled" // 已取消（终态）
)

// Valid 检查状态是否为已定义的值
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal 终态不允许任何后续转换
func (s RequestStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Priority 请求优先级
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid 检查优先级是否为已定义的值
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// PriorityRank 用于排序，数值越大越紧急
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// statusTransitions 状态转换表：请求状态只能沿此有向图流转，终态没有出边
var statusTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:   {StatusAssigned, StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled},
	StatusAssigned:  {StatusEnRoute, StatusArrived, StatusCompleted, StatusCancelled},
	StatusEnRoute:   {StatusArrived, StatusCompleted, StatusCancelled},
	StatusArrived:   {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition 判断从 from 到 to 的状态转换是否允许
func CanTransition(from, to RequestStatus) bool {
	allowed, ok := statusTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// AmbulanceRequest 急救请求
type AmbulanceRequest struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	PatientID   uint  `gorm:"not null;index" json:"patient_id"`
	ParamedicID *uint `gorm:"index" json:"paramedic_id,omitempty"`
	AmbulanceID *uint `gorm:"index" json:"ambulance_id,omitempty"`

	// 位置信息
	PickupAddress        string   `gorm:"type:text;not null" json:"pickup_address"`
	PickupLatitude       *float64 `gorm:"type:decimal(9,6)" json:"pickup_latitude,omitempty"`
	PickupLongitude      *float64 `gorm:"type:decimal(9,6)" json:"pickup_longitude,omitempty"`
	DestinationAddress   string   `gorm:"type:text" json:"destination_address"`
	DestinationLatitude  *float64 `gorm:"type:decimal(9,6)" json:"destination_latitude,omitempty"`
	DestinationLongitude *float64 `gorm:"type:decimal(9,6)" json:"destination_longitude,omitempty"`

	// 请求信息
	Description  string        `gorm:"type:text;not null" json:"description"`
	Priority     Priority      `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status       RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ContactPhone string        `gorm:"type:varchar(15);not null" json:"contact_phone"`
	Notes        string        `gorm:"type:text" json:"notes"`

	// 时间戳
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	EstimatedArrivalTime *time.Time `json:"estimated_arrival_time,omitempty"`
	ActualArrivalTime    *time.Time `json:"actual_arrival_time,omitempty"`

	// Relations
	Patient       *User                 `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Paramedic     *User                 `gorm:"foreignKey:ParamedicID" json:"paramedic,omitempty"`
	Ambulance     *Ambulance            `gorm:"foreignKey:AmbulanceID" json:"ambulance,omitempty"`
	StatusUpdates []RequestStatusUpdate `gorm:"foreignKey:RequestID" json:"status_updates,omitempty"`
}

// IsActive 请求是否仍处于活跃状态
func (r *AmbulanceRequest) IsActive() bool {
	return !r.Status.IsTerminal()
}
