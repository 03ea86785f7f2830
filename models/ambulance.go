package models

import "time"

// AmbulanceStatus 救护车状态
type AmbulanceStatus string

const (
	AmbulanceAvailable    AmbulanceStatus = "available"
	AmbulanceBusy         AmbulanceStatus = "busy"
	AmbulanceMaintenance  AmbulanceStatus = "maintenance"
	AmbulanceOutOfService AmbulanceStatus = "out_of_service"
)

// Valid 检查车辆状态是否为已定义的值
func (s AmbulanceStatus) Valid() bool {
	switch s {
	case AmbulanceAvailable, AmbulanceBusy, AmbulanceMaintenance, AmbulanceOutOfService:
		return true
	}
	return false
}

// Ambulance 救护车辆
type Ambulance struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	VehicleNumber string          `gorm:"type:varchar(20);unique;not null" json:"vehicle_number"`
	LicensePlate  string          `gorm:"type:varchar(15);unique;not null" json:"license_plate"`
	Status        AmbulanceStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`

	// 车辆信息
	Model string `gorm:"type:varchar(50)" json:"model"`
	Year  *int   `json:"year,omitempty"`

	// 最后上报位置
	CurrentLatitude  *float64 `gorm:"type:decimal(9,6)" json:"current_latitude,omitempty"`
	CurrentLongitude *float64 `gorm:"type:decimal(9,6)" json:"current_longitude,omitempty"`

	// 当前驾驶的急救员，一对一关系：一辆车同一时刻最多分配给一名急救员
	AssignedParamedicID *uint `gorm:"unique" json:"assigned_paramedic_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	AssignedParamedic *User              `gorm:"foreignKey:AssignedParamedicID" json:"assigned_paramedic,omitempty"`
	Requests          []AmbulanceRequest `gorm:"foreignKey:AmbulanceID" json:"requests,omitempty"`
}

// IsAvailable 车辆是否可调度
func (a *Ambulance) IsAvailable() bool {
	return a.Status == AmbulanceAvailable
}
