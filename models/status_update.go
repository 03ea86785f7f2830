package models

import "time"

// RequestStatusUpdate 急救请求状态变更审计记录，只追加，创建后不再修改
type RequestStatusUpdate struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	RequestID   uint          `gorm:"not null;index" json:"request_id"`
	UpdatedByID uint          `gorm:"not null" json:"updated_by_id"`
	OldStatus   RequestStatus `gorm:"type:varchar(20);not null" json:"old_status"`
	NewStatus   RequestStatus `gorm:"type:varchar(20);not null" json:"new_status"`
	Notes       string        `gorm:"type:text" json:"notes"`
	Timestamp   time.Time     `gorm:"autoCreateTime;index" json:"timestamp"`

	// Relations
	Request   *AmbulanceRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	UpdatedBy *User             `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`
}
