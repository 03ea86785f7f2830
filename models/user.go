package models

import (
	"time"

	"ambulance-dispatch-service/utils"

	"gorm.io/gorm"
)

// Role 用户角色，创建时指定且互斥
type Role string

const (
	RolePatient   Role = "patient"   // 患者，发起急救请求
	RoleParamedic Role = "paramedic" // 急救员，接受并处理请求
	RoleAdmin     Role = "admin"     // 系统管理员
)

// Valid 检查角色是否为已定义的值
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleParamedic, RoleAdmin:
		return true
	}
	return false
}

// User represents all system accounts (patients, paramedics and admins)
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	Email    string `gorm:"type:varchar(100);unique" json:"email"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'patient'" json:"role"`

	// 基础信息
	FirstName         string     `gorm:"type:varchar(50)" json:"first_name"`
	LastName          string     `gorm:"type:varchar(50)" json:"last_name"`
	PhoneNumber       string     `gorm:"type:varchar(15)" json:"phone_number"`
	Address           string     `gorm:"type:text" json:"address"`
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	EmergencyContact  string     `gorm:"type:varchar(15)" json:"emergency_contact"`
	MedicalConditions string     `gorm:"type:text" json:"medical_conditions"` // 病史、过敏等

	// 急救员专用字段
	LicenseNumber string `gorm:"type:varchar(50)" json:"license_number"`
	IsAvailable   bool   `gorm:"default:true" json:"is_available"` // 仅对急救员角色有意义

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Requests         []AmbulanceRequest `gorm:"foreignKey:PatientID" json:"requests,omitempty"`
	AssignedRequests []AmbulanceRequest `gorm:"foreignKey:ParamedicID" json:"assigned_requests,omitempty"`
}

// FullName 返回用户姓名，为空时回退到用户名
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// BeforeSave 是一个GORM钩子，在创建或更新记录前运行。
// bcrypt哈希固定为60字符，长度达到60的密码视为已哈希，不再重复处理
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

// PasswordResetToken 密码重置令牌，邮件发送后一次性使用
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"type:varchar(64);unique;not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
