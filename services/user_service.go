package services

import (
	"errors"
	"strings"
	"time"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"
	"ambulance-dispatch-service/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterfaceUserService 定义用户账户服务接口
type InterfaceUserService interface {
	GetAllUsers(role models.Role, search string, page, pageSize int) ([]models.User, int64, error)
	GetUserByID(id uint) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(id uint, updates map[string]interface{}) (*models.User, error)
	DeleteUser(id uint) error
	Authenticate(username, password string) (*models.User, error)
	ChangePassword(userID uint, oldPassword, newPassword string) error
	CreateResetToken(email string) (*models.PasswordResetToken, *models.User, error)
	ResetPassword(token, newPassword string) error
}

// UserService 提供用户账户相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// GetAllUsers 获取用户列表，支持按角色过滤、关键词搜索和分页
func (s *UserService) GetAllUsers(role models.Role, search string, page, pageSize int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	query := s.DB.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR phone_number LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	offset := (page - 1) * pageSize
	if err := query.Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser 创建新用户，用户名和邮箱必须唯一
func (s *UserService) CreateUser(user *models.User) error {
	if !user.Role.Valid() {
		return ErrRoleInvalid
	}

	// 验证用户名唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExist
	}

	if user.Email != "" {
		if err := s.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUserAlreadyExist
		}
	}

	// 密码哈希由模型钩子处理
	return s.DB.Create(user).Error
}

// UpdateUser 更新用户信息
func (s *UserService) UpdateUser(id uint, updates map[string]interface{}) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新用户名，需要检查唯一性
	if username, ok := updates["username"].(string); ok && username != user.Username {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("username = ? AND id != ?", username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUserAlreadyExist
		}
	}

	// 角色创建后不可变更
	delete(updates, "role")

	// 如果更新密码，需要进行哈希处理
	if password, ok := updates["password"].(string); ok {
		hashedPassword, err := utils.HashPassword(password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashedPassword
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(id)
}

// DeleteUser 删除用户，系统必须保留至少一个管理员
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	if user.Role == models.RoleAdmin {
		var count int64
		if err := s.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return errors.New("系统必须至少有一个管理员，无法删除最后一个管理员")
		}
	}

	return s.DB.Delete(user).Error
}

// Authenticate 按用户名查找用户并校验密码
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrPasswordIncorrect
	}

	return &user, nil
}

// ChangePassword 修改密码，需要验证旧密码
func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(oldPassword, user.Password) {
		return ErrPasswordIncorrect
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.DB.Model(user).Update("password", hashedPassword).Error
}

// CreateResetToken 为指定邮箱生成一次性密码重置令牌，有效期1小时
func (s *UserService) CreateResetToken(email string) (*models.PasswordResetToken, *models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	token := models.PasswordResetToken{
		UserID:    user.ID,
		Token:     strings.ReplaceAll(uuid.New().String(), "-", ""),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	if err := s.DB.Create(&token).Error; err != nil {
		return nil, nil, err
	}

	return &token, &user, nil
}

// ResetPassword 使用重置令牌设置新密码，令牌一次性使用
func (s *UserService) ResetPassword(token, newPassword string) error {
	var reset models.PasswordResetToken
	if err := s.DB.Where("token = ?", token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	if reset.UsedAt != nil || time.Now().After(reset.ExpiresAt) {
		return ErrResetTokenInvalid
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password", hashedPassword).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("used_at", now).Error
	})
}
