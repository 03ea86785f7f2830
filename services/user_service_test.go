package services

import (
	"testing"
	"time"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"
	"ambulance-dispatch-service/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (InterfaceUserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(db, &config.Config{}), db
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, db := newUserService(t)

	user := &models.User{
		Username: "zhangsan",
		Password: "plaintext123",
		Email:    "zhangsan@example.com",
		Role:     models.RolePatient,
	}
	require.NoError(t, svc.CreateUser(user))

	var saved models.User
	require.NoError(t, db.First(&saved, user.ID).Error)
	assert.NotEqual(t, "plaintext123", saved.Password, "密码必须以哈希形式存储")
	assert.Len(t, saved.Password, 60, "bcrypt哈希长度固定为60")
	assert.True(t, utils.CheckPasswordHash("plaintext123", saved.Password), "存储的哈希必须能直接校验明文，不能被二次哈希")
}

func TestCreateKeepsPrehashedPassword(t *testing.T) {
	// 管理员种子账户在写入前已自行完成哈希，钩子不得再处理
	_, db := newUserService(t)

	hashed, err := utils.HashPassword("admin123")
	require.NoError(t, err)

	admin := &models.User{
		Username: "seed-admin",
		Password: hashed,
		Email:    "seed-admin@example.com",
		Role:     models.RoleAdmin,
	}
	require.NoError(t, db.Create(admin).Error)

	var saved models.User
	require.NoError(t, db.First(&saved, admin.ID).Error)
	assert.Equal(t, hashed, saved.Password, "已哈希的密码必须原样存储")
	assert.True(t, utils.CheckPasswordHash("admin123", saved.Password))
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	svc, _ := newUserService(t)

	first := &models.User{Username: "dup", Password: "password123", Email: "dup@example.com", Role: models.RolePatient}
	require.NoError(t, svc.CreateUser(first))

	// 同用户名
	err := svc.CreateUser(&models.User{Username: "dup", Password: "password123", Email: "other@example.com", Role: models.RolePatient})
	assert.ErrorIs(t, err, ErrUserAlreadyExist)

	// 同邮箱
	err = svc.CreateUser(&models.User{Username: "other", Password: "password123", Email: "dup@example.com", Role: models.RolePatient})
	assert.ErrorIs(t, err, ErrUserAlreadyExist)
}

func TestCreateUserRejectsInvalidRole(t *testing.T) {
	svc, _ := newUserService(t)

	err := svc.CreateUser(&models.User{
		Username: "doctor",
		Password: "password123",
		Email:    "doctor@example.com",
		Role:     models.Role("doctor"),
	})
	assert.ErrorIs(t, err, ErrRoleInvalid)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newUserService(t)

	user := &models.User{Username: "lisi", Password: "secret123", Email: "lisi@example.com", Role: models.RoleParamedic}
	require.NoError(t, svc.CreateUser(user))

	got, err := svc.Authenticate("lisi", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate("lisi", "wrongpass")
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Authenticate("nobody", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserRoleIsImmutable(t *testing.T) {
	svc, db := newUserService(t)

	user := &models.User{Username: "wangwu", Password: "password123", Email: "wangwu@example.com", Role: models.RolePatient}
	require.NoError(t, svc.CreateUser(user))

	_, err := svc.UpdateUser(user.ID, map[string]interface{}{
		"role":       string(models.RoleAdmin),
		"first_name": "五",
	})
	require.NoError(t, err)

	var saved models.User
	require.NoError(t, db.First(&saved, user.ID).Error)
	assert.Equal(t, models.RolePatient, saved.Role, "角色创建后不可变更")
	assert.Equal(t, "五", saved.FirstName)
}

func TestDeleteUserKeepsLastAdmin(t *testing.T) {
	svc, _ := newUserService(t)

	admin := &models.User{Username: "admin1", Password: "password123", Email: "admin1@example.com", Role: models.RoleAdmin}
	require.NoError(t, svc.CreateUser(admin))

	// 最后一个管理员不可删除
	err := svc.DeleteUser(admin.ID)
	assert.Error(t, err)

	second := &models.User{Username: "admin2", Password: "password123", Email: "admin2@example.com", Role: models.RoleAdmin}
	require.NoError(t, svc.CreateUser(second))

	// 有第二个管理员后可以删除
	assert.NoError(t, svc.DeleteUser(admin.ID))

	_, err = svc.GetUserByID(admin.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newUserService(t)

	user := &models.User{Username: "zhao", Password: "oldpass123", Email: "zhao@example.com", Role: models.RolePatient}
	require.NoError(t, svc.CreateUser(user))

	assert.ErrorIs(t, svc.ChangePassword(user.ID, "wrongpass", "newpass123"), ErrPasswordIncorrect)
	require.NoError(t, svc.ChangePassword(user.ID, "oldpass123", "newpass123"))

	_, err := svc.Authenticate("zhao", "newpass123")
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, db := newUserService(t)

	user := &models.User{Username: "qian", Password: "oldpass123", Email: "qian@example.com", Role: models.RolePatient}
	require.NoError(t, svc.CreateUser(user))

	token, tokenUser, err := svc.CreateResetToken("qian@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, tokenUser.ID)
	assert.NotEmpty(t, token.Token)

	// 不存在的邮箱
	_, _, err = svc.CreateResetToken("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, svc.ResetPassword(token.Token, "newpass123"))
	_, err = svc.Authenticate("qian", "newpass123")
	assert.NoError(t, err)

	// 令牌一次性有效
	assert.ErrorIs(t, svc.ResetPassword(token.Token, "another123"), ErrResetTokenInvalid)

	// 过期令牌无效
	expired, _, err := svc.CreateResetToken("qian@example.com")
	require.NoError(t, err)
	require.NoError(t, db.Model(expired).Update("expires_at", time.Now().Add(-time.Minute)).Error)
	assert.ErrorIs(t, svc.ResetPassword(expired.Token, "another123"), ErrResetTokenInvalid)

	// 不存在的令牌
	assert.ErrorIs(t, svc.ResetPassword("no-such-token", "another123"), ErrResetTokenInvalid)
}
