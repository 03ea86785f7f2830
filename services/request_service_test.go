package services

import (
	"fmt"
	"testing"
	"time"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 创建内存数据库并迁移全部模型
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库只允许单连接，避免连接池拿到空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Ambulance{},
		&models.AmbulanceRequest{},
		&models.RequestStatusUpdate{},
		&models.PasswordResetToken{},
	))
	return db
}

var testUserSeq int

// newTestUser 创建指定角色的测试用户
func newTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	testUserSeq++
	user := &models.User{
		Username:    fmt.Sprintf("user%d", testUserSeq),
		Password:    "password123",
		Email:       fmt.Sprintf("user%d@example.com", testUserSeq),
		Role:        role,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// newTestRequest 以患者身份创建一条待处理请求
func newTestRequest(t *testing.T, svc InterfaceRequestService, patient *models.User) *models.AmbulanceRequest {
	t.Helper()

	request := &models.AmbulanceRequest{
		PickupAddress: "人民路88号",
		Description:   "胸痛，呼吸困难",
		Priority:      models.PriorityHigh,
		ContactPhone:  "13800138000",
	}
	require.NoError(t, svc.CreateRequest(patient, request))
	return request
}

func newRequestService(db *gorm.DB) InterfaceRequestService {
	return NewRequestService(db, &config.Config{}, nil)
}

func TestCreateRequestStartsPending(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)

	// 调用方传入的状态和响应人应当被忽略
	bogusID := uint(99)
	request := &models.AmbulanceRequest{
		PickupAddress: "人民路88号",
		Description:   "车祸外伤",
		ContactPhone:  "13800138000",
		Status:        models.StatusCompleted,
		ParamedicID:   &bogusID,
	}
	require.NoError(t, svc.CreateRequest(patient, request))

	var saved models.AmbulanceRequest
	require.NoError(t, db.First(&saved, request.ID).Error)

	assert.Equal(t, models.StatusPending, saved.Status)
	assert.Equal(t, patient.ID, saved.PatientID)
	assert.Nil(t, saved.ParamedicID)
	assert.Nil(t, saved.AssignedAt)
	assert.Nil(t, saved.CompletedAt)
	assert.Equal(t, models.PriorityMedium, saved.Priority, "未指定优先级时默认为medium")
}

func TestCreateRequestRejectsNonPatient(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	paramedic := newTestUser(t, db, models.RoleParamedic)
	admin := newTestUser(t, db, models.RoleAdmin)

	request := &models.AmbulanceRequest{
		PickupAddress: "人民路88号",
		Description:   "测试",
		ContactPhone:  "13800138000",
	}
	assert.ErrorIs(t, svc.CreateRequest(paramedic, request), ErrPermissionDenied)
	assert.ErrorIs(t, svc.CreateRequest(admin, request), ErrPermissionDenied)
}

func TestCreateRequestRejectsInvalidPriority(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)

	request := &models.AmbulanceRequest{
		PickupAddress: "人民路88号",
		Description:   "测试",
		ContactPhone:  "13800138000",
		Priority:      models.Priority("urgent"),
	}
	assert.ErrorIs(t, svc.CreateRequest(patient, request), ErrInvalidStatus)
}

func TestAcceptRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)
	paramedic := newTestUser(t, db, models.RoleParamedic)
	request := newTestRequest(t, svc, patient)

	accepted, err := svc.AcceptRequest(request.ID, paramedic)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAssigned, accepted.Status)
	require.NotNil(t, accepted.ParamedicID)
	assert.Equal(t, paramedic.ID, *accepted.ParamedicID)
	assert.NotNil(t, accepted.AssignedAt)

	// 接单写入一条审计记录
	var audits []models.RequestStatusUpdate
	require.NoError(t, db.Where("request_id = ?", request.ID).Find(&audits).Error)
	require.Len(t, audits, 1)
	assert.Equal(t, models.StatusPending, audits[0].OldStatus)
	assert.Equal(t, models.StatusAssigned, audits[0].NewStatus)
	assert.Equal(t, paramedic.ID, audits[0].UpdatedByID)
}

func TestAcceptRequestOnlyPending(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)
	first := newTestUser(t, db, models.RoleParamedic)
	second := newTestUser(t, db, models.RoleParamedic)
	request := newTestRequest(t, svc, patient)

	_, err := svc.AcceptRequest(request.ID, first)
	require.NoError(t, err)

	// 已被接走的请求对后来的急救员表现为不存在
	_, err = svc.AcceptRequest(request.ID, second)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestAcceptRequestRejectsNonParamedic(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)
	admin := newTestUser(t, db, models.RoleAdmin)
	request := newTestRequest(t, svc, patient)

	_, err := svc.AcceptRequest(request.ID, patient)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.AcceptRequest(request.ID, admin)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAssignParamedic(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)
	admin := newTestUser(t, db, models.RoleAdmin)
	first := newTestUser(t, db, models.RoleParamedic)
	second := newTestUser(t, db, models.RoleParamedic)
	request := newTestRequest(t, svc, patient)

	assigned, err := svc.AssignParamedic(request.ID, first.ID, admin, "就近指派")
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedAt)
	firstAssignedAt := *assigned.AssignedAt

	// 重新指派不改变首次分配时间
	reassigned, err := svc.AssignParamedic(request.ID, second.ID, admin, "原急救员改派")
	require.NoError(t, err)
	require.NotNil(t, reassigned.ParamedicID)
	assert.Equal(t, second.ID, *reassigned.ParamedicID)

	var saved models.AmbulanceRequest
	require.NoError(t, db.First(&saved, request.ID).Error)
	require.NotNil(t, saved.AssignedAt)
	assert.WithinDuration(t, firstAssignedAt, *saved.AssignedAt, time.Second)

	// 两次指派各留一条审计记录
	var count int64
	require.NoError(t, db.Model(&models.RequestStatusUpdate{}).
		Where("request_id = ?", request.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAssignParamedicValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)
	admin := newTestUser(t, db, models.RoleAdmin)
	request := newTestRequest(t, svc, patient)

	// 患者无权指派
	paramedic := newTestUser(t, db, models.RoleParamedic)
	_, err := svc.AssignParamedic(request.ID, paramedic.ID, patient, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// 目标必须是急救员
	_, err = svc.AssignParamedic(request.ID, patient.ID, admin, "")
	assert.ErrorIs(t, err, ErrNotParamedic)

	// 目标必须处于可用状态
	offDuty := newTestUser(t, db, models.RoleParamedic)
	require.NoError(t, db.Model(offDuty).Update("is_available", false).Error)
	_, err = svc.AssignParamedic(request.ID, offDuty.ID, admin, "")
	assert.ErrorIs(t, err, ErrParamedicUnavailable)

	// 不存在的请求和急救员
	_, err = svc.AssignParamedic(9999, paramedic.ID, admin, "")
	assert.ErrorIs(t, err, ErrRequestNotFound)
	_, err = svc.AssignParamedic(request.ID, 9999, admin, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateStatusWorkflow(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)
	paramedic := newTestUser(t, db, models.RoleParamedic)
	request := newTestRequest(t, svc, patient)

	_, err := svc.AcceptRequest(request.ID, paramedic)
	require.NoError(t, err)

	// assigned -> en_route -> arrived -> completed
	updated, err := svc.UpdateStatus(request.ID, models.StatusEnRoute, paramedic, "已出发")
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnRoute, updated.Status)

	updated, err = svc.UpdateStatus(request.ID, models.StatusArrived, paramedic, "到达现场")
	require.NoError(t, err)
	assert.NotNil(t, updated.ActualArrivalTime, "进入arrived时写入实际到达时间")

	updated, err = svc.UpdateStatus(request.ID, models.StatusCompleted, paramedic, "转运完成")
	require.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt, "进入completed时写入完成时间")

	// 终态之后拒绝任何转换
	_, err = svc.UpdateStatus(request.ID, models.StatusCancelled, paramedic, "")
	assert.ErrorIs(t, err, ErrRequestTerminal)

	// 接单 + 3次状态推进 = 4条审计记录
	var audits []models.RequestStatusUpdate
	require.NoError(t, db.Where("request_id = ?", request.ID).
		Order("id ASC").Find(&audits).Error)
	require.Len(t, audits, 4)
	assert.Equal(t, models.StatusAssigned, audits[1].OldStatus)
	assert.Equal(t, models.StatusEnRoute, audits[1].NewStatus)
	assert.Equal(t, models.StatusEnRoute, audits[2].OldStatus)
	assert.Equal(t, models.StatusArrived, audits[2].NewStatus)
	assert.Equal(t, models.StatusArrived, audits[3].OldStatus)
	assert.Equal(t, models.StatusCompleted, audits[3].NewStatus)
}

func TestUpdateStatusRejectsInvalidMoves(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)
	paramedic := newTestUser(t, db, models.RoleParamedic)
	request := newTestRequest(t, svc, patient)

	_, err := svc.AcceptRequest(request.ID, paramedic)
	require.NoError(t, err)

	// 与当前状态相同
	_, err = svc.UpdateStatus(request.ID, models.StatusAssigned, paramedic, "")
	assert.ErrorIs(t, err, ErrDuplicateStatus)

	// 非法状态值
	_, err = svc.UpdateStatus(request.ID, models.RequestStatus("done"), paramedic, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// 回退转换
	_, err = svc.UpdateStatus(request.ID, models.StatusPending, paramedic, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)
	assignee := newTestUser(t, db, models.RoleParamedic)
	other := newTestUser(t, db, models.RoleParamedic)
	admin := newTestUser(t, db, models.RoleAdmin)
	request := newTestRequest(t, svc, patient)

	_, err := svc.AcceptRequest(request.ID, assignee)
	require.NoError(t, err)

	// 患者和未被分配的急救员都无权推进状态
	_, err = svc.UpdateStatus(request.ID, models.StatusEnRoute, patient, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = svc.UpdateStatus(request.ID, models.StatusEnRoute, other, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// 管理员可以
	_, err = svc.UpdateStatus(request.ID, models.StatusCancelled, admin, "患者取消")
	assert.NoError(t, err)
}

func TestListRequestsScoping(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	alice := newTestUser(t, db, models.RolePatient)
	bob := newTestUser(t, db, models.RolePatient)
	paramedic := newTestUser(t, db, models.RoleParamedic)
	admin := newTestUser(t, db, models.RoleAdmin)

	aliceReq := newTestRequest(t, svc, alice)
	newTestRequest(t, svc, bob)

	// 患者只能看到自己的请求
	requests, total, err := svc.ListRequests(alice, RequestFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, requests, 1)
	assert.Equal(t, alice.ID, requests[0].PatientID)

	// 管理员能看到全部
	_, total, err = svc.ListRequests(admin, RequestFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// 急救员能看到全部待处理请求
	_, total, err = svc.ListRequests(paramedic, RequestFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// 接走一条后，另一条仍是pending，两条都可见；bob的请求被别人接走后不可见
	_, err = svc.AcceptRequest(aliceReq.ID, paramedic)
	require.NoError(t, err)
	other := newTestUser(t, db, models.RoleParamedic)
	_, total, err = svc.ListRequests(other, RequestFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "其他急救员只能看到剩余的待处理请求")
}

func TestGetRequestByIDVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	alice := newTestUser(t, db, models.RolePatient)
	bob := newTestUser(t, db, models.RolePatient)
	request := newTestRequest(t, svc, alice)

	// 他人的请求不可见
	_, err := svc.GetRequestByID(request.ID, bob)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	got, err := svc.GetRequestByID(request.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, request.ID, got.ID)

	_, err = svc.GetRequestByID(9999, alice)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestStatusHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)
	paramedic := newTestUser(t, db, models.RoleParamedic)
	request := newTestRequest(t, svc, patient)

	_, err := svc.AcceptRequest(request.ID, paramedic)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(request.ID, models.StatusEnRoute, paramedic, "已出发")
	require.NoError(t, err)

	history, err := svc.StatusHistory(request.ID, patient)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// 审计记录只增不改
	var first models.RequestStatusUpdate
	require.NoError(t, db.Order("id ASC").First(&first, "request_id = ?", request.ID).Error)
	assert.Equal(t, models.StatusPending, first.OldStatus)
	assert.Equal(t, models.StatusAssigned, first.NewStatus)
}
