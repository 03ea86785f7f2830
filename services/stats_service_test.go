package services

import (
	"testing"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	db := newTestDB(t)
	requestSvc := newRequestService(db)
	statsSvc := NewStatsService(db, &config.Config{}, nil)

	patient := newTestUser(t, db, models.RolePatient)
	paramedic := newTestUser(t, db, models.RoleParamedic)
	admin := newTestUser(t, db, models.RoleAdmin)

	first := newTestRequest(t, requestSvc, patient)
	second := newTestRequest(t, requestSvc, patient)
	newTestRequest(t, requestSvc, patient)

	_, err := requestSvc.AcceptRequest(first.ID, paramedic)
	require.NoError(t, err)
	_, err = requestSvc.AcceptRequest(second.ID, paramedic)
	require.NoError(t, err)
	_, err = requestSvc.UpdateStatus(second.ID, models.StatusCompleted, paramedic, "")
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Ambulance{
		VehicleNumber: "AMB-100",
		LicensePlate:  "沪A10000",
		Status:        models.AmbulanceAvailable,
	}).Error)

	// 管理员视角：全局统计，无角色附加字段
	stats, err := statsSvc.GetDashboardStats(admin)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalRequests)
	assert.EqualValues(t, 1, stats.PendingRequests)
	assert.EqualValues(t, 1, stats.ActiveRequests)
	assert.EqualValues(t, 1, stats.CompletedRequests)
	assert.EqualValues(t, 1, stats.AvailableParamedics)
	assert.EqualValues(t, 1, stats.AvailableAmbulances)
	assert.Nil(t, stats.MyRequests)
	assert.Nil(t, stats.AssignedToMe)

	// 患者视角：附加本人请求数
	stats, err = statsSvc.GetDashboardStats(patient)
	require.NoError(t, err)
	require.NotNil(t, stats.MyRequests)
	assert.EqualValues(t, 3, *stats.MyRequests)

	// 急救员视角：附加分配给自己的进行中请求数
	stats, err = statsSvc.GetDashboardStats(paramedic)
	require.NoError(t, err)
	require.NotNil(t, stats.AssignedToMe)
	assert.EqualValues(t, 1, *stats.AssignedToMe)
}
