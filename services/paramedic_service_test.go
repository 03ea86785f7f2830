package services

import (
	"testing"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAvailability(t *testing.T) {
	db := newTestDB(t)
	svc := NewParamedicService(db, &config.Config{})
	paramedic := newTestUser(t, db, models.RoleParamedic)

	// 新建急救员默认可用，第一次切换后下班
	available, err := svc.ToggleAvailability(paramedic.ID)
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.ToggleAvailability(paramedic.ID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestToggleAvailabilityRejectsOtherRoles(t *testing.T) {
	db := newTestDB(t)
	svc := NewParamedicService(db, &config.Config{})
	patient := newTestUser(t, db, models.RolePatient)
	admin := newTestUser(t, db, models.RoleAdmin)

	_, err := svc.ToggleAvailability(patient.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.ToggleAvailability(admin.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.ToggleAvailability(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetAvailableParamedics(t *testing.T) {
	db := newTestDB(t)
	svc := NewParamedicService(db, &config.Config{})
	onDuty := newTestUser(t, db, models.RoleParamedic)
	offDuty := newTestUser(t, db, models.RoleParamedic)
	newTestUser(t, db, models.RolePatient)

	require.NoError(t, db.Model(offDuty).Update("is_available", false).Error)

	paramedics, err := svc.GetAvailableParamedics()
	require.NoError(t, err)
	require.Len(t, paramedics, 1)
	assert.Equal(t, onDuty.ID, paramedics[0].ID)
}

func TestActiveAssignments(t *testing.T) {
	db := newTestDB(t)
	paramedicSvc := NewParamedicService(db, &config.Config{})
	requestSvc := newRequestService(db)
	patient := newTestUser(t, db, models.RolePatient)
	paramedic := newTestUser(t, db, models.RoleParamedic)

	first := newTestRequest(t, requestSvc, patient)
	second := newTestRequest(t, requestSvc, patient)
	newTestRequest(t, requestSvc, patient) // 未接单，不计入

	_, err := requestSvc.AcceptRequest(first.ID, paramedic)
	require.NoError(t, err)
	_, err = requestSvc.AcceptRequest(second.ID, paramedic)
	require.NoError(t, err)

	assignments, err := paramedicSvc.ActiveAssignments(paramedic.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 2)

	// 完成一单后不再计入进行中任务
	_, err = requestSvc.UpdateStatus(first.ID, models.StatusCompleted, paramedic, "")
	require.NoError(t, err)

	assignments, err = paramedicSvc.ActiveAssignments(paramedic.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}
