package services

import (
	"fmt"
	"testing"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testVehicleSeq int

func newTestAmbulance(t *testing.T, svc InterfaceAmbulanceService) *models.Ambulance {
	t.Helper()

	testVehicleSeq++
	ambulance := &models.Ambulance{
		VehicleNumber: fmt.Sprintf("AMB-%03d", testVehicleSeq),
		LicensePlate:  fmt.Sprintf("沪A%05d", testVehicleSeq),
		Model:         "奔驰Sprinter",
	}
	require.NoError(t, svc.CreateAmbulance(ambulance))
	return ambulance
}

func newAmbulanceService(t *testing.T) (InterfaceAmbulanceService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewAmbulanceService(db, &config.Config{}), db
}

func TestCreateAmbulanceDefaults(t *testing.T) {
	svc, _ := newAmbulanceService(t)

	ambulance := newTestAmbulance(t, svc)
	assert.Equal(t, models.AmbulanceAvailable, ambulance.Status, "未指定状态时默认为available")
}

func TestCreateAmbulanceRejectsDuplicates(t *testing.T) {
	svc, _ := newAmbulanceService(t)
	existing := newTestAmbulance(t, svc)

	err := svc.CreateAmbulance(&models.Ambulance{
		VehicleNumber: existing.VehicleNumber,
		LicensePlate:  "沪B99999",
	})
	assert.ErrorIs(t, err, ErrAmbulanceExists)

	err = svc.CreateAmbulance(&models.Ambulance{
		VehicleNumber: "AMB-999",
		LicensePlate:  existing.LicensePlate,
	})
	assert.ErrorIs(t, err, ErrAmbulanceExists)
}

func TestCreateAmbulanceRejectsInvalidStatus(t *testing.T) {
	svc, _ := newAmbulanceService(t)

	err := svc.CreateAmbulance(&models.Ambulance{
		VehicleNumber: "AMB-998",
		LicensePlate:  "沪C00001",
		Status:        models.AmbulanceStatus("parked"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateAmbulanceStatus(t *testing.T) {
	svc, _ := newAmbulanceService(t)
	ambulance := newTestAmbulance(t, svc)

	updated, err := svc.UpdateAmbulance(ambulance.ID, map[string]interface{}{
		"status": string(models.AmbulanceMaintenance),
	})
	require.NoError(t, err)
	assert.Equal(t, models.AmbulanceMaintenance, updated.Status)

	_, err = svc.UpdateAmbulance(ambulance.ID, map[string]interface{}{
		"status": "parked",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateAmbulance(9999, map[string]interface{}{"model": "福特全顺"})
	assert.ErrorIs(t, err, ErrAmbulanceNotFound)
}

func TestAssignParamedicToAmbulance(t *testing.T) {
	svc, db := newAmbulanceService(t)
	first := newTestAmbulance(t, svc)
	second := newTestAmbulance(t, svc)
	paramedic := newTestUser(t, db, models.RoleParamedic)
	patient := newTestUser(t, db, models.RolePatient)

	// 患者不能被绑定为驾驶员
	_, err := svc.AssignParamedic(first.ID, &patient.ID)
	assert.ErrorIs(t, err, ErrNotParamedic)

	assigned, err := svc.AssignParamedic(first.ID, &paramedic.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedParamedicID)
	assert.Equal(t, paramedic.ID, *assigned.AssignedParamedicID)

	// 改绑到第二辆车时自动解除旧的绑定
	_, err = svc.AssignParamedic(second.ID, &paramedic.ID)
	require.NoError(t, err)

	var saved models.Ambulance
	require.NoError(t, db.First(&saved, first.ID).Error)
	assert.Nil(t, saved.AssignedParamedicID)

	// 传nil解除绑定，数据库中的外键列必须真正清空
	unassigned, err := svc.AssignParamedic(second.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, unassigned.AssignedParamedicID)

	var savedSecond models.Ambulance
	require.NoError(t, db.First(&savedSecond, second.ID).Error)
	assert.Nil(t, savedSecond.AssignedParamedicID)
}

func TestUpdateAmbulanceLocation(t *testing.T) {
	svc, db := newAmbulanceService(t)
	ambulance := newTestAmbulance(t, svc)

	require.NoError(t, svc.UpdateLocation(ambulance.ID, 31.2304, 121.4737))

	var saved models.Ambulance
	require.NoError(t, db.First(&saved, ambulance.ID).Error)
	require.NotNil(t, saved.CurrentLatitude)
	require.NotNil(t, saved.CurrentLongitude)
	assert.InDelta(t, 31.2304, *saved.CurrentLatitude, 1e-6)
	assert.InDelta(t, 121.4737, *saved.CurrentLongitude, 1e-6)

	assert.ErrorIs(t, svc.UpdateLocation(9999, 0, 0), ErrAmbulanceNotFound)
}

func TestGetAllAmbulancesFilter(t *testing.T) {
	svc, db := newAmbulanceService(t)
	newTestAmbulance(t, svc)
	busy := newTestAmbulance(t, svc)
	require.NoError(t, db.Model(busy).Update("status", models.AmbulanceBusy).Error)

	ambulances, total, err := svc.GetAllAmbulances(models.AmbulanceAvailable, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, ambulances, 1)
	assert.Equal(t, models.AmbulanceAvailable, ambulances[0].Status)

	_, total, err = svc.GetAllAmbulances("", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
