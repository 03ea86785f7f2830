package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestStatusValid(t *testing.T) {
	valid := []RequestStatus{
		StatusPending, StatusAssigned, StatusEnRoute,
		StatusArrived, StatusCompleted, StatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "状态 %s 应当合法", s)
	}

	assert.False(t, RequestStatus("").Valid())
	assert.False(t, RequestStatus("dispatched").Valid())
	assert.False(t, RequestStatus("PENDING").Valid())
}

func TestRequestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAssigned.IsTerminal())
	assert.False(t, StatusEnRoute.IsTerminal())
	assert.False(t, StatusArrived.IsTerminal())
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		// pending 可以直接取消，也可以跳过assigned直接推进
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusEnRoute, true},
		{StatusPending, StatusCancelled, true},
		{StatusAssigned, StatusEnRoute, true},
		{StatusAssigned, StatusArrived, true},
		{StatusAssigned, StatusCompleted, true},
		{StatusAssigned, StatusCancelled, true},
		{StatusEnRoute, StatusArrived, true},
		{StatusEnRoute, StatusCancelled, true},
		{StatusArrived, StatusCompleted, true},
		{StatusArrived, StatusCancelled, true},

		// 线性流程不允许回退：已到场的请求不能退回途中状态
		{StatusAssigned, StatusPending, false},
		{StatusEnRoute, StatusAssigned, false},
		{StatusArrived, StatusEnRoute, false},

		// 终态之后不允许任何转换
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusAssigned, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, c := range cases {
		got := CanTransition(c.from, c.to)
		assert.Equal(t, c.allowed, got, "%s -> %s", c.from, c.to)
	}
}

func TestPriorityRank(t *testing.T) {
	assert.True(t, PriorityCritical.Rank() > PriorityHigh.Rank())
	assert.True(t, PriorityHigh.Rank() > PriorityMedium.Rank())
	assert.True(t, PriorityMedium.Rank() > PriorityLow.Rank())
}

func TestPriorityValid(t *testing.T) {
	assert.True(t, PriorityLow.Valid())
	assert.True(t, PriorityCritical.Valid())
	assert.False(t, Priority("urgent").Valid())
	assert.False(t, Priority("").Valid())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RolePatient.Valid())
	assert.True(t, RoleParamedic.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("doctor").Valid())
	assert.False(t, Role("").Valid())
}

func TestRequestIsActive(t *testing.T) {
	r := AmbulanceRequest{Status: StatusEnRoute}
	assert.True(t, r.IsActive())

	r.Status = StatusCompleted
	assert.False(t, r.IsActive())

	r.Status = StatusCancelled
	assert.False(t, r.IsActive())
}
