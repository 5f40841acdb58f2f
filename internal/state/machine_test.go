package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langchou/parkpic/internal/models"
)

func TestApproveFlow(t *testing.T) {
	m := NewMachine(1, models.RequestStatusParkingAssigned, nil)

	assert.Equal(t, models.RequestStatusParkingAssigned, m.Current())
	assert.True(t, m.Can(EventApprove))
	assert.True(t, m.Can(EventDeny))

	require.NoError(t, m.Trigger(EventApprove))
	assert.Equal(t, models.RequestStatusApproved, m.Current())

	// 终态：不可再触发任何事件
	assert.False(t, m.Can(EventApprove))
	assert.False(t, m.Can(EventDeny))
	assert.Error(t, m.Trigger(EventDeny))
}

func TestDenyFlow(t *testing.T) {
	m := NewMachine(1, models.RequestStatusParkingAssigned, nil)

	require.NoError(t, m.Trigger(EventDeny))
	assert.Equal(t, models.RequestStatusDenied, m.Current())
}

func TestPendingCannotBeApproved(t *testing.T) {
	m := NewMachine(1, models.RequestStatusPending, nil)

	assert.False(t, m.Can(EventApprove))
	assert.Error(t, m.Trigger(EventApprove))

	// 先分配停车场才能审批
	require.NoError(t, m.Trigger(EventAssignParking))
	assert.Equal(t, models.RequestStatusParkingAssigned, m.Current())
	assert.True(t, m.Can(EventApprove))
}

func TestEmptyInitialStateDefaultsToPending(t *testing.T) {
	m := NewMachine(1, "", nil)
	assert.Equal(t, models.RequestStatusPending, m.Current())
}

func TestStateChangeCallback(t *testing.T) {
	type transition struct {
		id       int64
		from, to string
	}
	var got []transition

	m := NewMachine(9, models.RequestStatusPending, func(id int64, from, to string) {
		got = append(got, transition{id, from, to})
	})

	require.NoError(t, m.Trigger(EventAssignParking))
	require.NoError(t, m.Trigger(EventApprove))

	require.Len(t, got, 2)
	assert.Equal(t, transition{9, models.RequestStatusPending, models.RequestStatusParkingAssigned}, got[0])
	assert.Equal(t, transition{9, models.RequestStatusParkingAssigned, models.RequestStatusApproved}, got[1])
}

func TestStatusGuards(t *testing.T) {
	assert.True(t, CanApprove(models.RequestStatusParkingAssigned))
	assert.True(t, CanDeny(models.RequestStatusParkingAssigned))

	for _, status := range []string{
		models.RequestStatusPending,
		models.RequestStatusApproved,
		models.RequestStatusDenied,
		"",
	} {
		assert.False(t, CanApprove(status), "status=%s", status)
		assert.False(t, CanDeny(status), "status=%s", status)
	}
}
