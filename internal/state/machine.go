package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/langchou/parkpic/internal/models"
)

// 事件常量
const (
	EventAssignParking = "assign_parking"
	EventApprove       = "approve"
	EventDeny          = "deny"
)

// Machine 车辆请求审批状态机。
// approve / deny 只能从 PARKING_ASSIGNED 触发；PENDING -> PARKING_ASSIGNED
// 的分配由后端其他角色完成，这里仅为完整性建模
type Machine struct {
	mu            sync.RWMutex
	requestID     int64
	fsm           *fsm.FSM
	since         time.Time
	onStateChange func(requestID int64, from, to string)
}

// NewMachine 创建状态机
func NewMachine(requestID int64, initialState string, onStateChange func(requestID int64, from, to string)) *Machine {
	if initialState == "" {
		initialState = models.RequestStatusPending
	}

	m := &Machine{
		requestID:     requestID,
		since:         time.Now(),
		onStateChange: onStateChange,
	}

	m.fsm = fsm.NewFSM(
		initialState,
		fsm.Events{
			{Name: EventAssignParking, Src: []string{models.RequestStatusPending}, Dst: models.RequestStatusParkingAssigned},
			{Name: EventApprove, Src: []string{models.RequestStatusParkingAssigned}, Dst: models.RequestStatusApproved},
			{Name: EventDeny, Src: []string{models.RequestStatusParkingAssigned}, Dst: models.RequestStatusDenied},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				if m.onStateChange != nil && e.Src != e.Dst {
					m.onStateChange(m.requestID, e.Src, e.Dst)
				}
			},
		},
	)

	return m
}

// Current 获取当前状态
func (m *Machine) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fsm.Current()
}

// Can 检查事件是否可触发
func (m *Machine) Can(event string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fsm.Can(event)
}

// Trigger 触发事件
func (m *Machine) Trigger(event string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fsm.Event(context.Background(), event); err != nil {
		return fmt.Errorf("trigger event %s: %w", event, err)
	}

	m.since = time.Now()
	return nil
}

// CanApprove 当前状态是否允许审批通过。
// 判定走状态机本身，转移表只维护一份
func CanApprove(status string) bool {
	return NewMachine(0, status, nil).Can(EventApprove)
}

// CanDeny 当前状态是否允许审批拒绝
func CanDeny(status string) bool {
	return NewMachine(0, status, nil).Can(EventDeny)
}
