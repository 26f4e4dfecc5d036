package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveRequested = "leave_requested"
	LeaveResolved  = "leave_resolved"
	LeaveCancelled = "leave_cancelled"
)

type LeaveLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	TotalHours int       `json:"total_hours"`
	OccurredAt time.Time `json:"occurred_at"`
}
