package events

import "time"

const LeaveDecidedTopic = "leave.request.decided.v1"

type LeaveDecidedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id"`
	RequestUserID   string    `json:"request_user_id"`
	CategoryID      string    `json:"category_id"`
	Status          string    `json:"status"`
	TotalLeaveHours int       `json:"total_leave_hours"`
	DecidedBy       string    `json:"decided_by"`
	OccurredAt      time.Time `json:"occurred_at"`
}
