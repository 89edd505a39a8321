package leave

type PerDayEntryPayload struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type CreateLeaveRequest struct {
	CategoryID             string               `json:"category" binding:"required,uuid"`
	EffectiveStartDatetime string               `json:"effective_start_datetime" binding:"required"`
	EffectiveEndDatetime   string               `json:"effective_end_datetime" binding:"required"`
	Reason                 string               `json:"reason"`
	Comment                string               `json:"comment"`
	PerDayEntries          []PerDayEntryPayload `json:"per_day_entries"`
}

type UpdateLeaveRequest struct {
	CategoryID             string               `json:"category" binding:"required,uuid"`
	EffectiveStartDatetime string               `json:"effective_start_datetime" binding:"required"`
	EffectiveEndDatetime   string               `json:"effective_end_datetime" binding:"required"`
	Reason                 string               `json:"reason"`
	Comment                string               `json:"comment"`
	PerDayEntries          []PerDayEntryPayload `json:"per_day_entries"`
}

type DecideLeaveRequest struct {
	Comment string `json:"comment"`
}

type PerDayEntryResponse struct {
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LeaveHours int    `json:"leave_hours"`
}

type LeaveResponse struct {
	ID                     string                `json:"uuid"`
	CategoryID             string                `json:"category"`
	CategoryName           string                `json:"category_name,omitempty"`
	Status                 string                `json:"status"`
	Reason                 string                `json:"reason"`
	Comment                string                `json:"comment"`
	RequestUserID          string                `json:"request_user"`
	ProcessUserID          *string               `json:"process_user,omitempty"`
	EffectiveStartDatetime string                `json:"effective_start_datetime"`
	EffectiveEndDatetime   string                `json:"effective_end_datetime"`
	SubmittedAt            string                `json:"submitted_at"`
	CreatedAt              string                `json:"created_at"`
	ProcessedAt            *string               `json:"processed_at,omitempty"`
	PerDayEntries          []PerDayEntryResponse `json:"per_day_entries"`
	TotalLeaveHours        int                   `json:"total_leave_hours"`
}
