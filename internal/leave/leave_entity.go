package leave

import (
	"time"

	"go-leave/internal/category"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`

	Status  string `gorm:"type:varchar(20);not null;default:'SUBMITTED';index:idx_leave_requests_status"`
	Reason  string `gorm:"type:text"`
	Comment string `gorm:"type:text"`

	RequestUserID uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_requests_request_user"`
	ProcessUserID *uuid.UUID `gorm:"type:uuid"`

	EffectiveStartDatetime time.Time `gorm:"type:timestamptz;not null"`
	EffectiveEndDatetime   time.Time `gorm:"type:timestamptz;not null"`

	SubmittedAt time.Time
	CreatedAt   time.Time
	ProcessedAt *time.Time

	Category      *category.Category   `gorm:"foreignKey:CategoryID"`
	PerDayEntries []LeaveRequestPerDay `gorm:"foreignKey:RequestID;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveRequestPerDay adalah rincian satu hari kalender dari satu request.
type LeaveRequestPerDay struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_request_per_day"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uq_leave_request_per_day"`
	StartTime time.Time `gorm:"type:time;not null"`
	EndTime   time.Time `gorm:"type:time;not null"`
}

func (LeaveRequestPerDay) TableName() string {
	return "leave_request_per_days"
}

// LeaveHours menghitung jam cuti satu hari sebagai selisih jam bulat.
// Menit tidak ikut dihitung.
func (e LeaveRequestPerDay) LeaveHours() int {
	return e.EndTime.Hour() - e.StartTime.Hour()
}

// TotalLeaveHours menjumlahkan LeaveHours seluruh rincian harian.
func TotalLeaveHours(entries []LeaveRequestPerDay) int {
	total := 0
	for _, e := range entries {
		total += e.LeaveHours()
	}
	return total
}
