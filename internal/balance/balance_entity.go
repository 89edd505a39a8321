package balance

import (
	"time"

	"go-leave/internal/category"

	"github.com/google/uuid"
)

// RoleLeavePolicy menyimpan jatah default per (role, kategori), dalam jam.
type RoleLeavePolicy struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoleID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_role_leave_policy"`
	CategoryID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_role_leave_policy"`
	DefaultAmount int       `gorm:"type:int;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category *category.Category `gorm:"foreignKey:CategoryID"`
}

func (RoleLeavePolicy) TableName() string {
	return "role_leave_policies"
}

// UserLeaveBalance adalah sisa jam cuti satu user untuk satu kategori.
// Hanya berubah lewat approval atau reset berkala.
type UserLeaveBalance struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_leave_balance"`
	CategoryID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_leave_balance"`
	RemainingAmount int       `gorm:"type:int;not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Category *category.Category `gorm:"foreignKey:CategoryID"`
}

func (UserLeaveBalance) TableName() string {
	return "user_leave_balances"
}
