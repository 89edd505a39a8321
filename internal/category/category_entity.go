package category

import (
	"time"

	"github.com/google/uuid"
)

const (
	ResetPolicyNone    = "NONE"
	ResetPolicyMonthly = "MONTHLY"
	ResetPolicyYearly  = "YEARLY"
)

type Category struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	ResetPolicy        string     `gorm:"type:varchar(10);not null;default:'NONE'"`
	EffectiveStartDate *time.Time `gorm:"type:date"`
	EffectiveEndDate   *time.Time `gorm:"type:date"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Category) TableName() string {
	return "leave_categories"
}
