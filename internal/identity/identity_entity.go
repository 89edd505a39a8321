package identity

import (
	"time"

	"github.com/google/uuid"
)

// Tabel-tabel ini dimiliki identity provider; service ini hanya membaca.

const (
	GenderMale   = "M"
	GenderFemale = "F"
)

type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(32);not null"`
	IsSupervisor bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string     `gorm:"type:varchar(255)"`
	Gender       string     `gorm:"type:varchar(10)"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`
	RoleID       *uuid.UUID `gorm:"type:uuid"`
	IsActive     bool       `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Department *Department `gorm:"foreignKey:DepartmentID"`
	Role       *Role       `gorm:"foreignKey:RoleID"`
}
