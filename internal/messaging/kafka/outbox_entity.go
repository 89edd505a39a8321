package kafka

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEventRecord dipakai untuk migrasi tabel outbox_events.
// Akses baca/tulis runtime tetap lewat SQL mentah di OutboxRepository
// supaya insert-nya bisa ikut transaksi domain.
type OutboxEventRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID     string    `gorm:"type:varchar(64)"`
	AggregateType string    `gorm:"type:varchar(64);not null"`
	AggregateID   uuid.UUID `gorm:"type:uuid;not null"`
	EventType     string    `gorm:"type:varchar(128);not null;index"`
	Topic         string    `gorm:"type:varchar(255);not null"`
	Payload       []byte    `gorm:"type:jsonb;not null"`
	Status        string    `gorm:"type:varchar(16);not null;index"`
	RetryCount    int       `gorm:"not null;default:0"`
	ErrorMessage  *string   `gorm:"type:varchar(500)"`
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OutboxEventRecord) TableName() string {
	return "outbox_events"
}
