package consumer

import (
	"context"
	"encoding/json"

	"go-leave/internal/bootstrap"
	"go-leave/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecided mencatat setiap keputusan approve/reject ke jejak audit.
// Catatan ini jadi jurnal keputusan yang terpisah dari tabel transaksional,
// sehingga bisa diaudit walau request-nya nanti dihapus.
func ConsumeLeaveDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  event.EventType,
			Message: "leave request decided",
			Meta: map[string]any{
				"request_id":        event.RequestID,
				"request_user_id":   event.RequestUserID,
				"category_id":       event.CategoryID,
				"status":            event.Status,
				"total_leave_hours": event.TotalLeaveHours,
				"decided_by":        event.DecidedBy,
				"occurred_at":       event.OccurredAt,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision journaled",
			zap.String("request_id", event.RequestID),
			zap.String("status", event.Status),
		)
	}
}
