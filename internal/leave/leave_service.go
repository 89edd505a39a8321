package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusSubmitted = "SUBMITTED"
	StatusLocked    = "LOCKED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAllOwn(ctx context.Context, actorID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	ListSubmitted(ctx context.Context) ([]LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

// validateRequestWindow memvalidasi input rentang efektif dan mengembalikan
// pasangan waktu yang sudah diparse.
func validateRequestWindow(
	actorID, categoryID string,
	startRaw, endRaw string,
	perDayEntries []PerDayEntryPayload,
) (uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}

	categoryUUID, err := uuid.Parse(categoryID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidCategoryID
	}

	// Rincian harian selalu diturunkan dari rentang efektif, tidak pernah
	// diterima dari klien.
	if len(perDayEntries) > 0 {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrPerDayEntriesReadOnly
	}

	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDatetimeFormat
	}

	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDatetimeFormat
	}

	if end.Before(start) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDatetimeRange
	}

	if start.Minute() != 0 || end.Minute() != 0 {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrNotOnTheHour
	}

	return actorUUID, categoryUUID, start, end, nil
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("actor_id", actorID),
		zap.String("category_id", req.CategoryID),
		zap.String("start", req.EffectiveStartDatetime),
		zap.String("end", req.EffectiveEndDatetime),
	)

	actorUUID, categoryUUID, start, end, err := validateRequestWindow(
		actorID, req.CategoryID,
		req.EffectiveStartDatetime, req.EffectiveEndDatetime,
		req.PerDayEntries,
	)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	exists, err := s.repo.CategoryExists(ctx, categoryUUID.String())
	if err != nil {
		s.logger.Error("create leave category check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrCategoryNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr := &LeaveRequest{
		ID:                     uuid.New(),
		CategoryID:             categoryUUID,
		Status:                 StatusSubmitted,
		Reason:                 req.Reason,
		Comment:                req.Comment,
		RequestUserID:          actorUUID,
		EffectiveStartDatetime: start,
		EffectiveEndDatetime:   end,
	}
	lr.PerDayEntries = BuildPerDayEntries(lr.ID, start, end)

	if err := qtx.Create(ctx, lr); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", lr.ID.String()),
		zap.String("actor_id", actorID),
		zap.Int("per_day_entries", len(lr.PerDayEntries)),
	)

	created, err := s.repo.FindByID(ctx, lr.ID.String())
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(created), nil
}

func (s *service) GetAllOwn(ctx context.Context, actorID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}

	requests, err := s.repo.FindAllByUser(ctx, actorID)
	if err != nil {
		s.logger.Error("list own leaves failed", zap.Error(err))
		return nil, err
	}

	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	lr, err := s.findOwned(ctx, actorID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(lr), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	lr, err := s.findOwned(ctx, actorID, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	// Hanya request yang belum diproses yang boleh direvisi pemiliknya.
	if lr.Status != StatusSubmitted {
		return LeaveResponse{}, leaveerrors.ErrRequestNotEditable
	}

	_, categoryUUID, start, end, err := validateRequestWindow(
		actorID, req.CategoryID,
		req.EffectiveStartDatetime, req.EffectiveEndDatetime,
		req.PerDayEntries,
	)
	if err != nil {
		s.logger.Warn("update leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	exists, err := s.repo.CategoryExists(ctx, categoryUUID.String())
	if err != nil {
		s.logger.Error("update leave category check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrCategoryNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr.CategoryID = categoryUUID
	lr.Reason = req.Reason
	lr.Comment = req.Comment
	lr.EffectiveStartDatetime = start
	lr.EffectiveEndDatetime = end
	lr.PerDayEntries = BuildPerDayEntries(lr.ID, start, end)

	if err := qtx.Update(ctx, lr); err != nil {
		s.logger.Error("update leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("update leave success", zap.String("leave_id", id))

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	lr, err := s.findOwned(ctx, actorID, id)
	if err != nil {
		return err
	}

	if lr.Status != StatusSubmitted {
		return leaveerrors.ErrRequestNotEditable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		s.logger.Error("delete leave persist failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete leave commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) ListSubmitted(ctx context.Context) ([]LeaveResponse, error) {
	requests, err := s.repo.FindSubmitted(ctx)
	if err != nil {
		s.logger.Error("list submitted leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	return s.decide(ctx, actorID, id, StatusApproved, req)
}

func (s *service) Reject(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	return s.decide(ctx, actorID, id, StatusRejected, req)
}

// decide memproses approve/reject dalam satu transaksi: debit saldo (khusus
// approve), transisi status kondisional, dan event outbox. Gagal satu,
// batal semua.
func (s *service) decide(ctx context.Context, actorID, id, target string, req DecideLeaveRequest) (LeaveResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if !isDecisionStatus(target) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("decide leave lookup failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	totalHours := TotalLeaveHours(lr.PerDayEntries)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if target == StatusApproved {
		debited, err := qtx.DebitBalance(ctx, lr.RequestUserID.String(), lr.CategoryID.String(), totalHours)
		if err != nil {
			s.logger.Error("approve leave debit balance failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if !debited {
			provisioned, err := s.repo.BalanceExists(ctx, lr.RequestUserID.String(), lr.CategoryID.String())
			if err != nil {
				return LeaveResponse{}, err
			}
			if !provisioned {
				return LeaveResponse{}, leaveerrors.ErrBalanceNotProvisioned
			}
			s.logger.Warn("approve leave insufficient balance",
				zap.String("leave_id", id),
				zap.Int("total_leave_hours", totalHours),
			)
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		}
	}

	var comment *string
	if req.Comment != "" {
		comment = &req.Comment
	}

	processedAt := time.Now().UTC()
	transitioned, err := qtx.TransitionStatus(ctx, id, target, actorUUID.String(), comment, processedAt)
	if err != nil {
		s.logger.Error("decide leave transition failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !transitioned {
		// Status sudah terminal: admin lain keburu memproses request ini.
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	if s.outbox != nil {
		event := events.LeaveDecidedEvent{
			EventType:       "leave_decided",
			RequestID:       lr.ID.String(),
			RequestUserID:   lr.RequestUserID.String(),
			CategoryID:      lr.CategoryID.String(),
			Status:          target,
			TotalLeaveHours: totalHours,
			DecidedBy:       actorUUID.String(),
			OccurredAt:      processedAt,
		}

		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("decide leave marshal event failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "leave_request",
			AggregateID:   lr.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveDecidedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide leave outbox persist failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", target),
		zap.String("decided_by", actorID),
		zap.Int("total_leave_hours", totalHours),
	)

	decided, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(decided), nil
}

func (s *service) findOwned(ctx context.Context, actorID, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("find leave failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if lr.RequestUserID.String() != actorID {
		return nil, leaveerrors.ErrNotRequestOwner
	}

	return lr, nil
}

func isDecisionStatus(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

func mapToResponse(lr *LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:                     lr.ID.String(),
		CategoryID:             lr.CategoryID.String(),
		Status:                 lr.Status,
		Reason:                 lr.Reason,
		Comment:                lr.Comment,
		RequestUserID:          lr.RequestUserID.String(),
		EffectiveStartDatetime: lr.EffectiveStartDatetime.Format(time.RFC3339),
		EffectiveEndDatetime:   lr.EffectiveEndDatetime.Format(time.RFC3339),
		SubmittedAt:            lr.SubmittedAt.Format(time.RFC3339),
		CreatedAt:              lr.CreatedAt.Format(time.RFC3339),
		TotalLeaveHours:        TotalLeaveHours(lr.PerDayEntries),
	}

	if lr.Category != nil {
		resp.CategoryName = lr.Category.Name
	}
	if lr.ProcessUserID != nil {
		v := lr.ProcessUserID.String()
		resp.ProcessUserID = &v
	}
	if lr.ProcessedAt != nil {
		v := lr.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}

	resp.PerDayEntries = make([]PerDayEntryResponse, 0, len(lr.PerDayEntries))
	for _, e := range lr.PerDayEntries {
		resp.PerDayEntries = append(resp.PerDayEntries, PerDayEntryResponse{
			Date:       e.Date.Format("2006-01-02"),
			StartTime:  e.StartTime.Format("15:04:05"),
			EndTime:    e.EndTime.Format("15:04:05"),
			LeaveHours: e.LeaveHours(),
		})
	}

	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	responses := make([]LeaveResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, mapToResponse(&requests[i]))
	}
	return responses
}
