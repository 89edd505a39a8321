package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAllByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	FindSubmitted(ctx context.Context) ([]LeaveRequest, error)
	Update(ctx context.Context, lr *LeaveRequest) error
	Delete(ctx context.Context, id string) error
	TransitionStatus(ctx context.Context, id, target, processUserID string, comment *string, processedAt time.Time) (bool, error)
	CategoryExists(ctx context.Context, categoryID string) (bool, error)
	DebitBalance(ctx context.Context, userID, categoryID string, hours int) (bool, error)
	BalanceExists(ctx context.Context, userID, categoryID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Semua write berjalan lewat execer agar ikut transaksi service.
func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		panic(err)
	}
	return sqlDB
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	exec := r.execer()

	_, err := exec.ExecContext(ctx, `
		INSERT INTO leave_requests (
			id, category_id, status, reason, comment, request_user_id,
			effective_start_datetime, effective_end_datetime, submitted_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	`,
		lr.ID, lr.CategoryID, lr.Status, lr.Reason, lr.Comment, lr.RequestUserID,
		lr.EffectiveStartDatetime, lr.EffectiveEndDatetime,
	)
	if err != nil {
		return err
	}

	return r.insertPerDayEntries(ctx, lr.PerDayEntries)
}

func (r *repository) insertPerDayEntries(ctx context.Context, entries []LeaveRequestPerDay) error {
	exec := r.execer()

	for _, e := range entries {
		_, err := exec.ExecContext(ctx, `
			INSERT INTO leave_request_per_days (id, request_id, date, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
		`,
			e.ID, e.RequestID,
			e.Date.Format("2006-01-02"),
			e.StartTime.Format("15:04:05"),
			e.EndTime.Format("15:04:05"),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("PerDayEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		First(&lr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("PerDayEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Where("request_user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindSubmitted(ctx context.Context) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("PerDayEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		Where("status = ?", StatusSubmitted).
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}

// Update menulis ulang field request dan mengganti seluruh rincian harian.
func (r *repository) Update(ctx context.Context, lr *LeaveRequest) error {
	exec := r.execer()

	_, err := exec.ExecContext(ctx, `
		UPDATE leave_requests
		SET category_id = $2,
			reason = $3,
			comment = $4,
			effective_start_datetime = $5,
			effective_end_datetime = $6
		WHERE id = $1
	`,
		lr.ID, lr.CategoryID, lr.Reason, lr.Comment,
		lr.EffectiveStartDatetime, lr.EffectiveEndDatetime,
	)
	if err != nil {
		return err
	}

	if _, err := exec.ExecContext(ctx,
		`DELETE FROM leave_request_per_days WHERE request_id = $1`, lr.ID,
	); err != nil {
		return err
	}

	return r.insertPerDayEntries(ctx, lr.PerDayEntries)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	exec := r.execer()

	if _, err := exec.ExecContext(ctx,
		`DELETE FROM leave_request_per_days WHERE request_id = $1`, id,
	); err != nil {
		return err
	}

	_, err := exec.ExecContext(ctx,
		`DELETE FROM leave_requests WHERE id = $1`, id,
	)
	return err
}

// TransitionStatus memindahkan status secara kondisional: hanya request yang
// belum terminal yang bisa diproses, sehingga dua admin tidak bisa memproses
// request yang sama dua kali.
func (r *repository) TransitionStatus(
	ctx context.Context,
	id, target, processUserID string,
	comment *string,
	processedAt time.Time,
) (bool, error) {
	exec := r.execer()

	res, err := exec.ExecContext(ctx, `
		UPDATE leave_requests
		SET status = $2,
			process_user_id = $3,
			comment = COALESCE($4, comment),
			processed_at = $5
		WHERE id = $1
		  AND status IN ($6, $7)
	`,
		id, target, processUserID, comment, processedAt,
		StatusSubmitted, StatusLocked,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) CategoryExists(ctx context.Context, categoryID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_categories").
		Where("id = ?", categoryID).
		Count(&count).Error
	return count > 0, err
}

// DebitBalance mengurangi saldo secara kondisional; gagal (false) saat baris
// tidak ada atau sisa saldo kurang dari jam yang diminta.
func (r *repository) DebitBalance(ctx context.Context, userID, categoryID string, hours int) (bool, error) {
	exec := r.execer()

	res, err := exec.ExecContext(ctx, `
		UPDATE user_leave_balances
		SET remaining_amount = remaining_amount - $3,
			updated_at = now()
		WHERE user_id = $1
		  AND category_id = $2
		  AND remaining_amount >= $3
	`, userID, categoryID, hours)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) BalanceExists(ctx context.Context, userID, categoryID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_leave_balances").
		Where("user_id = ?", userID).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count > 0, err
}
