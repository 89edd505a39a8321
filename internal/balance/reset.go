package balance

import (
	"context"
	"time"

	"go-leave/internal/category"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resetter mengisi ulang saldo cuti dari RoleLeavePolicy sesuai reset policy
// kategori. Seluruh refill satu cadence berjalan dalam satu statement atomik.
type Resetter struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewResetter(db *gorm.DB, logger ...*zap.Logger) *Resetter {
	l := zap.L().Named("balance.resetter")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.resetter")
	}
	return &Resetter{db: db, logger: l}
}

// ProvisionMissing membuat baris saldo yang belum ada (user baru, kategori
// baru) tanpa menyentuh saldo yang sudah berjalan.
func (r *Resetter) ProvisionMissing(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO user_leave_balances (id, user_id, category_id, remaining_amount, created_at, updated_at)
		SELECT gen_random_uuid(), u.id, p.category_id, p.default_amount, now(), now()
		FROM users u
		JOIN role_leave_policies p ON p.role_id = u.role_id
		WHERE u.is_active = true
		ON CONFLICT (user_id, category_id) DO NOTHING
	`)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ApplyReset mengembalikan saldo semua kategori dengan reset policy tertentu
// ke jatah default role masing-masing user.
func (r *Resetter) ApplyReset(ctx context.Context, resetPolicy string) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO user_leave_balances (id, user_id, category_id, remaining_amount, created_at, updated_at)
		SELECT gen_random_uuid(), u.id, p.category_id, p.default_amount, now(), now()
		FROM users u
		JOIN role_leave_policies p ON p.role_id = u.role_id
		JOIN leave_categories c ON c.id = p.category_id
		WHERE u.is_active = true
		  AND c.reset_policy = ?
		ON CONFLICT (user_id, category_id) DO UPDATE
		SET remaining_amount = EXCLUDED.remaining_amount, updated_at = now()
	`, resetPolicy)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// RunScheduled menjalankan reset yang jatuh tempo pada tanggal now:
// MONTHLY setiap tanggal 1, YEARLY setiap 1 Januari.
func (r *Resetter) RunScheduled(ctx context.Context, now time.Time) error {
	if now.Day() != 1 {
		return nil
	}

	affected, err := r.ApplyReset(ctx, category.ResetPolicyMonthly)
	if err != nil {
		return err
	}
	r.logger.Info("monthly balance reset applied", zap.Int64("rows", affected))

	if now.Month() == time.January {
		affected, err := r.ApplyReset(ctx, category.ResetPolicyYearly)
		if err != nil {
			return err
		}
		r.logger.Info("yearly balance reset applied", zap.Int64("rows", affected))
	}

	return nil
}

// Run menjalankan loop resetter sampai ctx dibatalkan. Pengecekan dilakukan
// tiap pollInterval; reset hanya dieksekusi sekali per hari kalender.
func (r *Resetter) Run(ctx context.Context, pollInterval time.Duration) {
	if pollInterval <= 0 {
		pollInterval = time.Hour
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	r.logger.Info("balance resetter started", zap.Duration("poll_interval", pollInterval))

	if _, err := r.ProvisionMissing(ctx); err != nil {
		r.logger.Error("provision missing balances failed", zap.Error(err))
	}

	lastApplied := ""

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("balance resetter stopped")
			return
		case <-ticker.C:
			now := time.Now()
			day := now.Format("2006-01-02")
			if day == lastApplied {
				continue
			}

			if err := r.RunScheduled(ctx, now); err != nil {
				r.logger.Error("scheduled balance reset failed", zap.Error(err))
				continue
			}

			if _, err := r.ProvisionMissing(ctx); err != nil {
				r.logger.Error("provision missing balances failed", zap.Error(err))
				continue
			}

			lastApplied = day
		}
	}
}
