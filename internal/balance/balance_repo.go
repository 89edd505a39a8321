package balance

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	FindAllByUser(ctx context.Context, userID string) ([]UserLeaveBalance, error)
	FindByUserAndCategory(ctx context.Context, userID, categoryID string) (*UserLeaveBalance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]UserLeaveBalance, error) {
	var balances []UserLeaveBalance
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("category_id ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindByUserAndCategory(ctx context.Context, userID, categoryID string) (*UserLeaveBalance, error) {
	var b UserLeaveBalance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("category_id = ?", categoryID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}
