package balance_test

import (
	"context"
	"errors"
	"testing"

	"go-leave/internal/balance"
	"go-leave/internal/category"
	"go-leave/internal/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeBalanceRepository struct {
	findAllByUserFn         func(ctx context.Context, userID string) ([]balance.UserLeaveBalance, error)
	findByUserAndCategoryFn func(ctx context.Context, userID, categoryID string) (*balance.UserLeaveBalance, error)
}

func (f *fakeBalanceRepository) FindAllByUser(ctx context.Context, userID string) ([]balance.UserLeaveBalance, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindByUserAndCategory(ctx context.Context, userID, categoryID string) (*balance.UserLeaveBalance, error) {
	if f.findByUserAndCategoryFn != nil {
		return f.findByUserAndCategoryFn(ctx, userID, categoryID)
	}
	return nil, nil
}

func balanceWithCategory(name, resetPolicy string, remaining int) balance.UserLeaveBalance {
	categoryID := uuid.New()
	return balance.UserLeaveBalance{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		CategoryID:      categoryID,
		RemainingAmount: remaining,
		Category: &category.Category{
			ID:          categoryID,
			Name:        name,
			ResetPolicy: resetPolicy,
		},
	}
}

func TestBalanceService_ListOwn(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("female sees all balances", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findAllByUserFn: func(ctx context.Context, uid string) ([]balance.UserLeaveBalance, error) {
				assert.Equal(t, userID, uid)
				return []balance.UserLeaveBalance{
					balanceWithCategory("annual leave", category.ResetPolicyYearly, 72),
					balanceWithCategory(category.MenstrualLeaveName, category.ResetPolicyMonthly, 8),
				}, nil
			},
		}
		svc := balance.NewService(repo)

		resp, err := svc.ListOwn(ctx, userID, identity.GenderFemale)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("male does not see menstrual balance", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findAllByUserFn: func(ctx context.Context, uid string) ([]balance.UserLeaveBalance, error) {
				return []balance.UserLeaveBalance{
					balanceWithCategory("annual leave", category.ResetPolicyYearly, 72),
					balanceWithCategory(category.MenstrualLeaveName, category.ResetPolicyMonthly, 8),
				}, nil
			},
		}
		svc := balance.NewService(repo)

		resp, err := svc.ListOwn(ctx, userID, identity.GenderMale)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "annual leave", resp[0].CategoryName)
		assert.Equal(t, 72, resp[0].RemainingAmount)
	})

	t.Run("balance without preloaded category skipped", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findAllByUserFn: func(ctx context.Context, uid string) ([]balance.UserLeaveBalance, error) {
				return []balance.UserLeaveBalance{
					{ID: uuid.New(), UserID: uuid.New(), CategoryID: uuid.New(), RemainingAmount: 10},
				}, nil
			},
		}
		svc := balance.NewService(repo)

		resp, err := svc.ListOwn(ctx, userID, identity.GenderFemale)
		assert.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("repo failure propagates", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findAllByUserFn: func(ctx context.Context, uid string) ([]balance.UserLeaveBalance, error) {
				return nil, errors.New("db down")
			},
		}
		svc := balance.NewService(repo)

		_, err := svc.ListOwn(ctx, userID, identity.GenderFemale)
		assert.Error(t, err)
	})
}
