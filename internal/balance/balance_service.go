package balance

import (
	"context"

	"go-leave/internal/category"

	"go.uber.org/zap"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	ListOwn(ctx context.Context, userID, gender string) ([]BalanceResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, logger: l}
}

// ListOwn mengembalikan saldo milik user, dengan aturan visibilitas gender
// yang sama seperti listing kategori.
func (s *service) ListOwn(ctx context.Context, userID, gender string) ([]BalanceResponse, error) {
	balances, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list balances failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := make([]BalanceResponse, 0, len(balances))
	for _, b := range balances {
		if b.Category == nil {
			continue
		}
		if !category.IsVisible(gender, b.Category.Name) {
			continue
		}
		resp = append(resp, BalanceResponse{
			CategoryID:      b.CategoryID.String(),
			CategoryName:    b.Category.Name,
			ResetPolicy:     b.Category.ResetPolicy,
			RemainingAmount: b.RemainingAmount,
		})
	}

	return resp, nil
}
