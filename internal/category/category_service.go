package category

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const categoryCacheKey = "leave:categories:all"

//go:generate mockgen -source=category_service.go -destination=mock/category_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, gender string) ([]CategoryResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("category.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("category.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

// List mengembalikan kategori yang boleh dilihat user.
// Daftar lengkap di-cache; filter gender diterapkan setelah cache agar
// cache tidak bocor antar user.
func (s *service) List(ctx context.Context, gender string) ([]CategoryResponse, error) {
	cats, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(VisibleCategories(gender, cats)), nil
}

func (s *service) loadAll(ctx context.Context) ([]Category, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, categoryCacheKey).Result()
		if err == nil {
			var cats []Category
			if err := json.Unmarshal([]byte(cached), &cats); err == nil {
				return cats, nil
			}
		}
	}

	// Singleflight mencegah query berulang ke DB saat cache kosong
	v, err, _ := s.sf.Do(categoryCacheKey, func() (interface{}, error) {
		cats, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(cats); err == nil {
				if err := s.rdb.Set(ctx, categoryCacheKey, jsonData, 30*time.Minute).Err(); err != nil {
					s.logger.Warn("cache categories failed", zap.Error(err))
				}
			}
		}

		return cats, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]Category), nil
}

func mapToResponse(c Category) CategoryResponse {
	resp := CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		ResetPolicy: c.ResetPolicy,
	}
	if c.EffectiveStartDate != nil {
		v := c.EffectiveStartDate.Format("2006-01-02")
		resp.EffectiveStartDate = &v
	}
	if c.EffectiveEndDate != nil {
		v := c.EffectiveEndDate.Format("2006-01-02")
		resp.EffectiveEndDate = &v
	}
	return resp
}

func mapToListResponse(cats []Category) []CategoryResponse {
	resp := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = mapToResponse(c)
	}
	return resp
}
