package category_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-leave/internal/category"
	"go-leave/internal/identity"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeCategoryRepository struct {
	findAllFn  func(ctx context.Context) ([]category.Category, error)
	findByIDFn func(ctx context.Context, id string) (*category.Category, error)
	existsFn   func(ctx context.Context, id string) (bool, error)
	findCalls  int
}

func (f *fakeCategoryRepository) FindAll(ctx context.Context) ([]category.Category, error) {
	f.findCalls++
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeCategoryRepository) FindByID(ctx context.Context, id string) (*category.Category, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeCategoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, id)
	}
	return true, nil
}

func sampleCategories() []category.Category {
	return []category.Category{
		{ID: uuid.New(), Name: "annual leave", ResetPolicy: category.ResetPolicyYearly},
		{ID: uuid.New(), Name: category.MenstrualLeaveName, ResetPolicy: category.ResetPolicyMonthly},
	}
}

func TestCategoryService_List(t *testing.T) {
	ctx := context.Background()
	const cacheKey = "leave:categories:all"

	t.Run("cache miss loads from repo and fills cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		cats := sampleCategories()
		repo := &fakeCategoryRepository{
			findAllFn: func(ctx context.Context) ([]category.Category, error) {
				return cats, nil
			},
		}

		jsonData, err := json.Marshal(cats)
		assert.NoError(t, err)
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSet(cacheKey, jsonData, 30*time.Minute).SetVal("OK")

		svc := category.NewService(repo, rdb)

		resp, err := svc.List(ctx, identity.GenderFemale)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, 1, repo.findCalls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips repo", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		cats := sampleCategories()
		repo := &fakeCategoryRepository{
			findAllFn: func(ctx context.Context) ([]category.Category, error) {
				t.Fatal("repo must not be queried on cache hit")
				return nil, nil
			},
		}

		jsonData, err := json.Marshal(cats)
		assert.NoError(t, err)
		redisMock.ExpectGet(cacheKey).SetVal(string(jsonData))

		svc := category.NewService(repo, rdb)

		resp, err := svc.List(ctx, identity.GenderFemale)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, 0, repo.findCalls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("gender filter applied after cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		cats := sampleCategories()

		jsonData, err := json.Marshal(cats)
		assert.NoError(t, err)
		redisMock.ExpectGet(cacheKey).SetVal(string(jsonData))

		svc := category.NewService(&fakeCategoryRepository{}, rdb)

		resp, err := svc.List(ctx, identity.GenderMale)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "annual leave", resp[0].Name)
	})

	t.Run("works without redis", func(t *testing.T) {
		repo := &fakeCategoryRepository{
			findAllFn: func(ctx context.Context) ([]category.Category, error) {
				return sampleCategories(), nil
			},
		}
		svc := category.NewService(repo, nil)

		resp, err := svc.List(ctx, identity.GenderFemale)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("repo failure propagates", func(t *testing.T) {
		repo := &fakeCategoryRepository{
			findAllFn: func(ctx context.Context) ([]category.Category, error) {
				return nil, errors.New("db down")
			},
		}
		svc := category.NewService(repo, nil)

		_, err := svc.List(ctx, identity.GenderFemale)
		assert.Error(t, err)
	})
}
