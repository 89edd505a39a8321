package category

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=category_repo.go -destination=mock/category_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id string) (*Category, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Category, error) {
	var cats []Category
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&cats).Error
	return cats, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Category, error) {
	var c Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Category{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
