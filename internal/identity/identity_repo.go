package identity

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=identity_repo.go -destination=mock/identity_repo_mock.go -package=mock
type Repository interface {
	FindUserByID(ctx context.Context, id string) (*User, error)
	FindActiveUsers(ctx context.Context) ([]User, error)
	FindRoles(ctx context.Context) ([]Role, error)
	UserRoleAssignments(ctx context.Context) ([]UserRoleRow, error)
}

type UserRoleRow struct {
	UserID string
	RoleID string
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindUserByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Department").
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindActiveUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("role_id IS NOT NULL").
		Find(&users).Error
	return users, err
}

func (r *repository) FindRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).Find(&roles).Error
	return roles, err
}

func (r *repository) UserRoleAssignments(ctx context.Context) ([]UserRoleRow, error) {
	var result []UserRoleRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id AS user_id, users.role_id AS role_id").
		Where("users.is_active = ?", true).
		Where("users.role_id IS NOT NULL").
		Scan(&result).Error
	return result, err
}
