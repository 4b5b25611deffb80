package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kerjapraktik_backend/internals/features/internship/teams/service"
	userModel "kerjapraktik_backend/internals/features/users/users/model"
)

// UserDirectoryRepository memenuhi service.UserDirectory dengan membaca
// langsung tabel users (hanya kolom yang dibutuhkan mesin tim).
type UserDirectoryRepository struct {
	DB *gorm.DB
}

func NewUserDirectoryRepository(db *gorm.DB) *UserDirectoryRepository {
	return &UserDirectoryRepository{DB: db}
}

var _ service.UserDirectory = (*UserDirectoryRepository)(nil)

func (r *UserDirectoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*service.DirectoryUser, error) {
	var u userModel.UserModel
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", id).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDirectoryUser(&u), nil
}

func (r *UserDirectoryRepository) FindByNIM(ctx context.Context, nim string) (*service.DirectoryUser, error) {
	var u userModel.UserModel
	err := r.DB.WithContext(ctx).
		Where("user_nim = ?", nim).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDirectoryUser(&u), nil
}

func toDirectoryUser(u *userModel.UserModel) *service.DirectoryUser {
	return &service.DirectoryUser{
		UserID: u.UserID,
		Name:   u.UserName,
		Role:   u.UserRole,
		NIM:    u.UserNIM,
	}
}
