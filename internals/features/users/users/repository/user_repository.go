package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "kerjapraktik_backend/internals/features/users/users/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := r.DB.WithContext(ctx).
		First(&u, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByNIM(ctx context.Context, nim string) (*model.UserModel, error) {
	nim = strings.TrimSpace(nim)
	var u model.UserModel
	if err := r.DB.WithContext(ctx).
		First(&u, "user_nim = ?", nim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User dengan NIM tersebut tidak ditemukan")
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var u model.UserModel
	if err := r.DB.WithContext(ctx).
		First(&u, "user_email = ?", strings.TrimSpace(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, err
	}
	return &u, nil
}

// UpsertFromSSO: provisioning baris lokal dari claim SSO yang sudah
// terverifikasi. Kolom identitas SSO selalu menang atas cache lama.
func (r *UserRepository) UpsertFromSSO(ctx context.Context, u *model.UserModel) (*model.UserModel, error) {
	var existing model.UserModel
	err := r.DB.WithContext(ctx).
		First(&existing, "user_id = ?", u.UserID).Error

	now := time.Now()

	if err == nil {
		updates := map[string]any{
			"user_updated_at": now,
		}
		if strings.TrimSpace(u.UserName) != "" {
			updates["user_name"] = u.UserName
		}
		if strings.TrimSpace(u.UserEmail) != "" {
			updates["user_email"] = u.UserEmail
		}
		if strings.TrimSpace(u.UserRole) != "" {
			updates["user_role"] = u.UserRole
		}
		if u.UserNIM != nil {
			updates["user_nim"] = *u.UserNIM
		}
		if u.UserNIP != nil {
			updates["user_nip"] = *u.UserNIP
		}
		if err := r.DB.WithContext(ctx).
			Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return r.FindByID(ctx, u.UserID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u.UserCreatedAt = now
	u.UserUpdatedAt = now
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) UpdateAvatarURL(ctx context.Context, id uuid.UUID, url string) error {
	res := r.DB.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("user_id = ?", id).
		Updates(map[string]any{
			"user_avatar_url": url,
			"user_updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	}
	return nil
}
