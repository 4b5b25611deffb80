package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "kerjapraktik_backend/internals/features/users/users/model"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

// UserStore: kontrak persistence yang dibutuhkan service ini.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	FindByNIM(ctx context.Context, nim string) (*model.UserModel, error)
	UpsertFromSSO(ctx context.Context, u *model.UserModel) (*model.UserModel, error)
	UpdateAvatarURL(ctx context.Context, id uuid.UUID, url string) error
}

type SSOClaims struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   string
	NIM    string
	NIP    string
}

type UserService struct {
	store UserStore
	blob  oss.BlobService
}

func NewUserService(store UserStore, blob oss.BlobService) *UserService {
	return &UserService{store: store, blob: blob}
}

// SyncFromSSO: refresh cache lokal dari identity context request ini,
// lalu kembalikan baris user.
func (s *UserService) SyncFromSSO(ctx context.Context, claims SSOClaims) (*model.UserModel, error) {
	if claims.UserID == uuid.Nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "user_id di token tidak valid")
	}

	u := &model.UserModel{
		UserID:    claims.UserID,
		UserName:  strings.TrimSpace(claims.Name),
		UserEmail: strings.TrimSpace(claims.Email),
		UserRole:  strings.ToUpper(strings.TrimSpace(claims.Role)),
	}
	if nim := strings.TrimSpace(claims.NIM); nim != "" {
		u.UserNIM = &nim
	}
	if nip := strings.TrimSpace(claims.NIP); nip != "" {
		u.UserNIP = &nip
	}
	return s.store.UpsertFromSSO(ctx, u)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	return s.store.FindByID(ctx, id)
}

// GetByNIM dipakai ketua tim untuk mengecek calon anggota sebelum mengundang.
func (s *UserService) GetByNIM(ctx context.Context, nim string) (*model.UserModel, error) {
	nim = strings.TrimSpace(nim)
	if nim == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "NIM wajib diisi")
	}
	return s.store.FindByNIM(ctx, nim)
}

// UpdateAvatar: foto profil di-recompress ke WebP lalu diunggah ke OSS.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if err := oss.ValidateFileSize(fh, 5); err != nil {
		return "", err
	}

	url, err := s.blob.UploadAvatar(ctx, "avatars/"+userID.String(), fh)
	if err != nil {
		return "", err
	}
	if err := s.store.UpdateAvatarURL(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}
