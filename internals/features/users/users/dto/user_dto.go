package dto

import (
	"time"

	"github.com/google/uuid"

	model "kerjapraktik_backend/internals/features/users/users/model"
)

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	UserRole      string    `json:"user_role"`
	UserNIM       *string   `json:"user_nim,omitempty"`
	UserNIP       *string   `json:"user_nip,omitempty"`
	UserAvatarURL *string   `json:"user_avatar_url,omitempty"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

func FromModel(u *model.UserModel) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		UserID:        u.UserID,
		UserName:      u.UserName,
		UserEmail:     u.UserEmail,
		UserRole:      u.UserRole,
		UserNIM:       u.UserNIM,
		UserNIP:       u.UserNIP,
		UserAvatarURL: u.UserAvatarURL,
		UserCreatedAt: u.UserCreatedAt,
	}
}
