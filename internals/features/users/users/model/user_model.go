package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel adalah cache lokal direktori SSO kampus.
// Baris dibuat/di-refresh dari claim SSO saat user pertama kali terlihat.
type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`

	UserName  string `gorm:"column:user_name;type:varchar(100);not null" json:"user_name"`
	UserEmail string `gorm:"column:user_email;type:varchar(120);not null;uniqueIndex" json:"user_email"`

	// MAHASISWA | DOSEN | ADMIN | KAPRODI | WAKIL_DEKAN
	UserRole string `gorm:"column:user_role;type:varchar(16);not null;default:'MAHASISWA'" json:"user_role"`

	UserNIM *string `gorm:"column:user_nim;type:varchar(20);uniqueIndex" json:"user_nim,omitempty"`
	UserNIP *string `gorm:"column:user_nip;type:varchar(30)" json:"user_nip,omitempty"`

	UserAvatarURL *string `gorm:"column:user_avatar_url;type:varchar(255)" json:"user_avatar_url,omitempty"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;type:timestamptz;not null;default:now()" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;type:timestamptz;not null;default:now()" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) IsStudent() bool { return u.UserRole == "MAHASISWA" }
