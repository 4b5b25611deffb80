package model

import (
	"time"

	"github.com/google/uuid"
)

// Keputusan perusahaan atas pengajuan kerja praktik.
type ResponseLetterDecision string

const (
	ResponseLetterApproved ResponseLetterDecision = "approved"
	ResponseLetterRejected ResponseLetterDecision = "rejected"
)

func IsKnownDecision(s string) bool {
	switch ResponseLetterDecision(s) {
	case ResponseLetterApproved, ResponseLetterRejected:
		return true
	}
	return false
}

type ResponseLetterModel struct {
	ResponseLetterID uuid.UUID `gorm:"column:response_letter_id;type:uuid;default:gen_random_uuid();primaryKey" json:"response_letter_id"`

	// Satu surat balasan per pengajuan.
	ResponseLetterSubmissionID uuid.UUID `gorm:"column:response_letter_submission_id;type:uuid;not null;uniqueIndex" json:"response_letter_submission_id"`

	ResponseLetterStatus   ResponseLetterDecision `gorm:"column:response_letter_status;type:varchar(10);not null" json:"response_letter_status"`
	ResponseLetterFileURL  string                 `gorm:"column:response_letter_file_url;type:text;not null" json:"response_letter_file_url"`
	ResponseLetterFileName string                 `gorm:"column:response_letter_file_name;type:varchar(255);not null" json:"response_letter_file_name"`

	ResponseLetterMemberUserID uuid.UUID `gorm:"column:response_letter_member_user_id;type:uuid;not null" json:"response_letter_member_user_id"`

	ResponseLetterVerified   bool       `gorm:"column:response_letter_verified;not null;default:false" json:"response_letter_verified"`
	ResponseLetterVerifiedAt *time.Time `gorm:"column:response_letter_verified_at" json:"response_letter_verified_at,omitempty"`
	ResponseLetterVerifiedBy *uuid.UUID `gorm:"column:response_letter_verified_by;type:uuid" json:"response_letter_verified_by,omitempty"`

	ResponseLetterCreatedAt time.Time `gorm:"column:response_letter_created_at;autoCreateTime" json:"response_letter_created_at"`
}

func (ResponseLetterModel) TableName() string { return "response_letters" }
