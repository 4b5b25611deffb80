package model

import (
	"time"

	"github.com/google/uuid"
)

type GeneratedLetterModel struct {
	GeneratedLetterID           uuid.UUID `gorm:"column:generated_letter_id;type:uuid;default:gen_random_uuid();primaryKey" json:"generated_letter_id"`
	GeneratedLetterSubmissionID uuid.UUID `gorm:"column:generated_letter_submission_id;type:uuid;not null;index" json:"generated_letter_submission_id"`

	// Format NNNN/KP/FT/MM/YYYY, unik se-sistem.
	GeneratedLetterNumber string `gorm:"column:generated_letter_number;type:varchar(30);not null;uniqueIndex" json:"generated_letter_number"`

	GeneratedLetterFileName string `gorm:"column:generated_letter_file_name;type:varchar(255);not null" json:"generated_letter_file_name"`
	GeneratedLetterFileURL  string `gorm:"column:generated_letter_file_url;type:text;not null" json:"generated_letter_file_url"`
	GeneratedLetterFileType string `gorm:"column:generated_letter_file_type;type:varchar(10);not null" json:"generated_letter_file_type"`

	GeneratedLetterGeneratedBy uuid.UUID `gorm:"column:generated_letter_generated_by;type:uuid;not null" json:"generated_letter_generated_by"`
	GeneratedLetterGeneratedAt time.Time `gorm:"column:generated_letter_generated_at;autoCreateTime" json:"generated_letter_generated_at"`
}

func (GeneratedLetterModel) TableName() string { return "generated_letters" }
