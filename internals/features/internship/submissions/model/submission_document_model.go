package model

import (
	"time"

	"github.com/google/uuid"
)

// Append-only: dokumen tidak pernah diubah, hanya ditambah.
// Kolom type wajib terisi; baris lama tanpa type tetap disaring di listing.
type SubmissionDocumentModel struct {
	SubmissionDocumentID           uuid.UUID `gorm:"column:submission_document_id;type:uuid;default:gen_random_uuid();primaryKey" json:"submission_document_id"`
	SubmissionDocumentSubmissionID uuid.UUID `gorm:"column:submission_document_submission_id;type:uuid;not null;index" json:"submission_document_submission_id"`

	// Jenis dokumen dari sisi bisnis (proposal, transkrip, surat pengantar, ...).
	SubmissionDocumentType string `gorm:"column:submission_document_type;type:varchar(50);not null" json:"submission_document_type"`

	// file_name menyimpan object key di bucket, original_name nama asli unggahan.
	SubmissionDocumentFileName     string `gorm:"column:submission_document_file_name;type:varchar(255);not null" json:"submission_document_file_name"`
	SubmissionDocumentOriginalName string `gorm:"column:submission_document_original_name;type:varchar(255);not null" json:"submission_document_original_name"`
	SubmissionDocumentFileType     string `gorm:"column:submission_document_file_type;type:varchar(10);not null" json:"submission_document_file_type"`
	SubmissionDocumentFileSize     int64  `gorm:"column:submission_document_file_size;not null" json:"submission_document_file_size"`
	SubmissionDocumentFileURL      string `gorm:"column:submission_document_file_url;type:text;not null" json:"submission_document_file_url"`

	SubmissionDocumentUploadedBy uuid.UUID `gorm:"column:submission_document_uploaded_by;type:uuid;not null" json:"submission_document_uploaded_by"`
	SubmissionDocumentUploadedAt time.Time `gorm:"column:submission_document_uploaded_at;autoCreateTime" json:"submission_document_uploaded_at"`
}

func (SubmissionDocumentModel) TableName() string { return "submission_documents" }
