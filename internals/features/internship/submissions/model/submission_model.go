package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type SubmissionStatus string

const (
	SubmissionDraft    SubmissionStatus = "DRAFT"
	SubmissionMenunggu SubmissionStatus = "MENUNGGU"
	SubmissionDitolak  SubmissionStatus = "DITOLAK"
	SubmissionDiterima SubmissionStatus = "DITERIMA"
)

// Status DITOLAK dan DITERIMA adalah terminal untuk satu pengajuan;
// tim boleh membuka pengajuan baru setelahnya.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionDitolak || s == SubmissionDiterima
}

func IsKnownSubmissionStatus(s string) bool {
	switch SubmissionStatus(s) {
	case SubmissionDraft, SubmissionMenunggu, SubmissionDitolak, SubmissionDiterima:
		return true
	}
	return false
}

type ResponseLetterStatus string

const (
	ResponseLetterPending   ResponseLetterStatus = "pending"
	ResponseLetterSubmitted ResponseLetterStatus = "submitted"
	ResponseLetterVerified  ResponseLetterStatus = "verified"
)

type SubmissionModel struct {
	SubmissionID     uuid.UUID `gorm:"column:submission_id;type:uuid;default:gen_random_uuid();primaryKey" json:"submission_id"`
	SubmissionTeamID uuid.UUID `gorm:"column:submission_team_id;type:uuid;not null;index" json:"submission_team_id"`

	SubmissionCompanyName    string `gorm:"column:submission_company_name;type:varchar(150);not null;default:''" json:"submission_company_name"`
	SubmissionCompanyAddress string `gorm:"column:submission_company_address;type:text;not null;default:''" json:"submission_company_address"`
	SubmissionCompanyPhone   string `gorm:"column:submission_company_phone;type:varchar(30);not null;default:''" json:"submission_company_phone"`

	SubmissionStartDate *time.Time `gorm:"column:submission_start_date;type:date" json:"submission_start_date,omitempty"`
	SubmissionEndDate   *time.Time `gorm:"column:submission_end_date;type:date" json:"submission_end_date,omitempty"`

	// Divisi/bidang yang dilamar di perusahaan tujuan.
	SubmissionDivisions pq.StringArray `gorm:"column:submission_divisions;type:text[]" json:"submission_divisions,omitempty"`

	// Kolom lentur untuk atribut tambahan dari form (jumlah peserta,
	// catatan pembimbing, dsb) tanpa migrasi skema.
	SubmissionExtra datatypes.JSONMap `gorm:"column:submission_extra" json:"submission_extra,omitempty"`

	SubmissionStatus          SubmissionStatus `gorm:"column:submission_status;type:varchar(10);not null;default:'DRAFT'" json:"submission_status"`
	SubmissionRejectionReason *string          `gorm:"column:submission_rejection_reason;type:text" json:"submission_rejection_reason,omitempty"`
	SubmissionApprovedBy      *uuid.UUID       `gorm:"column:submission_approved_by;type:uuid" json:"submission_approved_by,omitempty"`
	SubmissionApprovedAt      *time.Time       `gorm:"column:submission_approved_at" json:"submission_approved_at,omitempty"`
	SubmissionSubmittedAt     *time.Time       `gorm:"column:submission_submitted_at" json:"submission_submitted_at,omitempty"`

	SubmissionResponseLetterStatus ResponseLetterStatus `gorm:"column:submission_response_letter_status;type:varchar(10);not null;default:'pending'" json:"submission_response_letter_status"`

	SubmissionCreatedAt time.Time `gorm:"column:submission_created_at;autoCreateTime" json:"submission_created_at"`
	SubmissionUpdatedAt time.Time `gorm:"column:submission_updated_at;autoUpdateTime" json:"submission_updated_at"`

	SubmissionDocuments []SubmissionDocumentModel `gorm:"foreignKey:SubmissionDocumentSubmissionID;references:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"submission_documents,omitempty"`
}

func (SubmissionModel) TableName() string { return "submissions" }
