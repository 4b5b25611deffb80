package dto

import (
	"time"

	"github.com/google/uuid"

	"kerjapraktik_backend/internals/features/internship/submissions/model"
)

/* =========================
   Request
   ========================= */

type CreateSubmissionRequest struct {
	TeamID string `json:"team_id" validate:"required,uuid4"`
}

// Semua field opsional: hanya yang dikirim yang diubah (khusus status DRAFT).
type UpdateSubmissionRequest struct {
	CompanyName    *string        `json:"company_name" validate:"omitempty,max=150"`
	CompanyAddress *string        `json:"company_address" validate:"omitempty,max=500"`
	CompanyPhone   *string        `json:"company_phone" validate:"omitempty,max=30"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	Divisions      []string       `json:"divisions" validate:"omitempty,dive,min=1,max=100"`
	Extra          map[string]any `json:"extra"`
}

type RejectSubmissionRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type UpdateSubmissionStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Reason *string `json:"reason"`
}

/* =========================
   Response
   ========================= */

type SubmissionDocumentResponse struct {
	DocumentID   uuid.UUID `json:"document_id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	DocumentType string    `json:"document_type"`
	OriginalName string    `json:"original_name"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	FileURL      string    `json:"file_url"`
	UploadedBy   uuid.UUID `json:"uploaded_by"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type SubmissionResponse struct {
	SubmissionID   uuid.UUID      `json:"submission_id"`
	TeamID         uuid.UUID      `json:"team_id"`
	CompanyName    string         `json:"company_name"`
	CompanyAddress string         `json:"company_address"`
	CompanyPhone   string         `json:"company_phone"`
	StartDate      *time.Time     `json:"start_date,omitempty"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	Divisions      []string       `json:"divisions,omitempty"`
	Extra          map[string]any `json:"extra,omitempty"`

	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ApprovedBy      *uuid.UUID `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`

	ResponseLetterStatus string    `json:"response_letter_status"`
	CreatedAt            time.Time `json:"created_at"`

	Documents []SubmissionDocumentResponse `json:"documents,omitempty"`
}

func DocumentFromModel(d *model.SubmissionDocumentModel) SubmissionDocumentResponse {
	return SubmissionDocumentResponse{
		DocumentID:   d.SubmissionDocumentID,
		SubmissionID: d.SubmissionDocumentSubmissionID,
		DocumentType: d.SubmissionDocumentType,
		OriginalName: d.SubmissionDocumentOriginalName,
		FileType:     d.SubmissionDocumentFileType,
		FileSize:     d.SubmissionDocumentFileSize,
		FileURL:      d.SubmissionDocumentFileURL,
		UploadedBy:   d.SubmissionDocumentUploadedBy,
		UploadedAt:   d.SubmissionDocumentUploadedAt,
	}
}

func FromModel(s *model.SubmissionModel) SubmissionResponse {
	resp := SubmissionResponse{
		SubmissionID:         s.SubmissionID,
		TeamID:               s.SubmissionTeamID,
		CompanyName:          s.SubmissionCompanyName,
		CompanyAddress:       s.SubmissionCompanyAddress,
		CompanyPhone:         s.SubmissionCompanyPhone,
		StartDate:            s.SubmissionStartDate,
		EndDate:              s.SubmissionEndDate,
		Divisions:            s.SubmissionDivisions,
		Extra:                s.SubmissionExtra,
		Status:               string(s.SubmissionStatus),
		RejectionReason:      s.SubmissionRejectionReason,
		ApprovedBy:           s.SubmissionApprovedBy,
		ApprovedAt:           s.SubmissionApprovedAt,
		SubmittedAt:          s.SubmissionSubmittedAt,
		ResponseLetterStatus: string(s.SubmissionResponseLetterStatus),
		CreatedAt:            s.SubmissionCreatedAt,
	}
	for i := range s.SubmissionDocuments {
		d := &s.SubmissionDocuments[i]
		// Baris tanpa jenis dokumen dianggap korup dan tidak ditampilkan.
		if d.SubmissionDocumentType == "" {
			continue
		}
		resp.Documents = append(resp.Documents, DocumentFromModel(d))
	}
	return resp
}

func FromModels(items []model.SubmissionModel) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(items))
	for i := range items {
		out = append(out, FromModel(&items[i]))
	}
	return out
}
