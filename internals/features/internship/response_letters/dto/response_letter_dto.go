package dto

import (
	"time"

	"github.com/google/uuid"

	"kerjapraktik_backend/internals/features/internship/response_letters/model"
)

type VerifyResponseLetterRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

type ResponseLetterResponse struct {
	ResponseLetterID uuid.UUID  `json:"response_letter_id"`
	SubmissionID     uuid.UUID  `json:"submission_id"`
	LetterStatus     string     `json:"letter_status"`
	FileURL          string     `json:"file_url"`
	SubmittedBy      uuid.UUID  `json:"submitted_by"`
	Verified         bool       `json:"verified"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	VerifiedBy       *uuid.UUID `json:"verified_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func FromModel(m *model.ResponseLetterModel) ResponseLetterResponse {
	return ResponseLetterResponse{
		ResponseLetterID: m.ResponseLetterID,
		SubmissionID:     m.ResponseLetterSubmissionID,
		LetterStatus:     string(m.ResponseLetterStatus),
		FileURL:          m.ResponseLetterFileURL,
		SubmittedBy:      m.ResponseLetterMemberUserID,
		Verified:         m.ResponseLetterVerified,
		VerifiedAt:       m.ResponseLetterVerifiedAt,
		VerifiedBy:       m.ResponseLetterVerifiedBy,
		CreatedAt:        m.ResponseLetterCreatedAt,
	}
}
