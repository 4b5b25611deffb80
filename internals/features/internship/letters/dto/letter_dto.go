package dto

import (
	"time"

	"github.com/google/uuid"

	"kerjapraktik_backend/internals/features/internship/letters/model"
)

type GenerateLetterRequest struct {
	Format string `json:"format" validate:"omitempty,oneof=pdf docx"`
}

type GeneratedLetterResponse struct {
	LetterID     uuid.UUID `json:"letter_id"`
	SubmissionID uuid.UUID `json:"submission_id"`
	LetterNumber string    `json:"letter_number"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	FileType     string    `json:"file_type"`
	GeneratedBy  uuid.UUID `json:"generated_by"`
	GeneratedAt  time.Time `json:"generated_at"`
}

func FromModel(m *model.GeneratedLetterModel) GeneratedLetterResponse {
	return GeneratedLetterResponse{
		LetterID:     m.GeneratedLetterID,
		SubmissionID: m.GeneratedLetterSubmissionID,
		LetterNumber: m.GeneratedLetterNumber,
		FileName:     m.GeneratedLetterFileName,
		FileURL:      m.GeneratedLetterFileURL,
		FileType:     m.GeneratedLetterFileType,
		GeneratedBy:  m.GeneratedLetterGeneratedBy,
		GeneratedAt:  m.GeneratedLetterGeneratedAt,
	}
}

func FromModels(items []model.GeneratedLetterModel) []GeneratedLetterResponse {
	out := make([]GeneratedLetterResponse, 0, len(items))
	for i := range items {
		out = append(out, FromModel(&items[i]))
	}
	return out
}
