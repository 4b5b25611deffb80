package service

import (
	"context"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kerjapraktik_backend/internals/constants"
	"kerjapraktik_backend/internals/features/internship/response_letters/model"
	submissionModel "kerjapraktik_backend/internals/features/internship/submissions/model"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

var (
	ErrSubmissionNotFound     = fiber.NewError(fiber.StatusNotFound, "Pengajuan tidak ditemukan")
	ErrResponseLetterNotFound = fiber.NewError(fiber.StatusNotFound, "Surat balasan tidak ditemukan")
	ErrNotTeamMember          = fiber.NewError(fiber.StatusForbidden, "Kamu bukan anggota aktif tim pengajuan ini")
	ErrAlreadySubmitted       = fiber.NewError(fiber.StatusConflict, "Surat balasan untuk pengajuan ini sudah pernah diunggah")
	ErrAlreadyVerified        = fiber.NewError(fiber.StatusConflict, "Surat balasan sudah diverifikasi")
	ErrUnknownDecision        = fiber.NewError(fiber.StatusBadRequest, "Keputusan harus approved atau rejected")
)

/* =========================
   Kolaborator
   ========================= */

type ResponseLetterStore interface {
	WithTx(ctx context.Context, fn func(ResponseLetterStore) error) error

	Create(ctx context.Context, m *model.ResponseLetterModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ResponseLetterModel, error)
	FindBySubmission(ctx context.Context, submissionID uuid.UUID) (*model.ResponseLetterModel, error)
	MarkVerified(ctx context.Context, id uuid.UUID, decision model.ResponseLetterDecision, adminID uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetSubmissionLetterStatus menyentuh tabel submissions: kolom
	// submission_response_letter_status mengikuti siklus surat balasan.
	SetSubmissionLetterStatus(ctx context.Context, submissionID uuid.UUID, status submissionModel.ResponseLetterStatus) error
}

type SubmissionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*submissionModel.SubmissionModel, error)
}

type TeamGate interface {
	IsAcceptedMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
}

/* =========================
   Service
   ========================= */

const responseLetterDir = "kerja-praktik/response-letters"

type ResponseLetterService struct {
	store       ResponseLetterStore
	submissions SubmissionReader
	teams       TeamGate
	blob        oss.BlobService
}

func NewResponseLetterService(store ResponseLetterStore, submissions SubmissionReader, teams TeamGate, blob oss.BlobService) *ResponseLetterService {
	return &ResponseLetterService{store: store, submissions: submissions, teams: teams, blob: blob}
}

// SubmitResponseLetter mengunggah surat balasan perusahaan (PDF) beserta
// keputusannya. Maksimal satu surat per pengajuan.
func (s *ResponseLetterService) SubmitResponseLetter(ctx context.Context, submissionID, userID uuid.UUID, fh *multipart.FileHeader, decision string) (*model.ResponseLetterModel, error) {
	decision = strings.ToLower(strings.TrimSpace(decision))
	if !model.IsKnownDecision(decision) {
		return nil, ErrUnknownDecision
	}

	sub, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	ok, err := s.teams.IsAcceptedMember(ctx, sub.SubmissionTeamID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotTeamMember
	}

	existing, err := s.store.FindBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubmitted
	}

	if err := oss.ValidateFileType(fh.Filename, constants.AllowedResponseLetterExts); err != nil {
		return nil, err
	}
	if err := oss.ValidateFileSize(fh, constants.MaxResponseLetterSizeMB); err != nil {
		return nil, err
	}

	url, key, _, err := s.blob.UploadDocument(ctx, responseLetterDir, fh)
	if err != nil {
		return nil, err
	}

	letter := &model.ResponseLetterModel{
		ResponseLetterID:           uuid.New(),
		ResponseLetterSubmissionID: submissionID,
		ResponseLetterStatus:       model.ResponseLetterDecision(decision),
		ResponseLetterFileURL:      url,
		ResponseLetterFileName:     key,
		ResponseLetterMemberUserID: userID,
	}

	err = s.store.WithTx(ctx, func(tx ResponseLetterStore) error {
		if err := tx.Create(ctx, letter); err != nil {
			return err
		}
		return tx.SetSubmissionLetterStatus(ctx, submissionID, submissionModel.ResponseLetterSubmitted)
	})
	if err != nil {
		return nil, err
	}
	return letter, nil
}

// VerifyResponseLetter: keputusan admin menimpa status surat dari anggota.
func (s *ResponseLetterService) VerifyResponseLetter(ctx context.Context, id, adminID uuid.UUID, decision string) (*model.ResponseLetterModel, error) {
	decision = strings.ToLower(strings.TrimSpace(decision))
	if !model.IsKnownDecision(decision) {
		return nil, ErrUnknownDecision
	}

	letter, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if letter == nil {
		return nil, ErrResponseLetterNotFound
	}
	if letter.ResponseLetterVerified {
		return nil, ErrAlreadyVerified
	}

	now := time.Now()
	err = s.store.WithTx(ctx, func(tx ResponseLetterStore) error {
		if err := tx.MarkVerified(ctx, id, model.ResponseLetterDecision(decision), adminID, now); err != nil {
			return err
		}
		return tx.SetSubmissionLetterStatus(ctx, letter.ResponseLetterSubmissionID, submissionModel.ResponseLetterVerified)
	})
	if err != nil {
		return nil, err
	}

	letter.ResponseLetterStatus = model.ResponseLetterDecision(decision)
	letter.ResponseLetterVerified = true
	letter.ResponseLetterVerifiedAt = &now
	letter.ResponseLetterVerifiedBy = &adminID
	log.Printf("[INFO] surat balasan %s diverifikasi %s oleh %s", id, decision, adminID)
	return letter, nil
}

// DeleteResponseLetter menghapus surat balasan; kegagalan menghapus objek di
// bucket tidak membatalkan penghapusan baris.
func (s *ResponseLetterService) DeleteResponseLetter(ctx context.Context, id uuid.UUID) error {
	letter, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if letter == nil {
		return ErrResponseLetterNotFound
	}

	if err := s.blob.DeleteByPublicURL(ctx, letter.ResponseLetterFileURL); err != nil {
		log.Printf("[WARN] gagal menghapus objek surat balasan %s: %v", letter.ResponseLetterFileName, err)
	}

	return s.store.WithTx(ctx, func(tx ResponseLetterStore) error {
		if err := tx.Delete(ctx, id); err != nil {
			return err
		}
		return tx.SetSubmissionLetterStatus(ctx, letter.ResponseLetterSubmissionID, submissionModel.ResponseLetterPending)
	})
}

func (s *ResponseLetterService) GetBySubmission(ctx context.Context, submissionID uuid.UUID) (*model.ResponseLetterModel, error) {
	letter, err := s.store.FindBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if letter == nil {
		return nil, ErrResponseLetterNotFound
	}
	return letter, nil
}
