package service

import (
	"context"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"kerjapraktik_backend/internals/constants"
	"kerjapraktik_backend/internals/features/internship/submissions/dto"
	"kerjapraktik_backend/internals/features/internship/submissions/model"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

/* =========================
   Error taksonomi pengajuan
   ========================= */

var (
	ErrSubmissionNotFound = fiber.NewError(fiber.StatusNotFound, "Pengajuan tidak ditemukan")
	ErrTeamNotFound       = fiber.NewError(fiber.StatusNotFound, "Tim tidak ditemukan")

	ErrNotTeamMember     = fiber.NewError(fiber.StatusForbidden, "Kamu bukan anggota aktif tim ini")
	ErrTeamNotFixed      = fiber.NewError(fiber.StatusConflict, "Tim harus difinalisasi sebelum mengajukan kerja praktik")
	ErrOpenSubmission    = fiber.NewError(fiber.StatusConflict, "Tim masih memiliki pengajuan yang sedang berjalan")
	ErrNotDraft          = fiber.NewError(fiber.StatusConflict, "Pengajuan sudah dikirim dan tidak dapat diubah")
	ErrNotAwaitingReview = fiber.NewError(fiber.StatusConflict, "Pengajuan tidak dalam status menunggu review")

	ErrCompanyRequired      = fiber.NewError(fiber.StatusBadRequest, "Nama dan alamat perusahaan wajib diisi sebelum pengajuan dikirim")
	ErrReasonRequired       = fiber.NewError(fiber.StatusBadRequest, "Alasan penolakan wajib diisi")
	ErrDocumentTypeRequired = fiber.NewError(fiber.StatusBadRequest, "Jenis dokumen wajib diisi")
	ErrUnknownStatus        = fiber.NewError(fiber.StatusBadRequest, "Status pengajuan tidak dikenal")
)

/* =========================
   Kolaborator
   ========================= */

type SubmissionFilter struct {
	Status string
	TeamID *uuid.UUID
}

type SubmissionStore interface {
	WithTx(ctx context.Context, fn func(SubmissionStore) error) error

	Create(ctx context.Context, s *model.SubmissionModel) error
	// FindByID memuat dokumen-dokumennya; (nil, nil) bila tidak ada.
	FindByID(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.SubmissionModel, error)
	List(ctx context.Context, f SubmissionFilter, limit, offset int) ([]model.SubmissionModel, int64, error)
	HasOpenSubmission(ctx context.Context, teamID uuid.UUID) (bool, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error

	CreateDocument(ctx context.Context, d *model.SubmissionDocumentModel) error
}

// TeamGate menjawab dua pertanyaan lintas fitur yang dibutuhkan mesin
// pengajuan tanpa menyeret seluruh mesin tim.
type TeamGate interface {
	// TeamStatus mengembalikan "" bila tim tidak ada.
	TeamStatus(ctx context.Context, teamID uuid.UUID) (string, error)
	IsAcceptedMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	// AcceptedTeamID mengembalikan uuid.Nil bila user tidak punya tim aktif.
	AcceptedTeamID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

/* =========================
   Service
   ========================= */

const submissionDocumentDir = "kerja-praktik/documents"

type SubmissionService struct {
	store SubmissionStore
	teams TeamGate
	blob  oss.BlobService
}

func NewSubmissionService(store SubmissionStore, teams TeamGate, blob oss.BlobService) *SubmissionService {
	return &SubmissionService{store: store, teams: teams, blob: blob}
}

// CreateSubmission membuka pengajuan DRAFT baru untuk tim yang sudah FIXED.
// Satu tim hanya boleh punya satu pengajuan non-terminal.
func (s *SubmissionService) CreateSubmission(ctx context.Context, teamID, userID uuid.UUID) (*model.SubmissionModel, error) {
	status, err := s.teams.TeamStatus(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return nil, ErrTeamNotFound
	}
	if status != "FIXED" {
		return nil, ErrTeamNotFixed
	}

	ok, err := s.teams.IsAcceptedMember(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotTeamMember
	}

	open, err := s.store.HasOpenSubmission(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrOpenSubmission
	}

	sub := &model.SubmissionModel{
		SubmissionID:                   uuid.New(),
		SubmissionTeamID:               teamID,
		SubmissionStatus:               model.SubmissionDraft,
		SubmissionResponseLetterStatus: model.ResponseLetterPending,
	}
	if err := s.store.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// UpdateSubmission mengubah field yang dikirim saja; hanya untuk DRAFT.
func (s *SubmissionService) UpdateSubmission(ctx context.Context, id, userID uuid.UUID, req dto.UpdateSubmissionRequest) (*model.SubmissionModel, error) {
	sub, err := s.requireMemberSubmission(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if sub.SubmissionStatus != model.SubmissionDraft {
		return nil, ErrNotDraft
	}

	fields := map[string]any{}
	if req.CompanyName != nil {
		fields["submission_company_name"] = strings.TrimSpace(*req.CompanyName)
	}
	if req.CompanyAddress != nil {
		fields["submission_company_address"] = strings.TrimSpace(*req.CompanyAddress)
	}
	if req.CompanyPhone != nil {
		fields["submission_company_phone"] = strings.TrimSpace(*req.CompanyPhone)
	}
	if req.StartDate != nil {
		fields["submission_start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		fields["submission_end_date"] = *req.EndDate
	}
	if req.Divisions != nil {
		fields["submission_divisions"] = pq.StringArray(cleanDivisions(req.Divisions))
	}
	if req.Extra != nil {
		fields["submission_extra"] = datatypes.JSONMap(req.Extra)
	}
	if len(fields) == 0 {
		return sub, nil
	}

	if err := s.store.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	fresh, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, ErrSubmissionNotFound
	}
	return fresh, nil
}

// SubmitForReview mengirim DRAFT ke antrean review admin.
func (s *SubmissionService) SubmitForReview(ctx context.Context, id, userID uuid.UUID) (*model.SubmissionModel, error) {
	sub, err := s.requireMemberSubmission(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if sub.SubmissionStatus != model.SubmissionDraft {
		return nil, ErrNotDraft
	}
	if strings.TrimSpace(sub.SubmissionCompanyName) == "" ||
		strings.TrimSpace(sub.SubmissionCompanyAddress) == "" {
		return nil, ErrCompanyRequired
	}

	now := time.Now()
	err = s.store.UpdateFields(ctx, id, map[string]any{
		"submission_status":       model.SubmissionMenunggu,
		"submission_submitted_at": now,
	})
	if err != nil {
		return nil, err
	}
	sub.SubmissionStatus = model.SubmissionMenunggu
	sub.SubmissionSubmittedAt = &now
	return sub, nil
}

// UploadDocument memvalidasi berkas, menitipkannya ke bucket, lalu mencatat
// baris dokumen. Jenis dokumen wajib; baris tanpa jenis tidak boleh tercipta.
func (s *SubmissionService) UploadDocument(ctx context.Context, submissionID, userID uuid.UUID, fh *multipart.FileHeader, documentType string) (*model.SubmissionDocumentModel, error) {
	documentType = strings.ToUpper(strings.TrimSpace(documentType))
	if documentType == "" {
		return nil, ErrDocumentTypeRequired
	}

	if _, err := s.requireMemberSubmission(ctx, submissionID, userID); err != nil {
		return nil, err
	}

	if err := oss.ValidateFileType(fh.Filename, constants.AllowedDocumentExts); err != nil {
		return nil, err
	}
	if err := oss.ValidateFileSize(fh, constants.MaxDocumentSizeMB); err != nil {
		return nil, err
	}

	url, key, _, err := s.blob.UploadDocument(ctx, submissionDocumentDir, fh)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	doc := &model.SubmissionDocumentModel{
		SubmissionDocumentID:           uuid.New(),
		SubmissionDocumentSubmissionID: submissionID,
		SubmissionDocumentType:         documentType,
		SubmissionDocumentFileName:     key,
		SubmissionDocumentOriginalName: fh.Filename,
		SubmissionDocumentFileType:     constants.DetectFileTypeFromExt(ext),
		SubmissionDocumentFileSize:     fh.Size,
		SubmissionDocumentFileURL:      url,
		SubmissionDocumentUploadedBy:   userID,
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		// Baris gagal dicatat; objek di bucket jadi yatim, cukup dicatat di log.
		log.Printf("[ERROR] dokumen %s terunggah tapi gagal dicatat: %v", key, err)
		return nil, err
	}
	return doc, nil
}

// GetMySubmissions mengembalikan seluruh pengajuan tim aktif si user.
func (s *SubmissionService) GetMySubmissions(ctx context.Context, userID uuid.UUID) ([]model.SubmissionModel, error) {
	teamID, err := s.teams.AcceptedTeamID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if teamID == uuid.Nil {
		return []model.SubmissionModel{}, nil
	}
	return s.store.ListByTeam(ctx, teamID)
}

func (s *SubmissionService) GetSubmissionByID(ctx context.Context, id, userID uuid.UUID) (*model.SubmissionModel, error) {
	return s.requireMemberSubmission(ctx, id, userID)
}

/* =========================
   Sisi admin
   ========================= */

// GetSubmissionForAdmin tidak memeriksa keanggotaan.
func (s *SubmissionService) GetSubmissionForAdmin(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error) {
	sub, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

func (s *SubmissionService) ListSubmissions(ctx context.Context, f SubmissionFilter, limit, offset int) ([]model.SubmissionModel, int64, error) {
	if f.Status != "" && !model.IsKnownSubmissionStatus(f.Status) {
		return nil, 0, ErrUnknownStatus
	}
	return s.store.List(ctx, f, limit, offset)
}

// ApproveSubmission meluluskan pengajuan MENUNGGU dan membersihkan jejak
// penolakan sebelumnya.
func (s *SubmissionService) ApproveSubmission(ctx context.Context, id, adminID uuid.UUID) (*model.SubmissionModel, error) {
	sub, err := s.GetSubmissionForAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.SubmissionStatus != model.SubmissionMenunggu {
		return nil, ErrNotAwaitingReview
	}

	now := time.Now()
	err = s.store.UpdateFields(ctx, id, map[string]any{
		"submission_status":           model.SubmissionDiterima,
		"submission_approved_by":      adminID,
		"submission_approved_at":      now,
		"submission_rejection_reason": nil,
	})
	if err != nil {
		return nil, err
	}

	sub.SubmissionStatus = model.SubmissionDiterima
	sub.SubmissionApprovedBy = &adminID
	sub.SubmissionApprovedAt = &now
	sub.SubmissionRejectionReason = nil
	log.Printf("[INFO] pengajuan %s diterima oleh %s", id, adminID)
	return sub, nil
}

func (s *SubmissionService) RejectSubmission(ctx context.Context, id, adminID uuid.UUID, reason string) (*model.SubmissionModel, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	sub, err := s.GetSubmissionForAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.SubmissionStatus != model.SubmissionMenunggu {
		return nil, ErrNotAwaitingReview
	}

	err = s.store.UpdateFields(ctx, id, map[string]any{
		"submission_status":           model.SubmissionDitolak,
		"submission_rejection_reason": reason,
		"submission_approved_by":      nil,
		"submission_approved_at":      nil,
	})
	if err != nil {
		return nil, err
	}

	sub.SubmissionStatus = model.SubmissionDitolak
	sub.SubmissionRejectionReason = &reason
	sub.SubmissionApprovedBy = nil
	sub.SubmissionApprovedAt = nil
	log.Printf("[INFO] pengajuan %s ditolak oleh %s", id, adminID)
	return sub, nil
}

// UpdateSubmissionStatus: transisi generik admin dengan guard yang sama
// dengan approve/reject.
func (s *SubmissionService) UpdateSubmissionStatus(ctx context.Context, id, adminID uuid.UUID, status string, reason *string) (*model.SubmissionModel, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch model.SubmissionStatus(status) {
	case model.SubmissionDiterima:
		return s.ApproveSubmission(ctx, id, adminID)
	case model.SubmissionDitolak:
		if reason == nil {
			return nil, ErrReasonRequired
		}
		return s.RejectSubmission(ctx, id, adminID, *reason)
	default:
		return nil, ErrUnknownStatus
	}
}

/* =========================
   Internal
   ========================= */

func (s *SubmissionService) requireMemberSubmission(ctx context.Context, id, userID uuid.UUID) (*model.SubmissionModel, error) {
	sub, err := s.store.FindByID(ctx, id)
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
	return sub, nil
}

func cleanDivisions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
