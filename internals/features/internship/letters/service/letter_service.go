package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kerjapraktik_backend/internals/features/internship/letters/model"
	submissionModel "kerjapraktik_backend/internals/features/internship/submissions/model"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

var (
	ErrSubmissionNotFound    = fiber.NewError(fiber.StatusNotFound, "Pengajuan tidak ditemukan")
	ErrLetterNotFound        = fiber.NewError(fiber.StatusNotFound, "Surat pengantar tidak ditemukan")
	ErrSubmissionNotApproved = fiber.NewError(fiber.StatusConflict, "Surat hanya dapat dibuat untuk pengajuan yang sudah diterima")
	ErrNumberExhausted       = fiber.NewError(fiber.StatusInternalServerError, "Gagal mendapatkan nomor surat unik, coba lagi")
)

/* =========================
   Kolaborator
   ========================= */

type LetterStore interface {
	Create(ctx context.Context, l *model.GeneratedLetterModel) error
	NumberExists(ctx context.Context, number string) (bool, error)
	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.GeneratedLetterModel, error)
	List(ctx context.Context, limit, offset int) ([]model.GeneratedLetterModel, int64, error)
}

// SubmissionReader: potongan baca dari fitur pengajuan yang dibutuhkan di sini.
type SubmissionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*submissionModel.SubmissionModel, error)
}

// LetterData adalah payload yang diserahkan ke renderer dokumen.
type LetterData struct {
	LetterNumber   string     `json:"letter_number"`
	CompanyName    string     `json:"company_name"`
	CompanyAddress string     `json:"company_address"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Divisions      []string   `json:"divisions,omitempty"`
	IssuedAt       time.Time  `json:"issued_at"`
	Format         string     `json:"format"`
}

// LetterRenderer mengubah LetterData menjadi berkas surat jadi.
type LetterRenderer interface {
	Render(ctx context.Context, data LetterData) (content []byte, contentType string, err error)
}

/* =========================
   Service
   ========================= */

const (
	letterDir         = "kerja-praktik/letters"
	maxNumberAttempts = 10
)

type LetterService struct {
	store       LetterStore
	submissions SubmissionReader
	renderer    LetterRenderer
	blob        oss.BlobService

	// dipisah supaya tes bisa membekukan waktu
	now func() time.Time
}

func NewLetterService(store LetterStore, submissions SubmissionReader, renderer LetterRenderer, blob oss.BlobService) *LetterService {
	return &LetterService{
		store:       store,
		submissions: submissions,
		renderer:    renderer,
		blob:        blob,
		now:         time.Now,
	}
}

// GenerateLetter membuat surat pengantar untuk pengajuan DITERIMA:
// nomor unik -> render -> unggah -> catat.
func (s *LetterService) GenerateLetter(ctx context.Context, submissionID, adminID uuid.UUID, format string) (*model.GeneratedLetterModel, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "pdf"
	}

	sub, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	if sub.SubmissionStatus != submissionModel.SubmissionDiterima {
		return nil, ErrSubmissionNotApproved
	}

	number, err := s.nextLetterNumber(ctx)
	if err != nil {
		return nil, err
	}

	content, contentType, err := s.renderer.Render(ctx, LetterData{
		LetterNumber:   number,
		CompanyName:    sub.SubmissionCompanyName,
		CompanyAddress: sub.SubmissionCompanyAddress,
		StartDate:      sub.SubmissionStartDate,
		EndDate:        sub.SubmissionEndDate,
		Divisions:      sub.SubmissionDivisions,
		IssuedAt:       s.now(),
		Format:         format,
	})
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("surat-pengantar-%s.%s", submissionID, format)
	url, key, err := s.blob.UploadBytes(ctx, letterDir, fileName, content, contentType)
	if err != nil {
		return nil, err
	}

	letter := &model.GeneratedLetterModel{
		GeneratedLetterID:           uuid.New(),
		GeneratedLetterSubmissionID: submissionID,
		GeneratedLetterNumber:       number,
		GeneratedLetterFileName:     key,
		GeneratedLetterFileURL:      url,
		GeneratedLetterFileType:     strings.ToUpper(format),
		GeneratedLetterGeneratedBy:  adminID,
	}
	if err := s.store.Create(ctx, letter); err != nil {
		return nil, err
	}

	log.Printf("[INFO] surat %s diterbitkan untuk pengajuan %s oleh %s", number, submissionID, adminID)
	return letter, nil
}

func (s *LetterService) ListLetters(ctx context.Context, limit, offset int) ([]model.GeneratedLetterModel, int64, error) {
	return s.store.List(ctx, limit, offset)
}

func (s *LetterService) GetLettersBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.GeneratedLetterModel, error) {
	letters, err := s.store.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if len(letters) == 0 {
		return nil, ErrLetterNotFound
	}
	return letters, nil
}

// nextLetterNumber mengundi 4 digit lalu mengecek tabel; unique index pada
// kolom nomor tetap menjadi jaring terakhir kalau dua request mengundi
// angka yang sama bersamaan.
func (s *LetterService) nextLetterNumber(ctx context.Context) (string, error) {
	now := s.now()
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10000))
		if err != nil {
			return "", err
		}
		number := fmt.Sprintf("%04d/KP/FT/%02d/%d", n.Int64(), int(now.Month()), now.Year())

		exists, err := s.store.NumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", ErrNumberExhausted
}
