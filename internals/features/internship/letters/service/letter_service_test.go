package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kerjapraktik_backend/internals/features/internship/letters/model"
	submissionModel "kerjapraktik_backend/internals/features/internship/submissions/model"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

/* =========================
   Fakes
   ========================= */

type fakeLetterStore struct {
	letters map[uuid.UUID]*model.GeneratedLetterModel

	// numbers yang dianggap sudah terpakai selain isi letters
	takenNumbers map[string]bool
}

func newFakeLetterStore() *fakeLetterStore {
	return &fakeLetterStore{
		letters:      make(map[uuid.UUID]*model.GeneratedLetterModel),
		takenNumbers: make(map[string]bool),
	}
}

func (f *fakeLetterStore) Create(ctx context.Context, l *model.GeneratedLetterModel) error {
	cp := *l
	f.letters[l.GeneratedLetterID] = &cp
	return nil
}

func (f *fakeLetterStore) NumberExists(ctx context.Context, number string) (bool, error) {
	if f.takenNumbers[number] {
		return true, nil
	}
	for _, l := range f.letters {
		if l.GeneratedLetterNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLetterStore) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.GeneratedLetterModel, error) {
	var out []model.GeneratedLetterModel
	for _, l := range f.letters {
		if l.GeneratedLetterSubmissionID == submissionID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLetterStore) List(ctx context.Context, limit, offset int) ([]model.GeneratedLetterModel, int64, error) {
	var out []model.GeneratedLetterModel
	for _, l := range f.letters {
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

type fakeSubmissionReader struct {
	items map[uuid.UUID]*submissionModel.SubmissionModel
}

func (f *fakeSubmissionReader) FindByID(ctx context.Context, id uuid.UUID) (*submissionModel.SubmissionModel, error) {
	return f.items[id], nil
}

type stubRenderer struct {
	lastData LetterData
	fail     bool
}

func (r *stubRenderer) Render(ctx context.Context, data LetterData) ([]byte, string, error) {
	if r.fail {
		return nil, "", fiber.NewError(fiber.StatusBadGateway, "Layanan renderer surat tidak dapat dihubungi")
	}
	r.lastData = data
	return []byte("%PDF-1.7 isi surat"), "application/pdf", nil
}

func newTestLetterService(status submissionModel.SubmissionStatus) (*LetterService, *fakeLetterStore, *stubRenderer, *oss.MockBlobService, uuid.UUID) {
	store := newFakeLetterStore()
	subID := uuid.New()
	reader := &fakeSubmissionReader{items: map[uuid.UUID]*submissionModel.SubmissionModel{
		subID: {
			SubmissionID:             subID,
			SubmissionTeamID:         uuid.New(),
			SubmissionCompanyName:    "PT Maju Jaya",
			SubmissionCompanyAddress: "Jl. Merdeka 1",
			SubmissionStatus:         status,
		},
	}}
	renderer := &stubRenderer{}
	blob := &oss.MockBlobService{}
	svc := NewLetterService(store, reader, renderer, blob)
	return svc, store, renderer, blob, subID
}

var letterNumberRe = regexp.MustCompile(`^\d{4}/KP/FT/\d{2}/\d{4}$`)

/* =========================
   Tests
   ========================= */

func TestGenerateLetter(t *testing.T) {
	svc, store, renderer, blob, subID := newTestLetterService(submissionModel.SubmissionDiterima)
	svc.now = func() time.Time { return time.Date(2025, time.September, 10, 9, 0, 0, 0, time.UTC) }
	admin := uuid.New()

	letter, err := svc.GenerateLetter(context.Background(), subID, admin, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !letterNumberRe.MatchString(letter.GeneratedLetterNumber) {
		t.Errorf("format nomor = %q", letter.GeneratedLetterNumber)
	}
	if got := letter.GeneratedLetterNumber[len(letter.GeneratedLetterNumber)-7:]; got != "09/2025" {
		t.Errorf("bulan/tahun nomor = %q, mau 09/2025", got)
	}
	if letter.GeneratedLetterFileType != "PDF" {
		t.Errorf("file_type = %q, mau PDF (default)", letter.GeneratedLetterFileType)
	}
	if renderer.lastData.CompanyName != "PT Maju Jaya" {
		t.Errorf("payload renderer company = %q", renderer.lastData.CompanyName)
	}
	if renderer.lastData.LetterNumber != letter.GeneratedLetterNumber {
		t.Error("nomor di payload renderer harus sama dengan yang dicatat")
	}
	if len(blob.Uploaded) != 1 {
		t.Errorf("objek terunggah = %d, mau 1", len(blob.Uploaded))
	}
	if len(store.letters) != 1 {
		t.Errorf("baris surat = %d, mau 1", len(store.letters))
	}
}

func TestGenerateLetterRequiresApprovedSubmission(t *testing.T) {
	admin := uuid.New()

	for _, status := range []submissionModel.SubmissionStatus{
		submissionModel.SubmissionDraft,
		submissionModel.SubmissionMenunggu,
		submissionModel.SubmissionDitolak,
	} {
		svc, _, _, _, subID := newTestLetterService(status)
		_, err := svc.GenerateLetter(context.Background(), subID, admin, "pdf")
		var fe *fiber.Error
		if !errors.As(err, &fe) || fe.Code != fiber.StatusConflict {
			t.Errorf("status %s: err = %v, mau 409", status, err)
		}
	}

	// pengajuan tidak ada
	svc, _, _, _, _ := newTestLetterService(submissionModel.SubmissionDiterima)
	_, err := svc.GenerateLetter(context.Background(), uuid.New(), admin, "pdf")
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusNotFound {
		t.Errorf("pengajuan hilang: err = %v, mau 404", err)
	}
}

func TestGenerateLetterNumberRetry(t *testing.T) {
	svc, store, _, _, subID := newTestLetterService(submissionModel.SubmissionDiterima)
	frozen := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }
	admin := uuid.New()

	// semua nomor bulan ini sudah terpakai: pengundian harus menyerah rapi
	for i := 0; i < 10000; i++ {
		store.takenNumbers[numberFor(i, frozen)] = true
	}
	_, err := svc.GenerateLetter(context.Background(), subID, admin, "pdf")
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusInternalServerError {
		t.Fatalf("err = %v, mau 500 setelah kehabisan percobaan", err)
	}

	// daftar dikosongkan: pengundian berikutnya langsung dapat nomor bebas
	store.takenNumbers = make(map[string]bool)
	letter, err := svc.GenerateLetter(context.Background(), subID, admin, "pdf")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if store.takenNumbers[letter.GeneratedLetterNumber] {
		t.Error("nomor terpakai kembali terpilih")
	}
}

func numberFor(n int, at time.Time) string {
	return fmt.Sprintf("%04d/KP/FT/%02d/%d", n, int(at.Month()), at.Year())
}

func TestGenerateLetterUniqueAcrossCalls(t *testing.T) {
	svc, _, _, _, subID := newTestLetterService(submissionModel.SubmissionDiterima)
	admin := uuid.New()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		letter, err := svc.GenerateLetter(ctx, subID, admin, "pdf")
		if err != nil {
			t.Fatalf("generate #%d: %v", i, err)
		}
		if seen[letter.GeneratedLetterNumber] {
			t.Fatalf("nomor %s terbit dua kali", letter.GeneratedLetterNumber)
		}
		seen[letter.GeneratedLetterNumber] = true
	}
}

func TestGenerateLetterRendererFailure(t *testing.T) {
	svc, store, renderer, blob, subID := newTestLetterService(submissionModel.SubmissionDiterima)
	renderer.fail = true

	_, err := svc.GenerateLetter(context.Background(), subID, uuid.New(), "pdf")
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusBadGateway {
		t.Fatalf("err = %v, mau 502", err)
	}
	if len(store.letters) != 0 || len(blob.Uploaded) != 0 {
		t.Error("kegagalan render tidak boleh meninggalkan baris atau objek")
	}
}

func TestGetLettersBySubmission(t *testing.T) {
	svc, _, _, _, subID := newTestLetterService(submissionModel.SubmissionDiterima)
	ctx := context.Background()

	_, err := svc.GetLettersBySubmission(ctx, subID)
	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusNotFound {
		t.Fatalf("belum ada surat: err = %v, mau 404", err)
	}

	if _, err := svc.GenerateLetter(ctx, subID, uuid.New(), "docx"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	letters, err := svc.GetLettersBySubmission(ctx, subID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(letters) != 1 || letters[0].GeneratedLetterFileType != "DOCX" {
		t.Errorf("surat = %+v", letters)
	}
}
