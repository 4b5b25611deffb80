package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kerjapraktik_backend/internals/features/internship/response_letters/model"
	submissionModel "kerjapraktik_backend/internals/features/internship/submissions/model"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

/* =========================
   Fakes
   ========================= */

type fakeResponseLetterStore struct {
	letters map[uuid.UUID]*model.ResponseLetterModel

	// status response letter per pengajuan, meniru kolom di submissions
	submissionStatus map[uuid.UUID]submissionModel.ResponseLetterStatus
}

func newFakeResponseLetterStore() *fakeResponseLetterStore {
	return &fakeResponseLetterStore{
		letters:          make(map[uuid.UUID]*model.ResponseLetterModel),
		submissionStatus: make(map[uuid.UUID]submissionModel.ResponseLetterStatus),
	}
}

func (f *fakeResponseLetterStore) WithTx(ctx context.Context, fn func(ResponseLetterStore) error) error {
	return fn(f)
}

func (f *fakeResponseLetterStore) Create(ctx context.Context, m *model.ResponseLetterModel) error {
	for _, ex := range f.letters {
		if ex.ResponseLetterSubmissionID == m.ResponseLetterSubmissionID {
			return errors.New("duplicate key response_letter_submission_id")
		}
	}
	cp := *m
	f.letters[m.ResponseLetterID] = &cp
	return nil
}

func (f *fakeResponseLetterStore) FindByID(ctx context.Context, id uuid.UUID) (*model.ResponseLetterModel, error) {
	m, ok := f.letters[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeResponseLetterStore) FindBySubmission(ctx context.Context, submissionID uuid.UUID) (*model.ResponseLetterModel, error) {
	for _, m := range f.letters {
		if m.ResponseLetterSubmissionID == submissionID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeResponseLetterStore) MarkVerified(ctx context.Context, id uuid.UUID, decision model.ResponseLetterDecision, adminID uuid.UUID, at time.Time) error {
	m, ok := f.letters[id]
	if !ok {
		return errors.New("surat tidak ada")
	}
	m.ResponseLetterStatus = decision
	m.ResponseLetterVerified = true
	m.ResponseLetterVerifiedAt = &at
	m.ResponseLetterVerifiedBy = &adminID
	return nil
}

func (f *fakeResponseLetterStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.letters, id)
	return nil
}

func (f *fakeResponseLetterStore) SetSubmissionLetterStatus(ctx context.Context, submissionID uuid.UUID, status submissionModel.ResponseLetterStatus) error {
	f.submissionStatus[submissionID] = status
	return nil
}

type fakeSubmissionReader struct {
	items map[uuid.UUID]*submissionModel.SubmissionModel
}

func (f *fakeSubmissionReader) FindByID(ctx context.Context, id uuid.UUID) (*submissionModel.SubmissionModel, error) {
	return f.items[id], nil
}

type fakeTeamGate struct {
	accepted map[uuid.UUID]map[uuid.UUID]bool
}

func (f *fakeTeamGate) IsAcceptedMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	return f.accepted[teamID][userID], nil
}

type fixture struct {
	svc          *ResponseLetterService
	store        *fakeResponseLetterStore
	blob         *oss.MockBlobService
	submissionID uuid.UUID
	member       uuid.UUID
}

func newFixture() *fixture {
	store := newFakeResponseLetterStore()
	teamID := uuid.New()
	member := uuid.New()
	submissionID := uuid.New()

	reader := &fakeSubmissionReader{items: map[uuid.UUID]*submissionModel.SubmissionModel{
		submissionID: {
			SubmissionID:     submissionID,
			SubmissionTeamID: teamID,
			SubmissionStatus: submissionModel.SubmissionDiterima,
		},
	}}
	gate := &fakeTeamGate{accepted: map[uuid.UUID]map[uuid.UUID]bool{
		teamID: {member: true},
	}}
	blob := &oss.MockBlobService{}

	return &fixture{
		svc:          NewResponseLetterService(store, reader, gate, blob),
		store:        store,
		blob:         blob,
		submissionID: submissionID,
		member:       member,
	}
}

func mustStatus(t *testing.T, err error, want int) {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("mengharapkan *fiber.Error status %d, dapat %v", want, err)
	}
	if fe.Code != want {
		t.Fatalf("status = %d, mau %d (%s)", fe.Code, want, fe.Message)
	}
}

var pdf = &multipart.FileHeader{Filename: "balasan-pt-maju.pdf", Size: 2048}

/* =========================
   Submit
   ========================= */

func TestSubmitResponseLetter(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	letter, err := fx.svc.SubmitResponseLetter(ctx, fx.submissionID, fx.member, pdf, "approved")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if letter.ResponseLetterStatus != model.ResponseLetterApproved {
		t.Errorf("status = %s, mau approved", letter.ResponseLetterStatus)
	}
	if letter.ResponseLetterVerified {
		t.Error("surat baru tidak boleh otomatis verified")
	}
	if fx.store.submissionStatus[fx.submissionID] != submissionModel.ResponseLetterSubmitted {
		t.Error("submission.response_letter_status harus flip ke submitted")
	}
	if len(fx.blob.Uploaded) != 1 {
		t.Errorf("objek terunggah = %d, mau 1", len(fx.blob.Uploaded))
	}
}

func TestSubmitResponseLetterGuards(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	// keputusan asing
	_, err := fx.svc.SubmitResponseLetter(ctx, fx.submissionID, fx.member, pdf, "maybe")
	mustStatus(t, err, fiber.StatusBadRequest)

	// pengajuan tidak ada
	_, err = fx.svc.SubmitResponseLetter(ctx, uuid.New(), fx.member, pdf, "approved")
	mustStatus(t, err, fiber.StatusNotFound)

	// bukan anggota
	_, err = fx.svc.SubmitResponseLetter(ctx, fx.submissionID, uuid.New(), pdf, "approved")
	mustStatus(t, err, fiber.StatusForbidden)

	// hanya PDF
	_, err = fx.svc.SubmitResponseLetter(ctx, fx.submissionID, fx.member,
		&multipart.FileHeader{Filename: "balasan.docx", Size: 100}, "approved")
	mustStatus(t, err, fiber.StatusBadRequest)

	// maksimal 10MB
	_, err = fx.svc.SubmitResponseLetter(ctx, fx.submissionID, fx.member,
		&multipart.FileHeader{Filename: "balasan.pdf", Size: 11 * 1024 * 1024}, "approved")
	mustStatus(t, err, fiber.StatusBadRequest)

	// satu surat per pengajuan
	if _, err := fx.svc.SubmitResponseLetter(ctx, fx.submissionID, fx.member, pdf, "approved"); err != nil {
		t.Fatalf("submit pertama: %v", err)
	}
	_, err = fx.svc.SubmitResponseLetter(ctx, fx.submissionID, fx.member, pdf, "rejected")
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("submit kedua: err = %v, mau ErrAlreadySubmitted", err)
	}
}

/* =========================
   Verify
   ========================= */

func TestVerifyResponseLetter(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	admin := uuid.New()

	letter, _ := fx.svc.SubmitResponseLetter(ctx, fx.submissionID, fx.member, pdf, "approved")

	// keputusan admin menimpa status dari anggota
	got, err := fx.svc.VerifyResponseLetter(ctx, letter.ResponseLetterID, admin, "rejected")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ResponseLetterStatus != model.ResponseLetterRejected {
		t.Errorf("status = %s, mau rejected (keputusan admin menang)", got.ResponseLetterStatus)
	}
	if !got.ResponseLetterVerified || got.ResponseLetterVerifiedBy == nil || *got.ResponseLetterVerifiedBy != admin {
		t.Error("jejak verifikasi tidak lengkap")
	}
	if fx.store.submissionStatus[fx.submissionID] != submissionModel.ResponseLetterVerified {
		t.Error("submission.response_letter_status harus flip ke verified")
	}

	// verifikasi kedua ditolak
	_, err = fx.svc.VerifyResponseLetter(ctx, letter.ResponseLetterID, admin, "approved")
	if !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("verify kedua: err = %v, mau ErrAlreadyVerified", err)
	}

	// surat tidak ada
	_, err = fx.svc.VerifyResponseLetter(ctx, uuid.New(), admin, "approved")
	mustStatus(t, err, fiber.StatusNotFound)
}

/* =========================
   Delete
   ========================= */

func TestDeleteResponseLetter(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	letter, _ := fx.svc.SubmitResponseLetter(ctx, fx.submissionID, fx.member, pdf, "approved")

	if err := fx.svc.DeleteResponseLetter(ctx, letter.ResponseLetterID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := fx.store.letters[letter.ResponseLetterID]; ok {
		t.Error("baris surat harus terhapus")
	}
	if fx.store.submissionStatus[fx.submissionID] != submissionModel.ResponseLetterPending {
		t.Error("submission.response_letter_status harus kembali pending")
	}
	if len(fx.blob.Deleted) != 1 {
		t.Errorf("objek terhapus = %d, mau 1", len(fx.blob.Deleted))
	}

	// idempoten secara negatif: sudah tidak ada → 404
	err := fx.svc.DeleteResponseLetter(ctx, letter.ResponseLetterID)
	mustStatus(t, err, fiber.StatusNotFound)
}

func TestDeleteResponseLetterStorageFailureIsBestEffort(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	letter, _ := fx.svc.SubmitResponseLetter(ctx, fx.submissionID, fx.member, pdf, "approved")

	// bucket error tidak membatalkan penghapusan baris
	fx.blob.FailNext = true
	if err := fx.svc.DeleteResponseLetter(ctx, letter.ResponseLetterID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := fx.store.letters[letter.ResponseLetterID]; ok {
		t.Error("baris surat harus tetap terhapus walau bucket gagal")
	}
}

func TestGetBySubmission(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	_, err := fx.svc.GetBySubmission(ctx, fx.submissionID)
	mustStatus(t, err, fiber.StatusNotFound)

	letter, _ := fx.svc.SubmitResponseLetter(ctx, fx.submissionID, fx.member, pdf, "approved")
	got, err := fx.svc.GetBySubmission(ctx, fx.submissionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ResponseLetterID != letter.ResponseLetterID {
		t.Error("surat yang dikembalikan bukan yang diunggah")
	}
}
