package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kerjapraktik_backend/internals/features/internship/submissions/dto"
	"kerjapraktik_backend/internals/features/internship/submissions/model"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

/* =========================
   Fakes
   ========================= */

type fakeSubmissionStore struct {
	submissions map[uuid.UUID]*model.SubmissionModel
	documents   map[uuid.UUID][]model.SubmissionDocumentModel

	// dropAfterUpdate menghapus baris tepat setelah UpdateFields,
	// meniru penghapusan konkuren yang commit sebelum pembacaan ulang.
	dropAfterUpdate bool
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{
		submissions: make(map[uuid.UUID]*model.SubmissionModel),
		documents:   make(map[uuid.UUID][]model.SubmissionDocumentModel),
	}
}

func (f *fakeSubmissionStore) WithTx(ctx context.Context, fn func(SubmissionStore) error) error {
	return fn(f)
}

func (f *fakeSubmissionStore) Create(ctx context.Context, s *model.SubmissionModel) error {
	cp := *s
	f.submissions[s.SubmissionID] = &cp
	return nil
}

func (f *fakeSubmissionStore) FindByID(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error) {
	s, ok := f.submissions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.SubmissionDocuments = append([]model.SubmissionDocumentModel(nil), f.documents[id]...)
	return &cp, nil
}

func (f *fakeSubmissionStore) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.SubmissionModel, error) {
	var out []model.SubmissionModel
	for id, s := range f.submissions {
		if s.SubmissionTeamID == teamID {
			cp := *s
			cp.SubmissionDocuments = append([]model.SubmissionDocumentModel(nil), f.documents[id]...)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) List(ctx context.Context, flt SubmissionFilter, limit, offset int) ([]model.SubmissionModel, int64, error) {
	var out []model.SubmissionModel
	for id, s := range f.submissions {
		if flt.Status != "" && string(s.SubmissionStatus) != flt.Status {
			continue
		}
		if flt.TeamID != nil && s.SubmissionTeamID != *flt.TeamID {
			continue
		}
		cp := *s
		cp.SubmissionDocuments = append([]model.SubmissionDocumentModel(nil), f.documents[id]...)
		out = append(out, cp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSubmissionStore) HasOpenSubmission(ctx context.Context, teamID uuid.UUID) (bool, error) {
	for _, s := range f.submissions {
		if s.SubmissionTeamID == teamID && !s.SubmissionStatus.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSubmissionStore) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	s, ok := f.submissions[id]
	if !ok {
		return errors.New("pengajuan tidak ada")
	}
	for k, v := range fields {
		switch k {
		case "submission_status":
			s.SubmissionStatus = v.(model.SubmissionStatus)
		case "submission_company_name":
			s.SubmissionCompanyName = v.(string)
		case "submission_company_address":
			s.SubmissionCompanyAddress = v.(string)
		case "submission_company_phone":
			s.SubmissionCompanyPhone = v.(string)
		case "submission_rejection_reason":
			if v == nil {
				s.SubmissionRejectionReason = nil
			} else {
				r := v.(string)
				s.SubmissionRejectionReason = &r
			}
		}
		// kolom waktu/approved_by tidak dibutuhkan assert di fake ini
	}
	if f.dropAfterUpdate {
		delete(f.submissions, id)
	}
	return nil
}

func (f *fakeSubmissionStore) CreateDocument(ctx context.Context, d *model.SubmissionDocumentModel) error {
	f.documents[d.SubmissionDocumentSubmissionID] = append(f.documents[d.SubmissionDocumentSubmissionID], *d)
	return nil
}

type fakeTeamGate struct {
	status   map[uuid.UUID]string
	accepted map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeTeamGate() *fakeTeamGate {
	return &fakeTeamGate{
		status:   make(map[uuid.UUID]string),
		accepted: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeTeamGate) addTeam(status string, members ...uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.status[id] = status
	f.accepted[id] = make(map[uuid.UUID]bool)
	for _, m := range members {
		f.accepted[id][m] = true
	}
	return id
}

func (f *fakeTeamGate) TeamStatus(ctx context.Context, teamID uuid.UUID) (string, error) {
	return f.status[teamID], nil
}

func (f *fakeTeamGate) IsAcceptedMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	return f.accepted[teamID][userID], nil
}

func (f *fakeTeamGate) AcceptedTeamID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	for teamID, members := range f.accepted {
		if members[userID] {
			return teamID, nil
		}
	}
	return uuid.Nil, nil
}

func newTestSubmissionService() (*SubmissionService, *fakeSubmissionStore, *fakeTeamGate, *oss.MockBlobService) {
	store := newFakeSubmissionStore()
	gate := newFakeTeamGate()
	blob := &oss.MockBlobService{}
	return NewSubmissionService(store, gate, blob), store, gate, blob
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

func strPtr(s string) *string { return &s }

/* =========================
   Create / update / submit
   ========================= */

func TestCreateSubmissionGating(t *testing.T) {
	svc, _, gate, _ := newTestSubmissionService()
	ctx := context.Background()
	member := uuid.New()
	outsider := uuid.New()

	// tim tidak ada
	_, err := svc.CreateSubmission(ctx, uuid.New(), member)
	mustStatus(t, err, fiber.StatusNotFound)

	// tim belum FIXED
	pending := gate.addTeam("PENDING", member)
	_, err = svc.CreateSubmission(ctx, pending, member)
	mustStatus(t, err, fiber.StatusConflict)

	// bukan anggota
	fixed := gate.addTeam("FIXED", member)
	_, err = svc.CreateSubmission(ctx, fixed, outsider)
	mustStatus(t, err, fiber.StatusForbidden)

	// sukses
	sub, err := svc.CreateSubmission(ctx, fixed, member)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sub.SubmissionStatus != model.SubmissionDraft {
		t.Errorf("status = %s, mau DRAFT", sub.SubmissionStatus)
	}
	if sub.SubmissionResponseLetterStatus != model.ResponseLetterPending {
		t.Errorf("response_letter_status = %s, mau pending", sub.SubmissionResponseLetterStatus)
	}

	// satu pengajuan non-terminal per tim
	_, err = svc.CreateSubmission(ctx, fixed, member)
	mustStatus(t, err, fiber.StatusConflict)
}

func TestUpdateSubmissionOnlyDraft(t *testing.T) {
	svc, _, gate, _ := newTestSubmissionService()
	ctx := context.Background()
	member := uuid.New()
	team := gate.addTeam("FIXED", member)

	sub, _ := svc.CreateSubmission(ctx, team, member)

	got, err := svc.UpdateSubmission(ctx, sub.SubmissionID, member, dto.UpdateSubmissionRequest{
		CompanyName:    strPtr("PT Maju Jaya"),
		CompanyAddress: strPtr("Jl. Merdeka 1, Pekanbaru"),
		Divisions:      []string{"IT", " ", "Jaringan"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.SubmissionCompanyName != "PT Maju Jaya" {
		t.Errorf("company = %q", got.SubmissionCompanyName)
	}

	// setelah dikirim, update ditolak
	if _, err := svc.SubmitForReview(ctx, sub.SubmissionID, member); err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = svc.UpdateSubmission(ctx, sub.SubmissionID, member, dto.UpdateSubmissionRequest{
		CompanyName: strPtr("PT Lain"),
	})
	mustStatus(t, err, fiber.StatusConflict)
}

func TestUpdateSubmissionDeletedDuringUpdate(t *testing.T) {
	svc, store, gate, _ := newTestSubmissionService()
	ctx := context.Background()
	member := uuid.New()
	team := gate.addTeam("FIXED", member)

	sub, _ := svc.CreateSubmission(ctx, team, member)

	// baris hilang di antara update dan pembacaan ulang: 404, bukan model nil
	store.dropAfterUpdate = true
	got, err := svc.UpdateSubmission(ctx, sub.SubmissionID, member, dto.UpdateSubmissionRequest{
		CompanyName: strPtr("PT Maju Jaya"),
	})
	mustStatus(t, err, fiber.StatusNotFound)
	if got != nil {
		t.Errorf("model = %+v, mau nil saat baris sudah terhapus", got)
	}
}

func TestSubmitForReviewRequiresCompany(t *testing.T) {
	svc, _, gate, _ := newTestSubmissionService()
	ctx := context.Background()
	member := uuid.New()
	team := gate.addTeam("FIXED", member)

	sub, _ := svc.CreateSubmission(ctx, team, member)

	// company kosong
	_, err := svc.SubmitForReview(ctx, sub.SubmissionID, member)
	mustStatus(t, err, fiber.StatusBadRequest)

	if _, err := svc.UpdateSubmission(ctx, sub.SubmissionID, member, dto.UpdateSubmissionRequest{
		CompanyName:    strPtr("PT Maju Jaya"),
		CompanyAddress: strPtr("Jl. Merdeka 1"),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.SubmitForReview(ctx, sub.SubmissionID, member)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.SubmissionStatus != model.SubmissionMenunggu {
		t.Errorf("status = %s, mau MENUNGGU", got.SubmissionStatus)
	}
	if got.SubmissionSubmittedAt == nil {
		t.Error("submitted_at harus terisi")
	}

	// tidak bisa dikirim dua kali
	_, err = svc.SubmitForReview(ctx, sub.SubmissionID, member)
	mustStatus(t, err, fiber.StatusConflict)
}

/* =========================
   Dokumen
   ========================= */

func TestUploadDocument(t *testing.T) {
	svc, store, gate, blob := newTestSubmissionService()
	ctx := context.Background()
	member := uuid.New()
	team := gate.addTeam("FIXED", member)

	sub, _ := svc.CreateSubmission(ctx, team, member)
	fh := &multipart.FileHeader{Filename: "proposal-kp.pdf", Size: 1024}

	// jenis dokumen wajib
	_, err := svc.UploadDocument(ctx, sub.SubmissionID, member, fh, "  ")
	mustStatus(t, err, fiber.StatusBadRequest)

	// ekstensi di luar allow-list
	_, err = svc.UploadDocument(ctx, sub.SubmissionID, member, &multipart.FileHeader{Filename: "foto.png", Size: 100}, "PROPOSAL")
	mustStatus(t, err, fiber.StatusBadRequest)

	// terlalu besar
	_, err = svc.UploadDocument(ctx, sub.SubmissionID, member, &multipart.FileHeader{Filename: "a.pdf", Size: 11 * 1024 * 1024}, "PROPOSAL")
	mustStatus(t, err, fiber.StatusBadRequest)

	// bukan anggota
	_, err = svc.UploadDocument(ctx, sub.SubmissionID, uuid.New(), fh, "PROPOSAL")
	mustStatus(t, err, fiber.StatusForbidden)

	doc, err := svc.UploadDocument(ctx, sub.SubmissionID, member, fh, "proposal")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.SubmissionDocumentType != "PROPOSAL" {
		t.Errorf("type = %q, mau PROPOSAL", doc.SubmissionDocumentType)
	}
	if doc.SubmissionDocumentFileType != "PDF" {
		t.Errorf("file_type = %q, mau PDF", doc.SubmissionDocumentFileType)
	}
	if len(blob.Uploaded) != 1 {
		t.Errorf("objek terunggah = %d, mau 1", len(blob.Uploaded))
	}
	if docs := store.documents[sub.SubmissionID]; len(docs) != 1 {
		t.Errorf("baris dokumen = %d, mau 1", len(docs))
	}
}

func TestListingHidesDocumentsWithoutType(t *testing.T) {
	svc, store, gate, _ := newTestSubmissionService()
	ctx := context.Background()
	member := uuid.New()
	team := gate.addTeam("FIXED", member)

	sub, _ := svc.CreateSubmission(ctx, team, member)

	// baris lama yang korup (tanpa jenis) masuk langsung lewat store
	store.documents[sub.SubmissionID] = append(store.documents[sub.SubmissionID],
		model.SubmissionDocumentModel{
			SubmissionDocumentID:           uuid.New(),
			SubmissionDocumentSubmissionID: sub.SubmissionID,
			SubmissionDocumentType:         "",
			SubmissionDocumentFileName:     "lama.pdf",
		},
		model.SubmissionDocumentModel{
			SubmissionDocumentID:           uuid.New(),
			SubmissionDocumentSubmissionID: sub.SubmissionID,
			SubmissionDocumentType:         "PROPOSAL",
			SubmissionDocumentFileName:     "baru.pdf",
		},
	)

	got, err := svc.GetSubmissionForAdmin(ctx, sub.SubmissionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp := dto.FromModel(got)
	if len(resp.Documents) != 1 {
		t.Fatalf("dokumen tampil = %d, mau 1 (baris tanpa type disaring)", len(resp.Documents))
	}
	if resp.Documents[0].DocumentType != "PROPOSAL" {
		t.Errorf("yang tampil = %q", resp.Documents[0].DocumentType)
	}
}

/* =========================
   Review admin
   ========================= */

func submitMenunggu(t *testing.T, svc *SubmissionService, gate *fakeTeamGate) (uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	member := uuid.New()
	team := gate.addTeam("FIXED", member)
	sub, err := svc.CreateSubmission(ctx, team, member)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdateSubmission(ctx, sub.SubmissionID, member, dto.UpdateSubmissionRequest{
		CompanyName:    strPtr("PT Maju Jaya"),
		CompanyAddress: strPtr("Jl. Merdeka 1"),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.SubmitForReview(ctx, sub.SubmissionID, member); err != nil {
		t.Fatalf("submit: %v", err)
	}
	return sub.SubmissionID, member
}

func TestApproveSubmission(t *testing.T) {
	svc, _, gate, _ := newTestSubmissionService()
	ctx := context.Background()
	admin := uuid.New()

	subID, _ := submitMenunggu(t, svc, gate)

	got, err := svc.ApproveSubmission(ctx, subID, admin)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got.SubmissionStatus != model.SubmissionDiterima {
		t.Errorf("status = %s, mau DITERIMA", got.SubmissionStatus)
	}
	if got.SubmissionApprovedBy == nil || *got.SubmissionApprovedBy != admin {
		t.Error("approved_by harus terisi admin")
	}

	// hanya dari MENUNGGU
	_, err = svc.ApproveSubmission(ctx, subID, admin)
	mustStatus(t, err, fiber.StatusConflict)
}

func TestRejectSubmission(t *testing.T) {
	svc, _, gate, _ := newTestSubmissionService()
	ctx := context.Background()
	admin := uuid.New()

	subID, _ := submitMenunggu(t, svc, gate)

	// alasan wajib
	_, err := svc.RejectSubmission(ctx, subID, admin, "   ")
	mustStatus(t, err, fiber.StatusBadRequest)

	got, err := svc.RejectSubmission(ctx, subID, admin, "Perusahaan tidak relevan dengan prodi")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.SubmissionStatus != model.SubmissionDitolak {
		t.Errorf("status = %s, mau DITOLAK", got.SubmissionStatus)
	}
	if got.SubmissionRejectionReason == nil {
		t.Error("rejection_reason harus terisi")
	}
	if got.SubmissionApprovedBy != nil || got.SubmissionApprovedAt != nil {
		t.Error("jejak approve harus bersih setelah reject")
	}
}

func TestUpdateSubmissionStatusGeneric(t *testing.T) {
	svc, _, gate, _ := newTestSubmissionService()
	ctx := context.Background()
	admin := uuid.New()

	subID, _ := submitMenunggu(t, svc, gate)

	// status asing
	_, err := svc.UpdateSubmissionStatus(ctx, subID, admin, "SELESAI", nil)
	mustStatus(t, err, fiber.StatusBadRequest)

	// DITOLAK tanpa alasan
	_, err = svc.UpdateSubmissionStatus(ctx, subID, admin, "ditolak", nil)
	mustStatus(t, err, fiber.StatusBadRequest)

	got, err := svc.UpdateSubmissionStatus(ctx, subID, admin, "diterima", nil)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.SubmissionStatus != model.SubmissionDiterima {
		t.Errorf("status = %s, mau DITERIMA", got.SubmissionStatus)
	}
}

func TestListSubmissionsFilter(t *testing.T) {
	svc, _, gate, _ := newTestSubmissionService()
	ctx := context.Background()
	admin := uuid.New()

	subA, _ := submitMenunggu(t, svc, gate)
	submitMenunggu(t, svc, gate)
	if _, err := svc.ApproveSubmission(ctx, subA, admin); err != nil {
		t.Fatalf("approve: %v", err)
	}

	items, total, err := svc.ListSubmissions(ctx, SubmissionFilter{Status: "MENUNGGU"}, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("MENUNGGU = %d/%d, mau 1/1", len(items), total)
	}

	// status filter asing ditolak di depan
	_, _, err = svc.ListSubmissions(ctx, SubmissionFilter{Status: "NGAWUR"}, 20, 0)
	mustStatus(t, err, fiber.StatusBadRequest)
}

/* =========================
   Reads mahasiswa
   ========================= */

func TestGetMySubmissions(t *testing.T) {
	svc, _, gate, _ := newTestSubmissionService()
	ctx := context.Background()
	member := uuid.New()
	team := gate.addTeam("FIXED", member)

	if _, err := svc.CreateSubmission(ctx, team, member); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := svc.GetMySubmissions(ctx, member)
	if err != nil {
		t.Fatalf("mine: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("pengajuan saya = %d, mau 1", len(mine))
	}

	// user tanpa tim: kosong, bukan error
	empty, err := svc.GetMySubmissions(ctx, uuid.New())
	if err != nil {
		t.Fatalf("tanpa tim: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("tanpa tim = %d, mau 0", len(empty))
	}
}
