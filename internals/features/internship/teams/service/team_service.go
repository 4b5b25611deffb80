package service

import (
	"context"
	"crypto/rand"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kerjapraktik_backend/internals/constants"
	"kerjapraktik_backend/internals/features/internship/teams/model"
)

/* =========================
   Error taksonomi tim
   ========================= */

var (
	ErrTeamNotFound       = fiber.NewError(fiber.StatusNotFound, "Tim tidak ditemukan")
	ErrUserNotFound       = fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	ErrMemberNotFound     = fiber.NewError(fiber.StatusNotFound, "Anggota tim tidak ditemukan")
	ErrInvitationNotFound = fiber.NewError(fiber.StatusNotFound, "Undangan tidak ditemukan")

	ErrNotAStudent          = fiber.NewError(fiber.StatusBadRequest, "Hanya mahasiswa yang dapat tergabung dalam tim kerja praktik")
	ErrNotTeamLeader        = fiber.NewError(fiber.StatusForbidden, "Hanya ketua tim yang dapat melakukan aksi ini")
	ErrAlreadyHasTeam       = fiber.NewError(fiber.StatusConflict, "Kamu sudah memiliki tim")
	ErrAlreadyMemberOther   = fiber.NewError(fiber.StatusConflict, "Kamu sudah tergabung di tim lain")
	ErrDuplicateInvitation  = fiber.NewError(fiber.StatusConflict, "Undangan untuk user ini masih menunggu respons")
	ErrAlreadyMember        = fiber.NewError(fiber.StatusConflict, "User sudah menjadi anggota tim ini")
	ErrAlreadyRelatedToTeam = fiber.NewError(fiber.StatusConflict, "Kamu sudah memiliki relasi dengan tim ini")
	ErrTeamFull             = fiber.NewError(fiber.StatusConflict, "Tim sudah penuh (maksimal 3 anggota diterima)")
	ErrTeamAlreadyFixed     = fiber.NewError(fiber.StatusConflict, "Tim sudah difinalisasi dan tidak dapat diubah")
	ErrTeamNotReady         = fiber.NewError(fiber.StatusConflict, "Tim membutuhkan minimal satu anggota yang sudah menerima undangan")
	ErrJoinRequestStale     = fiber.NewError(fiber.StatusConflict, "Pemohon sudah tergabung di tim lain")
	ErrCannotLeaveAsLeader  = fiber.NewError(fiber.StatusBadRequest, "Ketua tidak dapat keluar dari tim; hapus tim jika ingin membubarkannya")
	ErrCannotRemoveLeader   = fiber.NewError(fiber.StatusBadRequest, "Baris ketua tidak dapat dihapus dari tim")

	// Baris masih ada setelah delete: kegagalan konsistensi, bukan kondisi bisnis.
	ErrDeleteNotVerified = fiber.NewError(fiber.StatusInternalServerError, "Penghapusan gagal diverifikasi, hubungi administrator")

	ErrCodeGeneration = fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat kode tim unik")
)

/* =========================
   Kolaborator
   ========================= */

// TeamStore menyatukan akses tim + anggota. WithTx menjalankan fn di dalam
// satu transaksi database; store yang diterima fn sudah terikat ke tx.
type TeamStore interface {
	WithTx(ctx context.Context, fn func(TeamStore) error) error

	CreateTeam(ctx context.Context, t *model.TeamModel) error
	FindTeamByID(ctx context.Context, id uuid.UUID) (*model.TeamModel, error)
	FindTeamByCode(ctx context.Context, code string) (*model.TeamModel, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	FindTeamsLedBy(ctx context.Context, userID uuid.UUID) ([]model.TeamModel, error)
	UpdateTeamStatus(ctx context.Context, teamID uuid.UUID, status model.TeamStatus) error
	// DeleteTeamCascade menghapus tim beserta seluruh anggotanya dan
	// mengembalikan jumlah baris anggota yang ikut terhapus.
	DeleteTeamCascade(ctx context.Context, teamID uuid.UUID) (int64, error)

	CreateMember(ctx context.Context, m *model.TeamMemberModel) error
	FindMemberByID(ctx context.Context, id uuid.UUID) (*model.TeamMemberModel, error)
	// FindMemberByTeamAndUser mengembalikan (nil, nil) bila relasi tidak ada.
	FindMemberByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamMemberModel, error)
	// FindActiveMembership mencari baris ACCEPTED milik user di tim manapun;
	// (nil, nil) bila tidak ada.
	FindActiveMembership(ctx context.Context, userID uuid.UUID) (*model.TeamMemberModel, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]model.TeamMemberModel, error)
	CountAcceptedMembers(ctx context.Context, teamID uuid.UUID) (int64, error)
	CountAcceptedNonLeaders(ctx context.Context, teamID uuid.UUID) (int64, error)
	UpdateMemberStatus(ctx context.Context, memberID uuid.UUID, status model.InvitationStatus, respondedAt time.Time) error
	DeleteMember(ctx context.Context, memberID uuid.UUID) error
	MemberExists(ctx context.Context, memberID uuid.UUID) (bool, error)
}

// DirectoryUser adalah potongan data users yang dibutuhkan mesin tim.
type DirectoryUser struct {
	UserID uuid.UUID
	Name   string
	Role   string
	NIM    *string
}

// UserDirectory dilayani fitur users; (nil, nil) bila user tidak ada.
type UserDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DirectoryUser, error)
	FindByNIM(ctx context.Context, nim string) (*DirectoryUser, error)
}

/* =========================
   Service
   ========================= */

const (
	maxAcceptedMembers = 3
	maxCodeAttempts    = 5
	teamCodeLength     = 6
)

// Tanpa 0/O/1/I supaya kode enak dibaca saat disebar antar mahasiswa.
const teamCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type TeamService struct {
	store TeamStore
	users UserDirectory
}

func NewTeamService(store TeamStore, users UserDirectory) *TeamService {
	return &TeamService{store: store, users: users}
}

// CreateTeam membuat tim baru dengan pembuatnya sebagai KETUA (baris anggota
// langsung ACCEPTED). Kedua insert berjalan dalam satu transaksi.
func (s *TeamService) CreateTeam(ctx context.Context, leaderID uuid.UUID) (*model.TeamModel, error) {
	u, err := s.users.FindByID(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.Role != constants.RoleMahasiswa {
		return nil, ErrNotAStudent
	}

	led, err := s.store.FindTeamsLedBy(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	if len(led) > 0 {
		return nil, ErrAlreadyHasTeam
	}

	active, err := s.store.FindActiveMembership(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrAlreadyMemberOther
	}

	code, err := s.generateUniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	team := &model.TeamModel{
		TeamID:       uuid.New(),
		TeamCode:     code,
		TeamLeaderID: leaderID,
		TeamStatus:   model.TeamStatusPending,
	}

	now := time.Now()
	err = s.store.WithTx(ctx, func(tx TeamStore) error {
		if err := tx.CreateTeam(ctx, team); err != nil {
			return err
		}
		leaderRow := &model.TeamMemberModel{
			TeamMemberID:          uuid.New(),
			TeamMemberTeamID:      team.TeamID,
			TeamMemberUserID:      leaderID,
			TeamMemberRole:        model.TeamMemberRoleKetua,
			TeamMemberStatus:      model.InvitationAccepted,
			TeamMemberRespondedAt: &now,
		}
		return tx.CreateMember(ctx, leaderRow)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] tim %s dibuat oleh %s (kode %s)", team.TeamID, leaderID, code)
	return team, nil
}

// InviteMember mengundang mahasiswa lain. Target boleh berupa NIM atau UUID.
// Baris REJECTED lama dibuang dan diganti PENDING baru dalam satu transaksi.
func (s *TeamService) InviteMember(ctx context.Context, teamID, leaderID uuid.UUID, target string) (*model.TeamMemberModel, error) {
	team, err := s.requireLedTeam(ctx, teamID, leaderID)
	if err != nil {
		return nil, err
	}
	if team.IsFixed() {
		return nil, ErrTeamAlreadyFixed
	}

	invitee, err := s.resolveTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, ErrUserNotFound
	}
	if invitee.Role != constants.RoleMahasiswa {
		return nil, ErrNotAStudent
	}

	existing, err := s.store.FindMemberByTeamAndUser(ctx, teamID, invitee.UserID)
	if err != nil {
		return nil, err
	}

	row := &model.TeamMemberModel{
		TeamMemberID:     uuid.New(),
		TeamMemberTeamID: teamID,
		TeamMemberUserID: invitee.UserID,
		TeamMemberRole:   model.TeamMemberRoleAnggota,
		TeamMemberStatus: model.InvitationPending,
		TeamMemberInvitedBy: func() *uuid.UUID {
			id := leaderID
			return &id
		}(),
	}

	if existing == nil {
		if err := s.store.CreateMember(ctx, row); err != nil {
			return nil, err
		}
		return row, nil
	}

	switch existing.TeamMemberStatus {
	case model.InvitationPending:
		return nil, ErrDuplicateInvitation
	case model.InvitationAccepted:
		return nil, ErrAlreadyMember
	case model.InvitationRejected:
		// Undang ulang: hapus jejak penolakan, buat undangan segar.
		err = s.store.WithTx(ctx, func(tx TeamStore) error {
			if err := tx.DeleteMember(ctx, existing.TeamMemberID); err != nil {
				return err
			}
			return tx.CreateMember(ctx, row)
		})
		if err != nil {
			return nil, err
		}
		return row, nil
	}
	return nil, fiber.NewError(fiber.StatusInternalServerError, "Status anggota tidak dikenal")
}

// RespondToInvitation memproses terima/tolak. Responder sah adalah invitee
// sendiri atau ketua tim tersebut (alur permintaan bergabung). Saat invitee
// menerima, semua tim yang ia ketuai dibubarkan dalam transaksi yang sama.
func (s *TeamService) RespondToInvitation(ctx context.Context, memberID, responderID uuid.UUID, accept bool) (*model.TeamMemberModel, error) {
	row, err := s.store.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if row == nil || row.TeamMemberStatus != model.InvitationPending {
		return nil, ErrInvitationNotFound
	}

	team, err := s.store.FindTeamByID(ctx, row.TeamMemberTeamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrInvitationNotFound
	}

	isInvitee := row.TeamMemberUserID == responderID
	isLeader := team.TeamLeaderID == responderID
	if !isInvitee && !isLeader {
		// 404, bukan 403: keberadaan undangan tidak dibocorkan.
		return nil, ErrInvitationNotFound
	}

	now := time.Now()
	newStatus := model.InvitationRejected
	if accept {
		newStatus = model.InvitationAccepted
	}

	if accept && !isInvitee {
		// Persetujuan ketua tidak boleh mencabut pilihan tim si pemohon:
		// bila pemohon sudah aktif di tim lain, permintaannya kedaluwarsa.
		active, err := s.store.FindActiveMembership(ctx, row.TeamMemberUserID)
		if err != nil {
			return nil, err
		}
		if active != nil && active.TeamMemberTeamID != team.TeamID {
			return nil, ErrJoinRequestStale
		}
	}

	err = s.store.WithTx(ctx, func(tx TeamStore) error {
		if accept && isInvitee {
			led, err := tx.FindTeamsLedBy(ctx, row.TeamMemberUserID)
			if err != nil {
				return err
			}
			for i := range led {
				if led[i].TeamID == team.TeamID {
					continue
				}
				n, err := tx.DeleteTeamCascade(ctx, led[i].TeamID)
				if err != nil {
					return err
				}
				log.Printf("[INFO] tim %s dibubarkan otomatis (%d anggota) karena ketuanya bergabung ke tim %s",
					led[i].TeamID, n, team.TeamID)
			}

			// Keanggotaan ACCEPTED di tim lain ikut dilepas: menerima undangan
			// adalah pernyataan pindah tim, dan satu mahasiswa hanya boleh
			// punya satu keanggotaan aktif.
			active, err := tx.FindActiveMembership(ctx, row.TeamMemberUserID)
			if err != nil {
				return err
			}
			if active != nil && active.TeamMemberTeamID != team.TeamID {
				if err := tx.DeleteMember(ctx, active.TeamMemberID); err != nil {
					return err
				}
				still, err := tx.MemberExists(ctx, active.TeamMemberID)
				if err != nil {
					return err
				}
				if still {
					log.Printf("[ERROR] keanggotaan lama %s masih ada setelah penghapusan", active.TeamMemberID)
					return ErrDeleteNotVerified
				}
				log.Printf("[INFO] keanggotaan %s di tim %s dilepas karena user %s pindah ke tim %s",
					active.TeamMemberID, active.TeamMemberTeamID, row.TeamMemberUserID, team.TeamID)
			}
		}
		return tx.UpdateMemberStatus(ctx, memberID, newStatus, now)
	})
	if err != nil {
		return nil, err
	}

	row.TeamMemberStatus = newStatus
	row.TeamMemberRespondedAt = &now
	return row, nil
}

// JoinTeam: mahasiswa meminta bergabung lewat kode tim. Urutan pemeriksaan
// dipertahankan supaya pesan errornya deterministik.
func (s *TeamService) JoinTeam(ctx context.Context, teamCode string, userID uuid.UUID) (*model.TeamMemberModel, error) {
	team, err := s.store.FindTeamByCode(ctx, teamCode)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if team.TeamLeaderID == userID {
		return nil, ErrAlreadyRelatedToTeam
	}

	existing, err := s.store.FindMemberByTeamAndUser(ctx, team.TeamID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.TeamMemberStatus != model.InvitationRejected {
		return nil, ErrAlreadyRelatedToTeam
	}

	active, err := s.store.FindActiveMembership(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil && active.TeamMemberTeamID != team.TeamID {
		return nil, ErrAlreadyMemberOther
	}

	accepted, err := s.store.CountAcceptedMembers(ctx, team.TeamID)
	if err != nil {
		return nil, err
	}
	if accepted >= maxAcceptedMembers {
		return nil, ErrTeamFull
	}

	self := userID
	row := &model.TeamMemberModel{
		TeamMemberID:        uuid.New(),
		TeamMemberTeamID:    team.TeamID,
		TeamMemberUserID:    userID,
		TeamMemberRole:      model.TeamMemberRoleAnggota,
		TeamMemberStatus:    model.InvitationPending,
		TeamMemberInvitedBy: &self,
	}

	if existing != nil {
		// Pernah ditolak, boleh mencoba lagi.
		err = s.store.WithTx(ctx, func(tx TeamStore) error {
			if err := tx.DeleteMember(ctx, existing.TeamMemberID); err != nil {
				return err
			}
			return tx.CreateMember(ctx, row)
		})
	} else {
		err = s.store.CreateMember(ctx, row)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// LeaveTeam menghapus baris anggota non-ketua, lalu membaca ulang baris itu.
// Baris yang masih terbaca setelah delete adalah kegagalan fatal.
func (s *TeamService) LeaveTeam(ctx context.Context, teamID, userID uuid.UUID) error {
	row, err := s.store.FindMemberByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrMemberNotFound
	}
	if row.IsLeaderRow() {
		return ErrCannotLeaveAsLeader
	}
	return s.deleteMemberVerified(ctx, row.TeamMemberID)
}

// RemoveMember: ketua mengeluarkan anggota. Tim FIXED tidak bisa diubah lagi.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, memberID, leaderID uuid.UUID) error {
	team, err := s.requireLedTeam(ctx, teamID, leaderID)
	if err != nil {
		return err
	}
	if team.IsFixed() {
		return ErrTeamAlreadyFixed
	}

	row, err := s.store.FindMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if row == nil || row.TeamMemberTeamID != teamID {
		return ErrMemberNotFound
	}
	if row.IsLeaderRow() {
		return ErrCannotRemoveLeader
	}
	return s.deleteMemberVerified(ctx, row.TeamMemberID)
}

// CancelInvitation membatalkan undangan yang masih PENDING.
func (s *TeamService) CancelInvitation(ctx context.Context, memberID, leaderID uuid.UUID) error {
	row, err := s.store.FindMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrInvitationNotFound
	}

	if _, err := s.requireLedTeam(ctx, row.TeamMemberTeamID, leaderID); err != nil {
		return err
	}
	if row.IsLeaderRow() || row.TeamMemberStatus != model.InvitationPending {
		return ErrInvitationNotFound
	}
	return s.deleteMemberVerified(ctx, row.TeamMemberID)
}

// DeleteTeam membubarkan tim (hard delete, anggota ikut terhapus) dan
// mengembalikan jumlah anggota yang terhapus.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID, requesterID uuid.UUID) (int64, error) {
	if _, err := s.requireLedTeam(ctx, teamID, requesterID); err != nil {
		return 0, err
	}

	var deleted int64
	err := s.store.WithTx(ctx, func(tx TeamStore) error {
		n, err := tx.DeleteTeamCascade(ctx, teamID)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Printf("[INFO] tim %s dihapus oleh %s (%d anggota)", teamID, requesterID, deleted)
	return deleted, nil
}

// FinalizeTeam mengunci komposisi tim. Satu arah: tidak ada un-finalize.
func (s *TeamService) FinalizeTeam(ctx context.Context, teamID, requesterID uuid.UUID) (*model.TeamModel, error) {
	team, err := s.requireLedTeam(ctx, teamID, requesterID)
	if err != nil {
		return nil, err
	}
	if team.IsFixed() {
		return nil, ErrTeamAlreadyFixed
	}

	nonLeaders, err := s.store.CountAcceptedNonLeaders(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if nonLeaders < 1 {
		return nil, ErrTeamNotReady
	}

	if err := s.store.UpdateTeamStatus(ctx, teamID, model.TeamStatusFixed); err != nil {
		return nil, err
	}
	team.TeamStatus = model.TeamStatusFixed
	return team, nil
}

// GetMyTeam mengembalikan tim tempat user punya baris ACCEPTED, lengkap
// dengan seluruh anggotanya.
func (s *TeamService) GetMyTeam(ctx context.Context, userID uuid.UUID) (*model.TeamModel, error) {
	active, err := s.store.FindActiveMembership(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, ErrTeamNotFound
	}
	return s.GetTeamByID(ctx, active.TeamMemberTeamID)
}

func (s *TeamService) GetTeamByID(ctx context.Context, teamID uuid.UUID) (*model.TeamModel, error) {
	team, err := s.store.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	members, err := s.store.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.TeamMembers = members
	return team, nil
}

/* =========================
   Internal
   ========================= */

func (s *TeamService) requireLedTeam(ctx context.Context, teamID, leaderID uuid.UUID) (*model.TeamModel, error) {
	team, err := s.store.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	if team.TeamLeaderID != leaderID {
		return nil, ErrNotTeamLeader
	}
	return team, nil
}

func (s *TeamService) resolveTarget(ctx context.Context, target string) (*DirectoryUser, error) {
	if id, err := uuid.Parse(target); err == nil {
		return s.users.FindByID(ctx, id)
	}
	return s.users.FindByNIM(ctx, target)
}

func (s *TeamService) deleteMemberVerified(ctx context.Context, memberID uuid.UUID) error {
	if err := s.store.DeleteMember(ctx, memberID); err != nil {
		return err
	}
	still, err := s.store.MemberExists(ctx, memberID)
	if err != nil {
		return err
	}
	if still {
		log.Printf("[ERROR] baris team_member %s masih terbaca setelah delete", memberID)
		return ErrDeleteNotVerified
	}
	return nil
}

func (s *TeamService) generateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomTeamCode()
		if err != nil {
			return "", err
		}
		exists, err := s.store.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

func randomTeamCode() (string, error) {
	buf := make([]byte, teamCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = teamCodeAlphabet[int(buf[i])%len(teamCodeAlphabet)]
	}
	return string(buf), nil
}
