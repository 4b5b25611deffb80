package model

import (
	"time"

	"github.com/google/uuid"
)

type TeamMemberRole string

const (
	TeamMemberRoleKetua   TeamMemberRole = "KETUA"
	TeamMemberRoleAnggota TeamMemberRole = "ANGGOTA"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRejected InvitationStatus = "REJECTED"
)

// Satu baris per relasi user-tim. Baris PENDING adalah undangan (atau
// permintaan bergabung kalau invited_by == user sendiri). Unique index
// (team_id, user_id) membuat balapan double-insert jadi conflict bersih.
type TeamMemberModel struct {
	TeamMemberID     uuid.UUID        `gorm:"column:team_member_id;type:uuid;default:gen_random_uuid();primaryKey" json:"team_member_id"`
	TeamMemberTeamID uuid.UUID        `gorm:"column:team_member_team_id;type:uuid;not null;uniqueIndex:uq_team_member_team_user" json:"team_member_team_id"`
	TeamMemberUserID uuid.UUID        `gorm:"column:team_member_user_id;type:uuid;not null;uniqueIndex:uq_team_member_team_user;index" json:"team_member_user_id"`
	TeamMemberRole   TeamMemberRole   `gorm:"column:team_member_role;type:varchar(10);not null;default:'ANGGOTA'" json:"team_member_role"`
	TeamMemberStatus InvitationStatus `gorm:"column:team_member_status;type:varchar(10);not null;default:'PENDING'" json:"team_member_status"`

	TeamMemberInvitedBy   *uuid.UUID `gorm:"column:team_member_invited_by;type:uuid" json:"team_member_invited_by,omitempty"`
	TeamMemberInvitedAt   time.Time  `gorm:"column:team_member_invited_at;autoCreateTime" json:"team_member_invited_at"`
	TeamMemberRespondedAt *time.Time `gorm:"column:team_member_responded_at" json:"team_member_responded_at,omitempty"`
}

func (TeamMemberModel) TableName() string { return "team_members" }

func (m *TeamMemberModel) IsLeaderRow() bool { return m.TeamMemberRole == TeamMemberRoleKetua }
