package dto

import (
	"time"

	"github.com/google/uuid"

	"kerjapraktik_backend/internals/features/internship/teams/model"
)

/* =========================
   Request
   ========================= */

// Target boleh NIM atau UUID user; service yang menerjemahkan.
type InviteMemberRequest struct {
	Target string `json:"target" validate:"required,min=1,max=64"`
}

type RespondInvitationRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

type JoinTeamRequest struct {
	TeamCode string `json:"team_code" validate:"required,len=6,alphanum"`
}

/* =========================
   Response
   ========================= */

type TeamMemberResponse struct {
	TeamMemberID  uuid.UUID  `json:"team_member_id"`
	TeamID        uuid.UUID  `json:"team_id"`
	UserID        uuid.UUID  `json:"user_id"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	InvitedBy     *uuid.UUID `json:"invited_by,omitempty"`
	InvitedAt     time.Time  `json:"invited_at"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

type TeamResponse struct {
	TeamID    uuid.UUID            `json:"team_id"`
	TeamCode  string               `json:"team_code"`
	LeaderID  uuid.UUID            `json:"leader_id"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	Members   []TeamMemberResponse `json:"members,omitempty"`
}

func MemberFromModel(m *model.TeamMemberModel) TeamMemberResponse {
	return TeamMemberResponse{
		TeamMemberID: m.TeamMemberID,
		TeamID:       m.TeamMemberTeamID,
		UserID:       m.TeamMemberUserID,
		Role:         string(m.TeamMemberRole),
		Status:       string(m.TeamMemberStatus),
		InvitedBy:    m.TeamMemberInvitedBy,
		InvitedAt:    m.TeamMemberInvitedAt,
		RespondedAt:  m.TeamMemberRespondedAt,
	}
}

func FromModel(t *model.TeamModel) TeamResponse {
	resp := TeamResponse{
		TeamID:    t.TeamID,
		TeamCode:  t.TeamCode,
		LeaderID:  t.TeamLeaderID,
		Status:    string(t.TeamStatus),
		CreatedAt: t.TeamCreatedAt,
	}
	for i := range t.TeamMembers {
		resp.Members = append(resp.Members, MemberFromModel(&t.TeamMembers[i]))
	}
	return resp
}
