package model

import (
	"time"

	"github.com/google/uuid"
)

type TeamStatus string

const (
	TeamStatusPending TeamStatus = "PENDING"
	TeamStatusFixed   TeamStatus = "FIXED"
)

type TeamModel struct {
	TeamID       uuid.UUID  `gorm:"column:team_id;type:uuid;default:gen_random_uuid();primaryKey" json:"team_id"`
	TeamCode     string     `gorm:"column:team_code;type:varchar(12);not null;uniqueIndex" json:"team_code"`
	TeamLeaderID uuid.UUID  `gorm:"column:team_leader_id;type:uuid;not null;index" json:"team_leader_id"`
	TeamStatus   TeamStatus `gorm:"column:team_status;type:varchar(10);not null;default:'PENDING'" json:"team_status"`

	TeamCreatedAt time.Time `gorm:"column:team_created_at;autoCreateTime" json:"team_created_at"`
	TeamUpdatedAt time.Time `gorm:"column:team_updated_at;autoUpdateTime" json:"team_updated_at"`

	TeamMembers []TeamMemberModel `gorm:"foreignKey:TeamMemberTeamID;references:TeamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"team_members,omitempty"`
}

func (TeamModel) TableName() string { return "teams" }

func (t *TeamModel) IsFixed() bool { return t.TeamStatus == TeamStatusFixed }
