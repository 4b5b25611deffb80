package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kerjapraktik_backend/internals/features/internship/submissions/service"
	teamModel "kerjapraktik_backend/internals/features/internship/teams/model"
)

// TeamGateRepository menjawab pertanyaan keanggotaan/status tim langsung
// dari tabel fitur tim.
type TeamGateRepository struct {
	DB *gorm.DB
}

func NewTeamGateRepository(db *gorm.DB) *TeamGateRepository {
	return &TeamGateRepository{DB: db}
}

var _ service.TeamGate = (*TeamGateRepository)(nil)

func (r *TeamGateRepository) TeamStatus(ctx context.Context, teamID uuid.UUID) (string, error) {
	var t teamModel.TeamModel
	err := r.DB.WithContext(ctx).
		Select("team_status").
		Where("team_id = ?", teamID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(t.TeamStatus), nil
}

func (r *TeamGateRepository) IsAcceptedMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&teamModel.TeamMemberModel{}).
		Where("team_member_team_id = ? AND team_member_user_id = ? AND team_member_status = ?",
			teamID, userID, teamModel.InvitationAccepted).
		Count(&n).Error
	return n > 0, err
}

func (r *TeamGateRepository) AcceptedTeamID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var m teamModel.TeamMemberModel
	err := r.DB.WithContext(ctx).
		Where("team_member_user_id = ? AND team_member_status = ?", userID, teamModel.InvitationAccepted).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	return m.TeamMemberTeamID, nil
}
