package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kerjapraktik_backend/internals/features/internship/teams/model"
	"kerjapraktik_backend/internals/features/internship/teams/service"
)

// TeamRepository adalah implementasi GORM dari service.TeamStore.
type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

var _ service.TeamStore = (*TeamRepository)(nil)

func (r *TeamRepository) WithTx(ctx context.Context, fn func(service.TeamStore) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TeamRepository{DB: tx})
	})
}

/* =========================
   Teams
   ========================= */

func (r *TeamRepository) CreateTeam(ctx context.Context, t *model.TeamModel) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *TeamRepository) FindTeamByID(ctx context.Context, id uuid.UUID) (*model.TeamModel, error) {
	var t model.TeamModel
	err := r.DB.WithContext(ctx).
		Where("team_id = ?", id).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) FindTeamByCode(ctx context.Context, code string) (*model.TeamModel, error) {
	var t model.TeamModel
	err := r.DB.WithContext(ctx).
		Where("team_code = ?", code).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.TeamModel{}).
		Where("team_code = ?", code).
		Count(&n).Error
	return n > 0, err
}

func (r *TeamRepository) FindTeamsLedBy(ctx context.Context, userID uuid.UUID) ([]model.TeamModel, error) {
	var teams []model.TeamModel
	err := r.DB.WithContext(ctx).
		Where("team_leader_id = ?", userID).
		Order("team_created_at ASC").
		Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) UpdateTeamStatus(ctx context.Context, teamID uuid.UUID, status model.TeamStatus) error {
	res := r.DB.WithContext(ctx).
		Model(&model.TeamModel{}).
		Where("team_id = ?", teamID).
		Update("team_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TeamRepository) DeleteTeamCascade(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("team_member_team_id = ?", teamID).
			Delete(&model.TeamMemberModel{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return tx.Where("team_id = ?", teamID).
			Delete(&model.TeamModel{}).Error
	})
	return deleted, err
}

/* =========================
   Members
   ========================= */

func (r *TeamRepository) CreateMember(ctx context.Context, m *model.TeamMemberModel) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *TeamRepository) FindMemberByID(ctx context.Context, id uuid.UUID) (*model.TeamMemberModel, error) {
	var m model.TeamMemberModel
	err := r.DB.WithContext(ctx).
		Where("team_member_id = ?", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TeamRepository) FindMemberByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamMemberModel, error) {
	var m model.TeamMemberModel
	err := r.DB.WithContext(ctx).
		Where("team_member_team_id = ? AND team_member_user_id = ?", teamID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TeamRepository) FindActiveMembership(ctx context.Context, userID uuid.UUID) (*model.TeamMemberModel, error) {
	var m model.TeamMemberModel
	err := r.DB.WithContext(ctx).
		Where("team_member_user_id = ? AND team_member_status = ?", userID, model.InvitationAccepted).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]model.TeamMemberModel, error) {
	var members []model.TeamMemberModel
	err := r.DB.WithContext(ctx).
		Where("team_member_team_id = ?", teamID).
		Order("team_member_invited_at ASC").
		Find(&members).Error
	return members, err
}

func (r *TeamRepository) CountAcceptedMembers(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.TeamMemberModel{}).
		Where("team_member_team_id = ? AND team_member_status = ?", teamID, model.InvitationAccepted).
		Count(&n).Error
	return n, err
}

func (r *TeamRepository) CountAcceptedNonLeaders(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.TeamMemberModel{}).
		Where("team_member_team_id = ? AND team_member_status = ? AND team_member_role <> ?",
			teamID, model.InvitationAccepted, model.TeamMemberRoleKetua).
		Count(&n).Error
	return n, err
}

func (r *TeamRepository) UpdateMemberStatus(ctx context.Context, memberID uuid.UUID, status model.InvitationStatus, respondedAt time.Time) error {
	res := r.DB.WithContext(ctx).
		Model(&model.TeamMemberModel{}).
		Where("team_member_id = ?", memberID).
		Updates(map[string]any{
			"team_member_status":       status,
			"team_member_responded_at": respondedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TeamRepository) DeleteMember(ctx context.Context, memberID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("team_member_id = ?", memberID).
		Delete(&model.TeamMemberModel{}).Error
}

func (r *TeamRepository) MemberExists(ctx context.Context, memberID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.TeamMemberModel{}).
		Where("team_member_id = ?", memberID).
		Count(&n).Error
	return n > 0, err
}
