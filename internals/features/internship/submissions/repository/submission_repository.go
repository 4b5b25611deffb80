package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kerjapraktik_backend/internals/features/internship/submissions/model"
	"kerjapraktik_backend/internals/features/internship/submissions/service"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

var _ service.SubmissionStore = (*SubmissionRepository)(nil)

func (r *SubmissionRepository) WithTx(ctx context.Context, fn func(service.SubmissionStore) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SubmissionRepository{DB: tx})
	})
}

func (r *SubmissionRepository) Create(ctx context.Context, s *model.SubmissionModel) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SubmissionModel, error) {
	var s model.SubmissionModel
	err := r.DB.WithContext(ctx).
		Preload("SubmissionDocuments").
		Where("submission_id = ?", id).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.SubmissionModel, error) {
	var out []model.SubmissionModel
	err := r.DB.WithContext(ctx).
		Preload("SubmissionDocuments").
		Where("submission_team_id = ?", teamID).
		Order("submission_created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *SubmissionRepository) List(ctx context.Context, f service.SubmissionFilter, limit, offset int) ([]model.SubmissionModel, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.SubmissionModel{})
	if f.Status != "" {
		q = q.Where("submission_status = ?", f.Status)
	}
	if f.TeamID != nil {
		q = q.Where("submission_team_id = ?", *f.TeamID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.SubmissionModel
	err := q.
		Preload("SubmissionDocuments").
		Order("submission_submitted_at DESC NULLS LAST, submission_created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, total, err
}

func (r *SubmissionRepository) HasOpenSubmission(ctx context.Context, teamID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.SubmissionModel{}).
		Where("submission_team_id = ? AND submission_status IN ?",
			teamID, []model.SubmissionStatus{model.SubmissionDraft, model.SubmissionMenunggu}).
		Count(&n).Error
	return n > 0, err
}

func (r *SubmissionRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.DB.WithContext(ctx).
		Model(&model.SubmissionModel{}).
		Where("submission_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SubmissionRepository) CreateDocument(ctx context.Context, d *model.SubmissionDocumentModel) error {
	return r.DB.WithContext(ctx).Create(d).Error
}
