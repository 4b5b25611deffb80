package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kerjapraktik_backend/internals/features/internship/response_letters/model"
	"kerjapraktik_backend/internals/features/internship/response_letters/service"
	submissionModel "kerjapraktik_backend/internals/features/internship/submissions/model"
)

type ResponseLetterRepository struct {
	DB *gorm.DB
}

func NewResponseLetterRepository(db *gorm.DB) *ResponseLetterRepository {
	return &ResponseLetterRepository{DB: db}
}

var _ service.ResponseLetterStore = (*ResponseLetterRepository)(nil)

func (r *ResponseLetterRepository) WithTx(ctx context.Context, fn func(service.ResponseLetterStore) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ResponseLetterRepository{DB: tx})
	})
}

func (r *ResponseLetterRepository) Create(ctx context.Context, m *model.ResponseLetterModel) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *ResponseLetterRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ResponseLetterModel, error) {
	var m model.ResponseLetterModel
	err := r.DB.WithContext(ctx).
		Where("response_letter_id = ?", id).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ResponseLetterRepository) FindBySubmission(ctx context.Context, submissionID uuid.UUID) (*model.ResponseLetterModel, error) {
	var m model.ResponseLetterModel
	err := r.DB.WithContext(ctx).
		Where("response_letter_submission_id = ?", submissionID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ResponseLetterRepository) MarkVerified(ctx context.Context, id uuid.UUID, decision model.ResponseLetterDecision, adminID uuid.UUID, at time.Time) error {
	res := r.DB.WithContext(ctx).
		Model(&model.ResponseLetterModel{}).
		Where("response_letter_id = ?", id).
		Updates(map[string]any{
			"response_letter_status":      decision,
			"response_letter_verified":    true,
			"response_letter_verified_at": at,
			"response_letter_verified_by": adminID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ResponseLetterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("response_letter_id = ?", id).
		Delete(&model.ResponseLetterModel{}).Error
}

func (r *ResponseLetterRepository) SetSubmissionLetterStatus(ctx context.Context, submissionID uuid.UUID, status submissionModel.ResponseLetterStatus) error {
	res := r.DB.WithContext(ctx).
		Model(&submissionModel.SubmissionModel{}).
		Where("submission_id = ?", submissionID).
		Update("submission_response_letter_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
