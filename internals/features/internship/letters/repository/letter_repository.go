package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kerjapraktik_backend/internals/features/internship/letters/model"
	"kerjapraktik_backend/internals/features/internship/letters/service"
)

type LetterRepository struct {
	DB *gorm.DB
}

func NewLetterRepository(db *gorm.DB) *LetterRepository {
	return &LetterRepository{DB: db}
}

var _ service.LetterStore = (*LetterRepository)(nil)

func (r *LetterRepository) Create(ctx context.Context, l *model.GeneratedLetterModel) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *LetterRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.GeneratedLetterModel{}).
		Where("generated_letter_number = ?", number).
		Count(&n).Error
	return n > 0, err
}

func (r *LetterRepository) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.GeneratedLetterModel, error) {
	var out []model.GeneratedLetterModel
	err := r.DB.WithContext(ctx).
		Where("generated_letter_submission_id = ?", submissionID).
		Order("generated_letter_generated_at DESC").
		Find(&out).Error
	return out, err
}

func (r *LetterRepository) List(ctx context.Context, limit, offset int) ([]model.GeneratedLetterModel, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&model.GeneratedLetterModel{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.GeneratedLetterModel
	err := r.DB.WithContext(ctx).
		Order("generated_letter_generated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, total, err
}
