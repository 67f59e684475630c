package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vrajamarii/internal/models"
)

type EvaluationRepository interface {
	UpsertEvaluation(ctx context.Context, rec *models.EvaluationRecord) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.EvaluationRecord, error)
	ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// UpsertEvaluation inserts the record or, when the user already has one,
// overwrites every answer column.
func (r *evaluationRepository) UpsertEvaluation(ctx context.Context, rec *models.EvaluationRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(rec).Error
}

func (r *evaluationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.EvaluationRecord, error) {
	var rec models.EvaluationRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *evaluationRepository) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EvaluationRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
