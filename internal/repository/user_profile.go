package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vrajamarii/internal/models"
)

type UserProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) error
}

type userProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &userProfileRepository{db: db}
}

func (r *userProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// Upsert writes the editable contact fields, creating the row on first save.
func (r *userProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "phone", "county", "city", "updated_at"}),
		}).
		Create(profile).Error
}
