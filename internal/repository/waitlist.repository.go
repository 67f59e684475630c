package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"vrajamarii/internal/models"
)

type WaitlistRepository interface {
	Create(ctx context.Context, entry *models.WaitlistEntry) error
	FindByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error)
	SetBookingConfirmed(ctx context.Context, id uint, confirmed bool) error
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

// Create returns ErrAlreadyExists when the email is already registered.
func (r *waitlistRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	entry.Email = normalizeEmail(entry.Email)
	entry.BookingConfirmed = false
	return translate(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *waitlistRepository) FindByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *waitlistRepository) SetBookingConfirmed(ctx context.Context, id uint, confirmed bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("id = ?", id).
		Update("booking_confirmed", confirmed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
