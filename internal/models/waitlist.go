package models

import (
	"time"

	"github.com/lib/pq"
)

type WaitlistEntry struct {
	ID               uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt        time.Time      `json:"created_at" example:"2025-01-01T00:00:00Z"`
	FirstName        string         `gorm:"not null" json:"first_name" example:"Ana"`
	LastName         string         `gorm:"not null" json:"last_name" example:"Pop"`
	Email            string         `gorm:"uniqueIndex;not null" json:"email" example:"ana@example.com"`
	Phone            *string        `json:"phone" example:"0722000000"`
	AgeInterval      string         `gorm:"not null" json:"age_interval" example:"25-34"`
	PreferredMonth   string         `gorm:"not null" json:"preferred_month" example:"june"`
	SelectedOffers   pq.StringArray `gorm:"type:text[];not null" json:"selected_offers" swaggertype:"array,string"`
	GDPRConsent      bool           `gorm:"column:gdpr_consent;not null" json:"gdpr_consent"`
	BookingConfirmed bool           `gorm:"not null" json:"booking_confirmed"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist"
}
