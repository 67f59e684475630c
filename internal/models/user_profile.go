package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile holds the editable contact details of an account. Its ID is
// the identity provider's user id.
type UserProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at" example:"2025-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-01-01T00:00:00Z"`
	FirstName *string   `json:"first_name" example:"Ana"`
	LastName  *string   `json:"last_name" example:"Pop"`
	Phone     *string   `json:"phone" example:"0722000000"`
	County    *string   `json:"county" example:"Constanta"`
	City      *string   `json:"city" example:"Mangalia"`
}

func (UserProfile) TableName() string {
	return "profiles"
}
