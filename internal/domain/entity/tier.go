package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tier is a subscription plan limiting how much a tenant may create.
// A zero limit means unlimited.
type Tier struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:100;unique;not null" json:"name"`
	MaxPrograms  int            `gorm:"default:0" json:"max_programs"`
	MaxBookings  int            `gorm:"default:0" json:"max_bookings"`
	MaxEmployees int            `gorm:"default:0" json:"max_employees"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tier
func (t *Tier) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tier model
func (Tier) TableName() string {
	return "tiers"
}

// Allows reports whether a limit permits one more item on top of the
// current count.
func Allows(limit, current int) bool {
	return limit <= 0 || current < limit
}
