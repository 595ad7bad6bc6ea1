package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgramCost is the optional flat-cost override of a program: a negotiated
// lump total that, while enabled, replaces the detailed per-hotel cost
// computation for every booking under the program.
type ProgramCost struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProgramID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"program_id"`
	FlightTickets float64        `gorm:"default:0" json:"flight_tickets"`
	Visa          float64        `gorm:"default:0" json:"visa"`
	Transport     float64        `gorm:"default:0" json:"transport"`
	Hotels        []CostItem     `gorm:"type:jsonb;serializer:json" json:"hotels"`
	Custom        []CostItem     `gorm:"type:jsonb;serializer:json" json:"custom"`
	TotalCost     float64        `gorm:"default:0" json:"total_cost"`
	IsEnabled     bool           `gorm:"default:false" json:"is_enabled"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// CostItem is a named amount inside a flat-cost breakdown.
type CostItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// BeforeCreate generates a UUID before creating a new program cost
func (pc *ProgramCost) BeforeCreate(tx *gorm.DB) error {
	if pc.ID == uuid.Nil {
		pc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProgramCost model
func (ProgramCost) TableName() string {
	return "program_costs"
}

// Recalculate derives TotalCost from the breakdown fields. TotalCost is
// never set directly by callers.
func (pc *ProgramCost) Recalculate() {
	total := pc.FlightTickets + pc.Visa + pc.Transport
	for _, h := range pc.Hotels {
		total += h.Amount
	}
	for _, c := range pc.Custom {
		total += c.Amount
	}
	pc.TotalCost = total
}
