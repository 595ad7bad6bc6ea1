package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PricingTable holds the nightly hotel rates and flat fees for one program.
// Exactly one table exists per program.
type PricingTable struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProgramID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"program_id"`
	TicketAirline float64        `gorm:"default:0" json:"ticket_airline"`
	VisaFees      float64        `gorm:"default:0" json:"visa_fees"`
	GuideFees     float64        `gorm:"default:0" json:"guide_fees"`
	Hotels        []HotelRate    `gorm:"type:jsonb;serializer:json" json:"hotels"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// HotelRate is the nightly price card of one hotel in one city.
type HotelRate struct {
	Name          string                    `json:"name"`
	City          string                    `json:"city"`
	Nights        int                       `json:"nights"`
	PricePerNight map[enum.RoomType]float64 `json:"price_per_night"`
}

// BeforeCreate generates a UUID before creating a new pricing table
func (pt *PricingTable) BeforeCreate(tx *gorm.DB) error {
	if pt.ID == uuid.Nil {
		pt.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PricingTable model
func (PricingTable) TableName() string {
	return "pricing_tables"
}

// FlatFees returns the sum of the per-booking flat fees.
func (pt *PricingTable) FlatFees() float64 {
	return pt.TicketAirline + pt.VisaFees + pt.GuideFees
}

// RateFor returns the rate entry matching a hotel in a city, or nil.
// Operators price programs incrementally, so a missing entry is normal.
func (pt *PricingTable) RateFor(hotel, city string) *HotelRate {
	for i := range pt.Hotels {
		if pt.Hotels[i].Name == hotel && pt.Hotels[i].City == city {
			return &pt.Hotels[i]
		}
	}
	return nil
}
